package maven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"

	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/repository"
)

// maxMetadataBytes caps a metadata response body. Anything larger is not a
// plausible maven-metadata.xml and is treated as unavailable.
const maxMetadataBytes = 4 << 20

var (
	// ErrMetadataUnavailable means a source had no usable metadata for the
	// coordinate (missing, non-success status, oversized, or malformed).
	ErrMetadataUnavailable = errors.New("metadata unavailable")
)

// Metadata is the version listing a repository publishes for one artifact.
type Metadata struct {
	GroupID    string
	ArtifactID string
	Latest     string
	Release    string
	Versions   []string
}

// metadataURL builds the conventional per-repository metadata path: the
// group's dots become path separators, followed by the artifact.
func metadataURL(baseURL string, coord repository.Coordinate) string {
	groupPath := strings.ReplaceAll(coord.Group, ".", "/")
	return fmt.Sprintf("%s/%s/%s/maven-metadata.xml",
		strings.TrimRight(baseURL, "/"), groupPath, coord.Artifact)
}

// fetchMetadata retrieves and parses maven-metadata.xml from one source.
// Every failure mode collapses into ErrMetadataUnavailable; callers decide
// whether to try another source.
func fetchMetadata(ctx context.Context, client *HTTPClient, baseURL string, coord repository.Coordinate) (*Metadata, error) {
	url := metadataURL(baseURL, coord)
	logger.Debug("fetching %s", url)

	resp, err := client.Get(ctx, url)
	if err != nil {
		logger.Debug("request failed for %s: %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("HTTP %d for %s", resp.StatusCode, url)
		return nil, fmt.Errorf("%w: status %d", ErrMetadataUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	if len(body) > maxMetadataBytes {
		logger.Debug("oversized metadata body from %s", url)
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrMetadataUnavailable, maxMetadataBytes)
	}

	meta, err := parseMetadata(body)
	if err != nil {
		logger.Debug("malformed metadata from %s: %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	return meta, nil
}

// parseMetadata decodes a maven-metadata.xml document.
func parseMetadata(data []byte) (*Metadata, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing metadata XML: %w", err)
	}

	root := doc.SelectElement("metadata")
	if root == nil {
		return nil, errors.New("metadata XML has no <metadata> root")
	}

	meta := &Metadata{}
	if el := root.SelectElement("groupId"); el != nil {
		meta.GroupID = strings.TrimSpace(el.Text())
	}
	if el := root.SelectElement("artifactId"); el != nil {
		meta.ArtifactID = strings.TrimSpace(el.Text())
	}

	versioning := root.SelectElement("versioning")
	if versioning == nil {
		return nil, errors.New("metadata XML has no <versioning> element")
	}
	if el := versioning.SelectElement("latest"); el != nil {
		meta.Latest = strings.TrimSpace(el.Text())
	}
	if el := versioning.SelectElement("release"); el != nil {
		meta.Release = strings.TrimSpace(el.Text())
	}

	versions := versioning.SelectElement("versions")
	if versions == nil {
		return nil, errors.New("metadata XML has no <versions> element")
	}
	for _, el := range versions.SelectElements("version") {
		if v := strings.TrimSpace(el.Text()); v != "" {
			meta.Versions = append(meta.Versions, v)
		}
	}

	return meta, nil
}
