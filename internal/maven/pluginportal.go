package maven

import (
	"context"
	"fmt"

	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/repository"
	"github.com/gradlecat/gvc/internal/version"
)

// GradlePluginPortalURL is the Maven-layout endpoint of the Gradle Plugin
// Portal.
const GradlePluginPortalURL = "https://plugins.gradle.org/m2"

// pluginArtifactSuffix is the marker-artifact convention for published
// Gradle plugins: id "org.example.foo" resolves as coordinate
// "org.example.foo:org.example.foo.gradle.plugin".
const pluginArtifactSuffix = ".gradle.plugin"

// PortalClient resolves plugin versions against a plugin-index repository.
// It maps plugin identifiers to marker coordinates and then uses the same
// metadata mechanism as the library resolver.
type PortalClient struct {
	http    *HTTPClient
	baseURL string
}

// PortalOption configures a PortalClient.
type PortalOption func(*PortalClient)

// WithPortalURL overrides the portal base URL.
func WithPortalURL(url string) PortalOption {
	return func(p *PortalClient) {
		p.baseURL = url
	}
}

// WithPortalHTTPClient replaces the retrying HTTP client.
func WithPortalHTTPClient(hc *HTTPClient) PortalOption {
	return func(p *PortalClient) {
		p.http = hc
	}
}

// NewPortalClient builds a plugin resolver. The base URL is validated once,
// here, like library repository URLs.
func NewPortalClient(opts ...PortalOption) (*PortalClient, error) {
	client := &PortalClient{
		http:    NewHTTPClient(),
		baseURL: GradlePluginPortalURL,
	}
	for _, opt := range opts {
		opt(client)
	}

	if err := ValidateBaseURL(client.baseURL); err != nil {
		return nil, fmt.Errorf("plugin portal: %w", err)
	}
	return client, nil
}

// markerCoordinate maps a plugin identifier (carried in coord.Group) to the
// portal's marker-artifact coordinate.
func markerCoordinate(coord repository.Coordinate) repository.Coordinate {
	return repository.Coordinate{
		Group:    coord.Group,
		Artifact: coord.Group + pluginArtifactSuffix,
	}
}

// AvailableVersions implements repository.Client for plugin identifiers.
func (p *PortalClient) AvailableVersions(coord repository.Coordinate) ([]string, error) {
	meta, err := fetchMetadata(context.Background(), p.http, p.baseURL, markerCoordinate(coord))
	if err != nil {
		logger.Debug("plugin %s: %v", coord.Group, err)
		return nil, nil
	}
	return version.SortDescending(meta.Versions), nil
}

// LatestVersion implements repository.Client for plugin identifiers.
func (p *PortalClient) LatestVersion(coord repository.Coordinate, stableOnly bool) (string, bool, error) {
	meta, err := fetchMetadata(context.Background(), p.http, p.baseURL, markerCoordinate(coord))
	if err != nil {
		logger.Debug("plugin %s: %v", coord.Group, err)
		return "", false, nil
	}
	if len(meta.Versions) == 0 {
		return "", false, nil
	}
	latest, ok := version.Latest(meta.Versions, stableOnly)
	return latest, ok, nil
}
