// Package project locates and validates the Gradle project a run operates
// on.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gradlecat/gvc/internal/common/logger"
)

// CatalogRelPath is where Gradle conventionally keeps the version catalog,
// relative to the project root.
const CatalogRelPath = "gradle/libs.versions.toml"

var (
	// ErrNotGradleProject means the directory has no Gradle wrapper script.
	ErrNotGradleProject = errors.New("not a Gradle project")
	// ErrNoCatalog means the project has no version catalog to update.
	ErrNoCatalog = errors.New("no version catalog found")
)

// Info describes a validated Gradle project.
type Info struct {
	// Dir is the project root.
	Dir string
	// CatalogPath is the absolute path of the version catalog file.
	CatalogPath string
	// HasGit reports whether the project root is a git work tree.
	HasGit bool
}

// Scan validates that dir is a Gradle project with a version catalog. The
// wrapper script (gradlew or gradlew.bat) marks the project root; its
// absence means the directory is not a Gradle project at all, which is a
// different failure than a project that simply has no catalog.
func Scan(dir string) (*Info, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}

	if !fileExists(filepath.Join(abs, "gradlew")) && !fileExists(filepath.Join(abs, "gradlew.bat")) {
		return nil, fmt.Errorf("%w: no gradlew wrapper in %s", ErrNotGradleProject, abs)
	}

	catalogPath := filepath.Join(abs, filepath.FromSlash(CatalogRelPath))
	if !fileExists(catalogPath) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNoCatalog, catalogPath)
	}

	info := &Info{
		Dir:         abs,
		CatalogPath: catalogPath,
	}
	if dirExists(filepath.Join(abs, ".git")) {
		info.HasGit = true
	}
	logger.Debug("project %s (git: %v)", abs, info.HasGit)
	return info, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
