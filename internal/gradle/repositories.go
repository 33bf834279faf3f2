// Package gradle extracts repository declarations from Gradle build
// scripts so version lookups query the same indexes the build itself
// resolves from.
package gradle

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/maven"
	"github.com/gradlecat/gvc/internal/repository"
)

// JCenterURL is the (read-only, sunset) Bintray JCenter endpoint some older
// builds still declare.
const JCenterURL = "https://jcenter.bintray.com"

// scriptNames are the build scripts checked for repository declarations,
// in precedence order. Settings scripts win because dependencyResolution
// Management there overrides per-project blocks.
var scriptNames = []string{
	"settings.gradle.kts",
	"settings.gradle",
	"build.gradle.kts",
	"build.gradle",
}

var (
	mavenCentralCall = regexp.MustCompile(`\bmavenCentral\s*\(\s*\)`)
	googleCall       = regexp.MustCompile(`\bgoogle\s*\(\s*\)`)
	pluginPortalCall = regexp.MustCompile(`\bgradlePluginPortal\s*\(\s*\)`)
	jcenterCall      = regexp.MustCompile(`\bjcenter\s*\(\s*\)`)

	// Custom repository URLs, covering the Kotlin and Groovy spellings:
	// maven("https://...")
	// maven { url = uri("https://...") }
	// maven { url 'https://...' }
	// url = "https://..."
	customURL = regexp.MustCompile(`(?:maven\s*\(\s*|url\s*=?\s*(?:uri\s*\(\s*)?)["']([^"']+)["']`)
)

// DiscoverRepositories scans the project's build scripts and returns the
// Maven repositories they declare, in declaration order with duplicates
// removed. Projects declaring no repositories get the default list.
func DiscoverRepositories(projectDir string) []repository.Repository {
	var repos []repository.Repository
	seen := make(map[string]bool)

	add := func(r repository.Repository) {
		key := strings.TrimRight(r.URL, "/")
		if seen[key] {
			return
		}
		seen[key] = true
		repos = append(repos, r)
	}

	for _, name := range scriptNames {
		data, err := os.ReadFile(filepath.Join(projectDir, name))
		if err != nil {
			continue
		}
		logger.Debug("scanning %s for repositories", name)
		for _, r := range parseScript(string(data)) {
			add(r)
		}
	}

	if len(repos) == 0 {
		logger.Debug("no repositories declared, using defaults")
		return maven.DefaultRepositories()
	}
	return repos
}

// parseScript collects repository declarations from one script, preserving
// the order they appear in.
func parseScript(content string) []repository.Repository {
	var repos []repository.Repository
	for _, line := range strings.Split(content, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		switch {
		case mavenCentralCall.MatchString(line):
			repos = append(repos, repository.Repository{Name: "Maven Central", URL: maven.MavenCentralURL})
		case googleCall.MatchString(line):
			repos = append(repos, repository.Repository{
				Name:         "Google Maven",
				URL:          maven.GoogleMavenURL,
				GroupFilters: []string{".*google.*", ".*android.*", ".*androidx.*"},
			})
		case pluginPortalCall.MatchString(line):
			repos = append(repos, repository.Repository{Name: "Gradle Plugin Portal", URL: maven.GradlePluginPortalURL})
		case jcenterCall.MatchString(line):
			repos = append(repos, repository.Repository{Name: "JCenter", URL: JCenterURL})
		default:
			for _, m := range customURL.FindAllStringSubmatch(line, -1) {
				url := m[1]
				if err := maven.ValidateBaseURL(url); err != nil {
					logger.Warn("ignoring repository URL %s: %v", url, err)
					continue
				}
				repos = append(repos, repository.Repository{Name: customName(url), URL: url})
			}
		}
	}
	return repos
}

// customName derives a display name for a custom repository from its host.
func customName(rawURL string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	if idx := strings.IndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return "Custom (" + trimmed + ")"
}
