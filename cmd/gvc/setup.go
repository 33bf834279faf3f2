package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gradlecat/gvc/internal/common/config"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/common/output"
	"github.com/gradlecat/gvc/internal/gradle"
	"github.com/gradlecat/gvc/internal/maven"
	"github.com/gradlecat/gvc/internal/project"
	"github.com/gradlecat/gvc/internal/repository"
	"github.com/gradlecat/gvc/internal/update"
)

// mustScanProject validates the --path project or exits.
func mustScanProject() *project.Info {
	info, err := project.Scan(projectPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	return info
}

// mustLoadConfig reads the user configuration or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}
	return cfg
}

// buildClients wires the library and plugin resolvers: repositories
// discovered from the project's build scripts, extra repositories from the
// user config, and HTTP tuning from the user config.
func buildClients(info *project.Info, cfg *config.Config) (*maven.Client, *maven.PortalClient) {
	retry := maven.DefaultRetryConfig()
	if cfg.HTTP.MaxRetries > 0 {
		retry.MaxRetries = uint64(cfg.HTTP.MaxRetries)
	}
	if cfg.HTTP.TimeoutSeconds > 0 {
		retry.Timeout = time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	}
	httpClient := maven.NewHTTPClientWithConfig(retry)

	repos := gradle.DiscoverRepositories(info.Dir)
	for _, extra := range cfg.Repositories {
		repos = append(repos, repository.Repository{
			Name:         extra.Name,
			URL:          extra.URL,
			GroupFilters: extra.GroupFilters,
		})
	}

	libraries, err := maven.NewClient(repos, maven.WithHTTPClient(httpClient))
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	plugins, err := maven.NewPortalClient(maven.WithPortalHTTPClient(httpClient))
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	logger.Info("resolving against %d repositories", len(libraries.Repositories()))
	return libraries, plugins
}

// printReport renders the changes of one run, section by section.
func printReport(report *update.Report, applied bool) {
	printSection := func(title string, changes map[string]update.Change) {
		if len(changes) == 0 {
			return
		}
		output.Println(output.Header, title)
		for _, alias := range update.SortedKeys(changes) {
			change := changes[alias]
			output.Printf(output.Entry, "  %s", alias)
			fmt.Printf(": %s\n", output.FormatChange(change.Old, change.New))
		}
	}

	printSection("Version aliases", report.Aliases)
	printSection("Libraries", report.Libraries)
	printSection("Plugins", report.Plugins)

	noun := "updates"
	if report.Total() == 1 {
		noun = "update"
	}
	if applied {
		output.PrintSuccess("%d %s applied", report.Total(), noun)
	} else {
		output.PrintInfo("%d %s available", report.Total(), noun)
	}
}
