package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gradlecat/gvc/internal/catalog"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/common/output"
	"github.com/gradlecat/gvc/internal/repository"
	"github.com/spf13/cobra"
)

var (
	// addAlias overrides the alias derived from the coordinate
	addAlias string
	// addVersionAlias overrides the derived version alias
	addVersionAlias string
	// addPlugin treats the argument as a plugin id instead of a library coordinate
	addPlugin bool
	// addNoVerify skips the remote existence check
	addNoVerify bool
)

var addCmd = &cobra.Command{
	Use:   "add <group:artifact[:version]>",
	Short: "Add a library or plugin to the version catalog",
	Long: `Append a new entry to the catalog, wired through a version alias:

  [versions]
  squareup-okhttp3 = "4.12.0"
  [libraries]
  squareup-okhttp3-okhttp = { module = "com.squareup.okhttp3:okhttp", version = { ref = "squareup-okhttp3" } }

When the version is omitted the latest published version is resolved from
the configured repositories; a given version is checked against them
unless --no-verify is set.

Examples:
  gvc add com.squareup.okhttp3:okhttp
  gvc add com.squareup.okhttp3:okhttp:4.12.0 --alias okhttp
  gvc add org.jetbrains.kotlin.jvm --plugin
  gvc add org.jetbrains.kotlin.jvm:2.0.20 --plugin --no-verify`,
	Args: cobra.ExactArgs(1),
	Run:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addAlias, "alias", "", "Alias for the new entry (default derived from the coordinate)")
	addCmd.Flags().StringVar(&addVersionAlias, "version-alias", "", "Version alias to declare or reuse (default derived from the group)")
	addCmd.Flags().BoolVar(&addPlugin, "plugin", false, "Add a plugin id instead of a library coordinate")
	addCmd.Flags().BoolVar(&addNoVerify, "no-verify", false, "Skip checking that the dependency exists remotely")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	info := mustScanProject()
	cfg := mustLoadConfig()

	doc, err := catalog.Load(info.CatalogPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	libraries, plugins := buildClients(info, cfg)

	var section, alias string
	if addPlugin {
		section = catalog.SectionPlugins
		alias, err = addPluginEntry(doc, args[0], plugins)
	} else {
		section = catalog.SectionLibraries
		alias, err = addLibraryEntry(doc, args[0], libraries)
	}
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if err := doc.WriteFile(info.CatalogPath); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	output.PrintSuccess("added %s", output.FormatEntry(section, alias))
}

func addLibraryEntry(doc *catalog.Document, arg string, client repository.Client) (string, error) {
	coord, ver, err := repository.ParseCoordinate(arg)
	if err != nil {
		return "", err
	}
	ver, err = resolveOrVerify(client, coord, ver)
	if err != nil {
		return "", err
	}

	alias := catalog.LibraryAlias(coord)
	if addAlias != "" {
		alias = catalog.SanitizeAlias(addAlias)
	}
	versionAlias := catalog.VersionAlias(coord.Group)
	if addVersionAlias != "" {
		versionAlias = catalog.SanitizeAlias(addVersionAlias)
	}

	reused, err := declareVersionAlias(doc, versionAlias, ver)
	if err != nil {
		return "", err
	}
	if err := doc.AddLibrary(alias, coord, versionAlias); err != nil {
		return "", err
	}
	if reused {
		output.PrintInfo("version alias %q updated to %s", versionAlias, ver)
	}
	return alias, nil
}

func addPluginEntry(doc *catalog.Document, arg string, client repository.Client) (string, error) {
	id, ver := splitPluginArg(arg)
	if id == "" || strings.Contains(id, " ") {
		return "", fmt.Errorf("invalid plugin argument %q: expected id[:version]", arg)
	}
	ver, err := resolveOrVerify(client, repository.PluginCoordinate(id), ver)
	if err != nil {
		return "", err
	}

	alias := catalog.PluginAlias(id)
	if addAlias != "" {
		alias = catalog.SanitizeAlias(addAlias)
	}
	versionAlias := catalog.VersionAlias(id)
	if addVersionAlias != "" {
		versionAlias = catalog.SanitizeAlias(addVersionAlias)
	}

	reused, err := declareVersionAlias(doc, versionAlias, ver)
	if err != nil {
		return "", err
	}
	if err := doc.AddPlugin(alias, id, versionAlias); err != nil {
		return "", err
	}
	if reused {
		output.PrintInfo("version alias %q updated to %s", versionAlias, ver)
	}
	return alias, nil
}

// declareVersionAlias upserts the alias and reports whether an existing
// alias was rewritten to a different value.
func declareVersionAlias(doc *catalog.Document, name, version string) (bool, error) {
	existed := false
	for _, a := range doc.Aliases() {
		if a.Name == name {
			existed = true
		}
	}
	changed, err := doc.UpsertAlias(name, version)
	if err != nil {
		return false, err
	}
	return existed && changed, nil
}

// resolveOrVerify returns the latest version when ver is empty, otherwise
// checks that ver is actually published for the coordinate.
func resolveOrVerify(client repository.Client, coord repository.Coordinate, ver string) (string, error) {
	if ver == "" {
		latest, ok, err := client.LatestVersion(coord, false)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("no published versions found for %s", coord)
		}
		return latest, nil
	}
	if addNoVerify {
		return ver, nil
	}

	available, err := client.AvailableVersions(coord)
	if err != nil {
		return "", err
	}
	for _, v := range available {
		if v == ver {
			return ver, nil
		}
	}
	return "", fmt.Errorf("version %s of %s is not published in the configured repositories", ver, coord)
}

func splitPluginArg(arg string) (id, version string) {
	if i := strings.LastIndex(arg, ":"); i >= 0 {
		return arg[:i], arg[i+1:]
	}
	return arg, ""
}
