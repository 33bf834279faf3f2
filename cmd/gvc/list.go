package main

import (
	"fmt"
	"os"

	"github.com/gradlecat/gvc/internal/catalog"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/common/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries declared in the version catalog",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	info := mustScanProject()

	doc, err := catalog.Load(info.CatalogPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	aliases := doc.Aliases()
	if len(aliases) > 0 {
		output.Printf(output.Header, "[%s]\n", catalog.SectionVersions)
		for _, a := range aliases {
			output.Printf(output.Entry, "  %s", a.Name)
			fmt.Printf(" = %s\n", a.Value)
		}
	}

	refs := make(map[string]string, len(aliases))
	for _, a := range aliases {
		refs[a.Name] = a.Value
	}

	libraries := doc.Libraries()
	if len(libraries) > 0 {
		output.Printf(output.Header, "[%s]\n", catalog.SectionLibraries)
		for _, lib := range libraries {
			output.Printf(output.Entry, "  %s", lib.Alias)
			fmt.Printf(" = %s%s\n", lib.Coordinate.String(), formatSlot(lib.Version, refs))
		}
	}

	plugins := doc.Plugins()
	if len(plugins) > 0 {
		output.Printf(output.Header, "[%s]\n", catalog.SectionPlugins)
		for _, p := range plugins {
			output.Printf(output.Entry, "  %s", p.Alias)
			fmt.Printf(" = %s%s\n", p.ID, formatSlot(p.Version, refs))
		}
	}

	if len(aliases)+len(libraries)+len(plugins) == 0 {
		output.PrintWarning("catalog declares no entries")
	}
}

func formatSlot(slot catalog.VersionSlot, refs map[string]string) string {
	switch {
	case slot.IsRef():
		if resolved, ok := refs[slot.Ref]; ok {
			return fmt.Sprintf(":%s (ref %s)", resolved, slot.Ref)
		}
		return fmt.Sprintf(" (ref %s)", slot.Ref)
	case slot.IsLiteral():
		return ":" + slot.Literal
	default:
		return ""
	}
}
