package main

import (
	"os"

	"github.com/gradlecat/gvc/internal/catalog"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/common/output"
	"github.com/gradlecat/gvc/internal/update"
	"github.com/spf13/cobra"
)

// checkIncludeUnstable widens candidates to pre-release versions; checks
// consider stable releases only by default
var checkIncludeUnstable bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show available updates without changing anything",
	Long: `Resolve the latest version for every catalog entry and report the
upgrades an update run would apply. The catalog file is never written.
Pre-release versions (alpha, beta, RC) are ignored unless
--include-unstable is set.

Examples:
  gvc check                     Check all entries against stable releases
  gvc check --include-unstable  Consider pre-release candidates too`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkIncludeUnstable, "include-unstable", false, "Consider pre-release versions (alpha, beta, RC)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	info := mustScanProject()
	cfg := mustLoadConfig()

	doc, err := catalog.Load(info.CatalogPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	libraries, plugins := buildClients(info, cfg)
	updater := update.New(libraries, plugins,
		update.WithStableOnly(!checkIncludeUnstable),
	)

	report, err := updater.Check(doc)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if report.IsEmpty() {
		output.PrintSuccess("everything is up to date")
		return
	}
	printReport(report, false)
}
