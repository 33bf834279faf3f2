package main

import (
	"errors"
	"os"

	"github.com/gradlecat/gvc/internal/catalog"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/common/output"
	"github.com/gradlecat/gvc/internal/git"
	"github.com/gradlecat/gvc/internal/project"
	"github.com/gradlecat/gvc/internal/update"
	"github.com/spf13/cobra"
)

var (
	// updateStableOnly restricts candidates to stable releases
	updateStableOnly bool
	// updateInteractive prompts before each change
	updateInteractive bool
	// updateNoGit skips the branch-and-commit workflow
	updateNoGit bool
)

var updateCmd = &cobra.Command{
	Use:   "update [pattern]",
	Short: "Update catalog entries to their latest versions",
	Long: `Update the project's version catalog in place.

Without a pattern, every version alias, library, and plugin is checked and
updated. With a pattern, a single matching entry is updated, with explicit
version selection in interactive mode.

In a git work tree the rewritten catalog is committed on a deps/update-*
branch; --no-git writes the file and stops there.

Examples:
  gvc update                     Update everything
  gvc update --stable-only       Ignore alphas, betas, RCs, snapshots
  gvc update -i                  Confirm each change
  gvc update okhttp              Update the entry matching "okhttp"
  gvc update "kotlin-*" -i       Pick a matching entry and version`,
	Args: cobra.MaximumNArgs(1),
	Run:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateStableOnly, "stable-only", false, "Only consider stable versions")
	updateCmd.Flags().BoolVarP(&updateInteractive, "interactive", "i", false, "Confirm each change")
	updateCmd.Flags().BoolVar(&updateNoGit, "no-git", false, "Do not create a branch or commit")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	info := mustScanProject()
	cfg := mustLoadConfig()

	stableOnly := updateStableOnly || cfg.Updates.StableOnly
	interactive := updateInteractive || cfg.Updates.Interactive
	useGit := info.HasGit && !updateNoGit && !cfg.Git.Disabled

	var runner git.Executor
	if useGit {
		runner = git.NewRunner(info.Dir)
		if err := git.EnsureClean(runner); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
	}

	doc, err := catalog.Load(info.CatalogPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	libraries, plugins := buildClients(info, cfg)
	updater := update.New(libraries, plugins,
		update.WithStableOnly(stableOnly),
		update.WithInteraction(update.NewInteraction(interactive, os.Stdin, os.Stdout)),
	)

	var report *update.Report
	if len(args) == 1 {
		report, err = updater.UpdateTargeted(doc, args[0])
	} else {
		report, err = updater.UpdateAll(doc)
	}
	if err != nil {
		if errors.Is(err, update.ErrCancelled) {
			output.PrintWarning("cancelled, nothing written")
			return
		}
		logger.Error("%v", err)
		os.Exit(1)
	}

	if report.IsEmpty() {
		output.PrintInfo("everything is up to date")
		return
	}

	if err := doc.WriteFile(info.CatalogPath); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	printReport(report, true)

	if useGit {
		if err := git.CommitUpdate(runner, project.CatalogRelPath, report.Total()); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		output.PrintSuccess("committed on a new %s* branch", git.BranchPrefix)
	}
}
