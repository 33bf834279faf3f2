package main

import (
	"fmt"
	"os"

	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/common/output"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	quiet       bool
	noColor     bool
	logToFile   bool
	projectPath string
)

var rootCmd = &cobra.Command{
	Use:   "gvc",
	Short: "Gradle version catalog updater",
	Long:  `Keeps a Gradle project's version catalog (libs.versions.toml) current by querying the project's Maven repositories for newer dependency and plugin versions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
		if logToFile {
			if err := logger.EnableFileLogging(); err != nil {
				logger.Warn("file logging unavailable: %v", err)
			}
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-file", false, "Append a full trace to the state-dir log file")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "path", "p", ".", "Gradle project directory")
}

func main() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
