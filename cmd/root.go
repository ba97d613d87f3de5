package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "tagscribe",
	Short:   "Tag transcript passages with a hierarchical taxonomy",
	Long:    `tagscribe stores versioned video transcripts and records tag impressions against them.`,
	Version: version,
	// errors are already printed by cobra; don't repeat the usage text
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
