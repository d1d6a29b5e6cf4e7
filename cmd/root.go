package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the workdeck application
var rootCmd = &cobra.Command{
	Use:   "workdeck",
	Short: "Google Workspace agent with a Claude planning loop",
	Long: `workdeck exposes Google Workspace operations (Gmail, Calendar, Drive,
Docs, Sheets, Slides, Forms, Chat, Tasks, Search) as a uniform capability
catalog and drives it two ways:

  - An MCP (Model Context Protocol) server for AI assistants
  - A built-in planning loop that runs natural-language objectives
    against the catalog via Claude`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "workdeck version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCapabilitiesCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
