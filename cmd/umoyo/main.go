package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/umoyo-health/umoyoai/internal/cli"
	"github.com/umoyo-health/umoyoai/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "umoyo",
		Short: "Umoyo CLI - Grounded answers for public health field workers",
		Long: `Umoyo CLI asks questions against curricular section corpora and
generates training handouts.

Environment variables:
  UMOYO_API_KEY   Access token for authentication (required)
  UMOYO_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.RecentCmd())
	rootCmd.AddCommand(client.SectionsCmd())
	rootCmd.AddCommand(client.SampleQuestionsCmd())
	rootCmd.AddCommand(client.HandoutCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
