package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/umoyo-health/umoyoai/internal/cli"
	"github.com/umoyo-health/umoyoai/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "umoyod",
		Short: "Umoyo daemon and admin CLI",
		Long:  "Umoyo daemon for running the API server and managing sections, users and corpus ingestion",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.SectionCmd())
	rootCmd.AddCommand(admin.UserCmd())
	rootCmd.AddCommand(admin.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
