package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

type section struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func SectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List available curricular sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runSections(cmd, outputJSON)
		},
	}

	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")

	return cmd
}

func runSections(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/v1/sections")
	if err != nil {
		return err
	}

	var sections []*section
	if err := json.Unmarshal(resp.Data, &sections); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		data, _ := json.MarshalIndent(sections, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(sections) == 0 {
		fmt.Println("No sections available")
		return nil
	}
	for _, s := range sections {
		fmt.Printf("%s  %s\n", s.ID, s.Name)
		if s.Description != "" {
			fmt.Printf("    %s\n", s.Description)
		}
	}

	return nil
}

func SampleQuestionsCmd() *cobra.Command {
	var sectionID string
	var count int

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Show example questions for a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runSampleQuestions(cmd, sectionID, count, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Section ID")
	cmd.Flags().IntVarP(&count, "count", "n", 3, "Number of sample questions")
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")
	cmd.MarkFlagRequired("section")

	return cmd
}

func runSampleQuestions(cmd *cobra.Command, sectionID string, count int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/v1/sample-questions?section_id=%s&n=%d", url.QueryEscape(sectionID), count)
	resp, err := api.Get(path)
	if err != nil {
		return err
	}

	var questions []string
	if err := json.Unmarshal(resp.Data, &questions); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		data, _ := json.MarshalIndent(questions, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(questions) == 0 {
		fmt.Println("No sample questions yet")
		return nil
	}
	for _, q := range questions {
		fmt.Printf("- %s\n", q)
	}

	return nil
}
