package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

type chatRecord struct {
	ID        string `json:"id"`
	SectionID string `json:"section_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
}

func AskCmd() *cobra.Command {
	var sectionID string

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a question against a section's corpus",
		Long:  "Sends a question scoped to a curricular section and prints the grounded answer.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runAsk(cmd, sectionID, strings.Join(args, " "), outputJSON)
		},
	}

	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Section ID to scope the question to")
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")
	cmd.MarkFlagRequired("section")

	return cmd
}

func runAsk(cmd *cobra.Command, sectionID, question string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/ask", map[string]string{
		"section_id": sectionID,
		"question":   question,
	})
	if err != nil {
		return err
	}

	var result struct {
		Answer      string        `json:"answer"`
		RecentChats []*chatRecord `json:"recent_chats"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Println(result.Answer)
	}

	return nil
}

func RecentCmd() *cobra.Command {
	var sectionID string
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show your recent questions in a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runRecent(cmd, sectionID, limit, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Section ID")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of chats")
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")
	cmd.MarkFlagRequired("section")

	return cmd
}

func runRecent(cmd *cobra.Command, sectionID string, limit int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/v1/recent-chats?section_id=%s&limit=%d", url.QueryEscape(sectionID), limit)
	resp, err := api.Get(path)
	if err != nil {
		return err
	}

	var records []*chatRecord
	if err := json.Unmarshal(resp.Data, &records); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No recent chats")
		return nil
	}
	for _, r := range records {
		fmt.Printf("Q: %s\nA: %s\n\n", r.Question, r.Answer)
	}

	return nil
}
