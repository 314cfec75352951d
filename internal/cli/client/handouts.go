package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type handout struct {
	ID          string `json:"id"`
	SectionID   string `json:"section_id"`
	CreatedByID string `json:"created_by_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CreatedAt   string `json:"created_at"`
}

func HandoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handout",
		Short: "Generate and manage training handouts",
		Long:  "Generate long-form training handouts from a section's corpus and manage existing ones",
	}

	cmd.AddCommand(HandoutGenerateCmd())
	cmd.AddCommand(HandoutListCmd())
	cmd.AddCommand(HandoutGetCmd())
	cmd.AddCommand(HandoutDeleteCmd())

	return cmd
}

func HandoutGenerateCmd() *cobra.Command {
	var sectionID string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate <topic...>",
		Short: "Generate a training handout for a topic",
		Long:  "Generates a slide-structured handout grounded in the section's corpus. Instructor or admin role required.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runHandoutGenerate(cmd, sectionID, strings.Join(args, " "), outputFile, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Section ID to ground the handout in")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the handout body to a file instead of stdout")
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")
	cmd.MarkFlagRequired("section")

	return cmd
}

func runHandoutGenerate(cmd *cobra.Command, sectionID, topic, outputFile string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/handouts", map[string]string{
		"section_id": sectionID,
		"topic":      topic,
	})
	if err != nil {
		return err
	}

	var h handout
	if err := json.Unmarshal(resp.Data, &h); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(h.Body), 0644); err != nil {
			return fmt.Errorf("failed to write handout: %w", err)
		}
		fmt.Printf("Handout '%s' (%s) written to %s\n", h.Title, h.ID, outputFile)
		return nil
	}

	if outputJSON {
		data, _ := json.MarshalIndent(h, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("# %s\n\n%s\n", h.Title, h.Body)
	}

	return nil
}

func HandoutListCmd() *cobra.Command {
	var (
		sectionID string
		createdBy string
		search    string
		order     string
		offset    int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List handouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runHandoutList(cmd, sectionID, createdBy, search, order, offset, limit, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Filter by section ID")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Filter by creating user ID")
	cmd.Flags().StringVar(&search, "search", "", "Filter by title or body substring")
	cmd.Flags().StringVar(&order, "order", "desc", "Sort order by creation time (asc or desc)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Page size")
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")

	return cmd
}

func runHandoutList(cmd *cobra.Command, sectionID, createdBy, search, order string, offset, limit int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	query := url.Values{}
	if sectionID != "" {
		query.Set("section_id", sectionID)
	}
	if createdBy != "" {
		query.Set("created_by", createdBy)
	}
	if search != "" {
		query.Set("search", search)
	}
	if order != "" {
		query.Set("order", order)
	}
	query.Set("offset", fmt.Sprintf("%d", offset))
	query.Set("limit", fmt.Sprintf("%d", limit))

	resp, err := api.Get("/v1/handouts?" + query.Encode())
	if err != nil {
		return err
	}

	var result struct {
		Items      []*handout `json:"items"`
		Total      int        `json:"total"`
		TotalPages int        `json:"total_pages"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(result.Items) == 0 {
		fmt.Println("No handouts found")
		return nil
	}
	for _, h := range result.Items {
		fmt.Printf("%s  %s (created: %s)\n", h.ID, h.Title, h.CreatedAt)
	}
	fmt.Printf("\n%d handouts, %d pages\n", result.Total, result.TotalPages)

	return nil
}

func HandoutGetCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one handout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runHandoutGet(cmd, args[0], outputFile, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the handout body to a file instead of stdout")
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")

	return cmd
}

func runHandoutGet(cmd *cobra.Command, id, outputFile string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/v1/handouts/" + url.PathEscape(id))
	if err != nil {
		return err
	}

	var h handout
	if err := json.Unmarshal(resp.Data, &h); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(h.Body), 0644); err != nil {
			return fmt.Errorf("failed to write handout: %w", err)
		}
		fmt.Printf("Handout '%s' written to %s\n", h.Title, outputFile)
		return nil
	}

	if outputJSON {
		data, _ := json.MarshalIndent(h, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("# %s\n\n%s\n", h.Title, h.Body)
	}

	return nil
}

func HandoutDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a handout",
		Long:  "Deletes a handout. Admins may delete any handout; instructors only their own.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHandoutDelete(cmd, args[0])
		},
	}

	cmd.Flags().String("api-key", "", "Access token (overrides config)")
	cmd.Flags().String("api-url", "", "API base URL (overrides config)")

	return cmd
}

func runHandoutDelete(cmd *cobra.Command, id string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	if _, err := api.Delete("/v1/handouts/" + url.PathEscape(id)); err != nil {
		return err
	}

	fmt.Printf("Handout %s deleted\n", id)
	return nil
}
