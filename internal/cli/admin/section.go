package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/umoyo-health/umoyoai/internal/config"
	"github.com/umoyo-health/umoyoai/internal/repository"
	"github.com/umoyo-health/umoyoai/internal/service"
)

func SectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage curricular sections",
		Long:  "Create and list curricular sections",
	}

	cmd.AddCommand(SectionCreateCmd())
	cmd.AddCommand(SectionListCmd())

	return cmd
}

func SectionCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new section",
		Long:  "Create a new curricular section with the specified name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runSectionCreate(args[0], description, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Section description")

	return cmd
}

func runSectionCreate(name, description, outputFormat string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sectionRepo := repository.NewSectionRepository(pool)
	uuidGen := &service.DefaultUUIDGenerator{}
	sectionSvc := service.NewSectionService(sectionRepo, uuidGen)

	section, err := sectionSvc.Create(ctx, name, description)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"id":          section.ID,
			"name":        section.Name,
			"description": section.Description,
			"created_at":  section.CreatedAt,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("Section created: %s (%s)\n", section.Name, section.ID)
	}

	return nil
}

func SectionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sections",
		Long:  "List all curricular sections in the system",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runSectionList(outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runSectionList(outputFormat string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sectionRepo := repository.NewSectionRepository(pool)
	chunkRepo := repository.NewDocumentChunkRepository(pool)

	sections, err := sectionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	if outputFormat == "json" {
		data := make([]map[string]interface{}, len(sections))
		for i, s := range sections {
			chunks, _ := chunkRepo.CountBySection(ctx, s.ID)
			data[i] = map[string]interface{}{
				"id":          s.ID,
				"name":        s.Name,
				"description": s.Description,
				"chunks":      chunks,
				"created_at":  s.CreatedAt,
			}
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		if len(sections) == 0 {
			fmt.Println("No sections found")
			return nil
		}
		fmt.Println("Sections:")
		for _, s := range sections {
			chunks, _ := chunkRepo.CountBySection(ctx, s.ID)
			fmt.Printf("  %s: %s (%d chunks, created: %s)\n", s.ID, s.Name, chunks, s.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}

func getDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
