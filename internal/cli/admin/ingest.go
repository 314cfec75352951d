package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/umoyo-health/umoyoai/internal/config"
	"github.com/umoyo-health/umoyoai/internal/openai"
	"github.com/umoyo-health/umoyoai/internal/repository"
	"github.com/umoyo-health/umoyoai/internal/service"
	"github.com/umoyo-health/umoyoai/internal/storage"
)

func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest guideline documents into a section's corpus",
		Long:  "Chunk, embed and index guideline documents, either directly or via the background worker",
	}

	cmd.AddCommand(IngestFileCmd())
	cmd.AddCommand(IngestQueueCmd())

	return cmd
}

func IngestFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <section-id> <path>",
		Short: "Ingest a document synchronously",
		Long:  "Read a local document, chunk and embed it, and index it into the section's corpus",
		Args:  cobra.ExactArgs(2),
		RunE:  runIngestFile,
	}

	return cmd
}

func runIngestFile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sectionID, path := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasOpenAI() {
		return fmt.Errorf("UMOYO_OPENAI_API_KEY is required for synchronous ingestion")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sectionRepo := repository.NewSectionRepository(pool)
	chunkRepo := repository.NewDocumentChunkRepository(pool)
	jobRepo := repository.NewIngestionJobRepository(pool)

	client := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		ChatModel:           cfg.ChatModel,
		EmbedTimeout:        cfg.EmbedTimeout,
		GenerateTimeout:     cfg.GenerateTimeout,
	})

	ingestionSvc := service.NewIngestionService(sectionRepo, chunkRepo, jobRepo, client, service.DefaultChunkConfig())

	count, err := ingestionSvc.IngestDocument(ctx, sectionID, filepath.Base(path), string(content))
	if err != nil {
		return fmt.Errorf("failed to ingest document: %w", err)
	}

	fmt.Printf("Indexed %d chunks from %s into section %s\n", count, filepath.Base(path), sectionID)
	return nil
}

func IngestQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue <section-id> <path>",
		Short: "Upload a document and queue it for ingestion",
		Long:  "Upload a local document to object storage and enqueue a job for the background worker",
		Args:  cobra.ExactArgs(2),
		RunE:  runIngestQueue,
	}

	return cmd
}

func runIngestQueue(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sectionID, path := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasS3() {
		return fmt.Errorf("S3 configuration is required for queued ingestion")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("failed to ensure S3 bucket: %w", err)
	}

	sourceFile := filepath.Base(path)
	uuidGen := &service.DefaultUUIDGenerator{}
	objectKey := fmt.Sprintf("sections/%s/%s-%s", sectionID, uuidGen.NewString(), sourceFile)

	if err := s3Client.PutDocument(ctx, objectKey, content, "text/plain"); err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	sectionRepo := repository.NewSectionRepository(pool)
	chunkRepo := repository.NewDocumentChunkRepository(pool)
	jobRepo := repository.NewIngestionJobRepository(pool)

	// Embedding happens in the worker, so no provider client is needed here.
	ingestionSvc := service.NewIngestionService(sectionRepo, chunkRepo, jobRepo, nil, service.DefaultChunkConfig())

	job, err := ingestionSvc.Enqueue(ctx, sectionID, sourceFile, objectKey)
	if err != nil {
		return fmt.Errorf("failed to enqueue ingestion job: %w", err)
	}

	fmt.Printf("Queued ingestion job %s for %s (object key: %s)\n", job.ID, sourceFile, objectKey)
	return nil
}
