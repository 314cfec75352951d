package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"github.com/umoyo-health/umoyoai/internal/api/handlers"
	"github.com/umoyo-health/umoyoai/internal/config"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/jobs"
	"github.com/umoyo-health/umoyoai/internal/openai"
	"github.com/umoyo-health/umoyoai/internal/repository"
	"github.com/umoyo-health/umoyoai/internal/server"
	"github.com/umoyo-health/umoyoai/internal/service"
	"github.com/umoyo-health/umoyoai/internal/storage"
	"github.com/umoyo-health/umoyoai/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the umoyo API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

// resolvePort lets an explicitly passed --port win over the configured
// port, even when it equals the flag default.
func resolvePort(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("port") {
		return
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	resolvePort(cmd, cfg)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	sectionRepo := repository.NewSectionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	chunkRepo := repository.NewDocumentChunkRepository(pool)
	chatRepo := repository.NewChatRecordRepository(pool)
	handoutRepo := repository.NewHandoutRepository(pool)
	jobRepo := repository.NewIngestionJobRepository(pool)

	uuidGen := &service.DefaultUUIDGenerator{}
	authSvc := service.NewAuthService(userRepo, uuidGen)

	if cfg.InitAdminEmail != "" {
		if err := bootstrapInitialAdmin(ctx, cfg, authSvc); err != nil {
			return fmt.Errorf("failed to bootstrap initial admin: %w", err)
		}
	}

	var answerGen service.AnswerGenerator = &noOpRAG{}
	var handoutGen service.HandoutGenerator = &noOpRAG{}
	var embeddingClient service.EmbeddingClient
	if cfg.HasOpenAI() {
		client := openai.NewClientWithConfig(openai.Config{
			APIKey:              cfg.OpenAIAPIKey,
			EmbeddingModel:      cfg.EmbeddingModel,
			EmbeddingDimensions: cfg.EmbeddingDimensions,
			ChatModel:           cfg.ChatModel,
			EmbedTimeout:        cfg.EmbedTimeout,
			GenerateTimeout:     cfg.GenerateTimeout,
		})
		embeddingClient = client

		retriever := service.NewRetriever(client, chunkRepo)
		ragSvc := service.NewRAGService(retriever, client, service.RAGConfig{
			AnswerK:         cfg.AnswerK,
			AnswerThreshold: cfg.ScoreThreshold,
			HandoutK:        cfg.AnswerK,
			TitleK:          cfg.TitleK,
			Temperature:     cfg.ChatTemperature,
		})
		answerGen = ragSvc
		handoutGen = ragSvc
	} else {
		log.Println("OPENAI_API_KEY not set: ask and handout generation disabled")
	}

	var ingestionWorker *jobs.Worker
	if cfg.HasS3() && embeddingClient != nil {
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
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)

		ingestionSvc := service.NewIngestionService(sectionRepo, chunkRepo, jobRepo, embeddingClient, service.DefaultChunkConfig())
		processor := jobs.NewIngestionWorker(jobRepo, s3Client, ingestionSvc)
		ingestionWorker = jobs.NewWorker(processor, cfg.IngestPollInterval)
		go ingestionWorker.Start(ctx)
		log.Println("ingestion worker started")
	}

	chatSvc := service.NewChatService(sectionRepo, chatRepo, answerGen)
	trainingSvc := service.NewTrainingService(sectionRepo, handoutRepo, handoutGen)

	router := server.NewRouter(server.RouterConfig{
		AuthValidator:   authSvc,
		ChatHandler:     handlers.NewChatHandler(chatSvc),
		TrainingHandler: handlers.NewTrainingHandler(trainingSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if ingestionWorker != nil {
		ingestionWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// noOpRAG stands in when no embedding provider is configured.
type noOpRAG struct{}

func (n *noOpRAG) Answer(ctx context.Context, question, sectionID string) (string, error) {
	return "", domain.ErrProviderUnavailable
}

func (n *noOpRAG) Handout(ctx context.Context, topic, sectionID string) (*service.HandoutDraft, error) {
	return nil, domain.ErrProviderUnavailable
}

func bootstrapInitialAdmin(ctx context.Context, cfg *config.Config, authSvc *service.AuthService) error {
	if cfg.InitAdminToken == "" {
		return fmt.Errorf("UMOYO_INIT_ADMIN_TOKEN is required when bootstrapping an admin")
	}
	if !service.IsValidAccessToken(cfg.InitAdminToken) {
		return fmt.Errorf("invalid UMOYO_INIT_ADMIN_TOKEN format (expected 'umo_<64 hex chars>')")
	}

	name := cfg.InitAdminName
	if name == "" {
		name = "Administrator"
	}

	user, err := authSvc.CreateUserWithToken(ctx, name, cfg.InitAdminEmail, domain.RoleAdmin, cfg.InitAdminToken)
	if err == domain.ErrUserAlreadyExists {
		log.Printf("bootstrap: admin '%s' already exists", cfg.InitAdminEmail)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("bootstrap: created admin '%s' (id: %s)", user.Email, user.ID)
	return nil
}

func runMigrations(databaseURL string) error {
	// golang-migrate needs a database/sql handle
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
