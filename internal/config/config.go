package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey        string  `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel      string  `envconfig:"EMBEDDING_MODEL" default:"text-embedding-ada-002"`
	EmbeddingDimensions int     `envconfig:"EMBEDDING_DIMENSIONS" default:"1536"`
	ChatModel           string  `envconfig:"CHAT_MODEL" default:"gpt-4o"`
	ChatTemperature     float32 `envconfig:"CHAT_TEMPERATURE" default:"0.1"`

	// Retrieval knobs. AnswerK/ScoreThreshold drive the Q&A path; handout
	// body retrieval reuses AnswerK without a threshold and the title
	// sub-call uses TitleK.
	AnswerK        int     `envconfig:"ANSWER_K" default:"5"`
	ScoreThreshold float32 `envconfig:"SCORE_THRESHOLD" default:"0.8"`
	TitleK         int     `envconfig:"TITLE_K" default:"3"`

	// External calls are bounded; a timeout surfaces as an upstream failure
	// rather than hanging the request.
	EmbedTimeout    time.Duration `envconfig:"EMBED_TIMEOUT" default:"30s"`
	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" default:"60s"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"umoyo-corpus"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	IngestPollInterval time.Duration `envconfig:"INGEST_POLL_INTERVAL" default:"10s"`

	// Bootstrap: create the initial admin account on startup
	InitAdminName  string `envconfig:"INIT_ADMIN_NAME"`
	InitAdminEmail string `envconfig:"INIT_ADMIN_EMAIL"`
	InitAdminToken string `envconfig:"INIT_ADMIN_TOKEN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("UMOYO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
