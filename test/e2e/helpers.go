//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/umoyo-health/umoyoai/internal/api/handlers"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/jobs"
	"github.com/umoyo-health/umoyoai/internal/repository"
	"github.com/umoyo-health/umoyoai/internal/server"
	"github.com/umoyo-health/umoyoai/internal/service"
	"github.com/umoyo-health/umoyoai/internal/storage"
	"github.com/umoyo-health/umoyoai/internal/testutil"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	RustFSC      *testutil.RustFSContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	S3Client     *storage.S3Client
	Ingestion    *service.IngestionService
	Auth         *service.AuthService
	Sections     *service.SectionService

	SectionID       string
	FieldToken      string
	InstructorToken string
	AdminToken      string

	HTTPClient *http.Client
}

// stubEmbedder maps every text to the same unit vector, so any indexed chunk
// matches any query with cosine similarity 1.
type stubEmbedder struct{}

func (stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	v := make([]float32, 1536)
	v[0] = 1
	return v, nil
}

// stubGenerator returns a fixed completion for every prompt.
type stubGenerator struct {
	response string
}

func (g stubGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return g.response, nil
}

// SetupE2EEnv creates a full E2E test environment with containers and server
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	s3C := testutil.NewRustFSContainer(ctx, t)

	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        s3C.Endpoint(),
		Region:          "us-east-1",
		AccessKeyID:     "rustfsadmin",
		SecretAccessKey: "rustfsadmin",
		Bucket:          "test-corpus",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("failed to create S3 client: %v", err)
	}

	if err := s3Client.EnsureBucket(ctx); err != nil {
		t.Fatalf("failed to create bucket: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	env := &E2ETestEnv{
		T:          t,
		Ctx:        ctx,
		PostgresC:  pgC,
		RustFSC:    s3C,
		Pool:       pool,
		S3Client:   s3Client,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}

	env.ServerURL, env.ServerCloser = env.startServer(port)
	return env
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.RustFSC != nil {
		e.RustFSC.Terminate(e.Ctx)
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// Bootstrap creates a section and one user per role, keeping their tokens.
func (e *E2ETestEnv) Bootstrap() {
	section, err := e.Sections.Create(e.Ctx, "Cholera Response", "Outbreak response curriculum")
	if err != nil {
		e.T.Fatalf("failed to create section: %v", err)
	}
	e.SectionID = section.ID

	_, e.FieldToken = e.createUser("Field Worker", "worker@example.org", domain.RoleFieldWorker)
	_, e.InstructorToken = e.createUser("Instructor", "instructor@example.org", domain.RoleInstructor)
	_, e.AdminToken = e.createUser("Admin", "admin@example.org", domain.RoleAdmin)
}

func (e *E2ETestEnv) createUser(fullName, email string, role domain.Role) (*domain.User, string) {
	user, token, err := e.Auth.CreateUser(e.Ctx, fullName, email, role)
	if err != nil {
		e.T.Fatalf("failed to create %s user: %v", role, err)
	}
	return user, token
}

// IngestDocument indexes a source document into a section synchronously.
func (e *E2ETestEnv) IngestDocument(sectionID, sourceFile, content string) int {
	count, err := e.Ingestion.IngestDocument(e.Ctx, sectionID, sourceFile, content)
	if err != nil {
		e.T.Fatalf("failed to ingest document: %v", err)
	}
	return count
}

// startServer wires repositories and services with stub model clients and
// serves the real router.
func (e *E2ETestEnv) startServer(port int) (string, func()) {
	sectionRepo := repository.NewSectionRepository(e.Pool)
	chatRepo := repository.NewChatRecordRepository(e.Pool)
	handoutRepo := repository.NewHandoutRepository(e.Pool)
	userRepo := repository.NewUserRepository(e.Pool)
	chunkRepo := repository.NewDocumentChunkRepository(e.Pool)
	jobRepo := repository.NewIngestionJobRepository(e.Pool)

	uuidGen := &service.DefaultUUIDGenerator{}
	retriever := service.NewRetriever(stubEmbedder{}, chunkRepo)
	rag := service.NewRAGService(retriever, stubGenerator{response: "Canned model output."}, service.DefaultRAGConfig())
	chatSvc := service.NewChatService(sectionRepo, chatRepo, rag)
	trainingSvc := service.NewTrainingService(sectionRepo, handoutRepo, rag)

	e.Auth = service.NewAuthService(userRepo, uuidGen)
	e.Sections = service.NewSectionService(sectionRepo, uuidGen)
	e.Ingestion = service.NewIngestionService(sectionRepo, chunkRepo, jobRepo, stubEmbedder{}, service.DefaultChunkConfig())

	router := server.NewRouter(server.RouterConfig{
		AuthValidator:   e.Auth,
		ChatHandler:     handlers.NewChatHandler(chatSvc),
		TrainingHandler: handlers.NewTrainingHandler(trainingSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			e.T.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(e.T, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

// NewIngestionWorker builds an ingestion worker wired to this environment's
// storage and index, for driving queued jobs from tests.
func (e *E2ETestEnv) NewIngestionWorker() *jobs.IngestionWorker {
	return jobs.NewIngestionWorker(
		repository.NewIngestionJobRepository(e.Pool),
		e.S3Client,
		e.Ingestion,
	)
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path, authToken string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil, authToken)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}, authToken string) (*APIResponse, error) {
	return e.doRequest("POST", path, body, authToken)
}

// Delete performs a DELETE request
func (e *E2ETestEnv) Delete(path, authToken string) (*APIResponse, error) {
	return e.doRequest("DELETE", path, nil, authToken)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, authToken string) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
