package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/ai-literacy/toolbox/internal/config"
	"github.com/ai-literacy/toolbox/internal/handlers"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/ai-literacy/toolbox/internal/repositories"
	"github.com/ai-literacy/toolbox/internal/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testDB         *sql.DB
	testRouter     chi.Router
	testLogger     *zap.Logger
	testDispatcher *recordingDispatcher
)

// recordingDispatcher stands in for the asynq queue and keeps every event
type recordingDispatcher struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event models.NotificationEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) reset() []models.NotificationEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	events := d.events
	d.events = nil
	return events
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM submissions")
	require.NoError(t, err, "Failed to cleanup test data")
	testDispatcher.reset()
}

// setupTestRouter creates a test router with all handlers
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	repo := repositories.NewSubmissionRepository(db, logger)
	svc := services.NewSubmissionService(repo, testDispatcher, logger)

	r := chi.NewRouter()
	r.Route("/ai-literacy-toolbox/api", func(r chi.Router) {
		handlers.NewSubmissionHandler(svc, logger).RegisterRoutes(r)
		handlers.NewEmailHandler(svc, logger).RegisterRoutes(r)
		handlers.NewStatusHandler(map[string]handlers.HealthCheck{"storage": svc.Ping}, logger).RegisterRoutes(r)
	})

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	dsn := "root:password@tcp(localhost:3306)/ai_literacy_toolbox_test?parseTime=true&charset=utf8mb4"
	if cfg.Database.Host != "" {
		dsn = cfg.DSN()
	}

	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	setupTestSchemaForMain(testDB)

	testDispatcher = &recordingDispatcher{}
	testRouter = setupTestRouter(testDB, testLogger)

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

// setupTestSchemaForMain applies the submissions migration
func setupTestSchemaForMain(db *sql.DB) {
	schema, err := os.ReadFile("../../migrations/000001_create_submissions.up.sql")
	if err != nil {
		panic(fmt.Sprintf("Failed to read migration: %v", err))
	}
	if _, err := db.Exec(string(schema)); err != nil {
		panic(fmt.Sprintf("Failed to create schema: %v", err))
	}
}

func doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/ai-literacy-toolbox/api"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.10:5555"
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func submitTool(t *testing.T, title string) models.Submission {
	t.Helper()
	w := doJSON(t, http.MethodPost, "/add-entry", map[string]any{
		"uploaderName":      "Ana",
		"uploaderEmail":     "ana@example.org",
		"uploadType":        "game",
		"ageRecommendation": "10+",
		"title":             title,
		"description":       "A card game about prompts",
		"fileURL":           "https://files.example.org/quest.pdf",
		"thumbnailURL":      "https://files.example.org/quest.png",
		"tags":              "ml, AI , ml,  ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handlers.AddEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return *resp.Tool
}

func TestIntegration_SubmissionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	defer cleanupTestData(t, testDB)

	created := submitTool(t, "Prompt Quest")
	assert.Equal(t, models.ReviewStatusPending, created.ReviewStatus)
	assert.Equal(t, []string{"ml", "AI"}, created.Tags)
	assert.Equal(t, 0, created.Rating.Count)

	events := testDispatcher.reset()
	require.Len(t, events, 2)
	assert.Equal(t, models.NotificationConfirmToSubmitter, events[0].Type)
	assert.Equal(t, models.NotificationNotifyAdmin, events[1].Type)

	// rating
	for _, vote := range []float64{4, 5} {
		w := doJSON(t, http.MethodPatch, "/rate-toolbox", map[string]any{"toolboxId": created.ID, "rating": vote})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := doJSON(t, http.MethodPatch, "/rate-toolbox", map[string]any{"toolboxId": created.ID, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, http.MethodGet, "/get-entry/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rated models.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rated))
	assert.Equal(t, 2, rated.Rating.Count)
	assert.Equal(t, 4.5, rated.Rating.Average)

	// moderation
	w = doJSON(t, http.MethodPatch, "/review-entry", map[string]any{"toolboxId": created.ID, "status": "approved", "reviewedBy": "mod-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	events = testDispatcher.reset()
	require.Len(t, events, 1)
	assert.Equal(t, models.NotificationStateChanged, events[0].Type)

	w = doJSON(t, http.MethodPatch, "/review-entry", map[string]any{"toolboxId": created.ID, "status": "rejected", "reviewedBy": "mod-2"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, testDispatcher.reset())
}

func TestIntegration_GetDataInsertionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	defer cleanupTestData(t, testDB)

	first := submitTool(t, "First")
	second := submitTool(t, "Second")

	w := doJSON(t, http.MethodGet, "/get-data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []models.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	require.Len(t, subs, 2)
	assert.Equal(t, first.ID, subs[0].ID)
	assert.Equal(t, second.ID, subs[1].ID)
}

func TestIntegration_ConcurrentVotes(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	defer cleanupTestData(t, testDB)

	created := submitTool(t, "Concurrent")

	const voters = 20
	var wg sync.WaitGroup
	for i := range voters {
		wg.Add(1)
		go func(vote int) {
			defer wg.Done()
			w := doJSON(t, http.MethodPatch, "/rate-toolbox", map[string]any{"toolboxId": created.ID, "rating": vote})
			assert.Equal(t, http.StatusOK, w.Code)
		}(i%5 + 1)
	}
	wg.Wait()

	w := doJSON(t, http.MethodGet, "/get-entry/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sub models.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, voters, sub.Rating.Count)
	assert.Len(t, sub.Rating.Votes, voters)
	assert.Equal(t, 3.0, sub.Rating.Average)
}

func TestIntegration_Status(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	w := doJSON(t, http.MethodGet, "/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API is healthy")
}
