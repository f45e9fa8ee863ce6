package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/providers"
	"github.com/mahamadoubmaiga/Koraprompt/internal/repository"
	"github.com/mahamadoubmaiga/Koraprompt/internal/service"
	"github.com/mahamadoubmaiga/Koraprompt/internal/storage"
)

// apiClient drives the router in-process, carrying the session cookie
// between requests the way a browser would.
type apiClient struct {
	t       *testing.T
	handler http.Handler
	session *http.Cookie
}

func newTestClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	require.NoError(t, storage.RunMigrations(context.Background(), db))
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	folders := repository.NewFolderRepository(db)
	presets := repository.NewPresetRepository(db)
	projects := repository.NewProjectRepository(db)

	registry := providers.NewRegistry()
	registry.Register("echo", providers.EchoClient{})

	api := NewAPI(
		service.NewAuthService(users, sessions, time.Hour),
		service.NewProjectService(projects, folders, logger),
		service.NewLibraryService(folders, presets),
		service.NewGenerationService(registry, "echo", logger),
		time.Hour,
		logger,
	)
	return &apiClient{t: t, handler: NewRouter(api)}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		req.AddCookie(c.session)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			if cookie.MaxAge < 0 || cookie.Value == "" {
				c.session = nil
			} else {
				c.session = cookie
			}
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (c *apiClient) signup(email string) domain.User {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/v1/auth/signup", gin.H{"email": email})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[domain.User](c.t, rec)
}

func (c *apiClient) createProject() domain.Project {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/v1/projects", gin.H{
		"kind":         "video",
		"artifacts":    []string{"a cinematic shot of a hiker"},
		"generator_id": "veo",
		"source_idea":  "a hiker at sunrise",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[domain.Project](c.t, rec)
}

func TestPublishAndLikeFlow(t *testing.T) {
	client := newTestClient(t)

	client.signup("alice@example.com")
	project := client.createProject()

	rec := client.do(http.MethodPost, "/api/v1/projects/"+project.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[domain.Project](t, rec).IsPublished)

	// A second user finds the project on explore and likes it.
	bob := client.signup("bob@example.com")

	rec = client.do(http.MethodGet, "/api/v1/explore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shared := decode[[]domain.Project](t, rec)
	require.Len(t, shared, 1)

	rec = client.do(http.MethodPost, "/api/v1/projects/"+project.ID+"/like", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decode[domain.Project](t, rec)
	assert.Equal(t, 1, liked.LikeCount)
	assert.Equal(t, []string{bob.ID}, liked.LikedBy)

	// Liking does not require ownership, but reading the project does.
	rec = client.do(http.MethodGet, "/api/v1/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	client := newTestClient(t)
	client.signup("alice@example.com")
	project := client.createProject()

	rec := client.do(http.MethodPut, "/api/v1/projects/"+project.ID+"/name", gin.H{"name": "Sunrise Cut"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sunrise Cut", decode[domain.Project](t, rec).DisplayName)

	rec = client.do(http.MethodPost, "/api/v1/projects/"+project.ID+"/regenerate", gin.H{"artifacts": []string{"take two"}})
	require.Equal(t, http.StatusOK, rec.Code)
	regenerated := decode[domain.Project](t, rec)
	require.Len(t, regenerated.Versions, 2)

	rec = client.do(http.MethodPost, "/api/v1/projects/"+project.ID+"/restore", gin.H{
		"created_at": regenerated.Versions[1].CreatedAt,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decode[domain.Project](t, rec)
	assert.Equal(t, project.Artifacts, restored.Artifacts)

	rec = client.do(http.MethodDelete, "/api/v1/projects/"+project.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = client.do(http.MethodGet, "/api/v1/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolderAndFilterOverHTTP(t *testing.T) {
	client := newTestClient(t)
	client.signup("alice@example.com")
	project := client.createProject()

	rec := client.do(http.MethodPost, "/api/v1/folders", gin.H{"name": "Drafts"})
	require.Equal(t, http.StatusCreated, rec.Code)
	folder := decode[domain.Folder](t, rec)

	rec = client.do(http.MethodPut, "/api/v1/projects/"+project.ID+"/folder", gin.H{"folder_id": folder.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, "/api/v1/projects?folder="+folder.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Project](t, rec), 1)

	rec = client.do(http.MethodGet, "/api/v1/projects?folder=unfiled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Project](t, rec))

	rec = client.do(http.MethodDelete, "/api/v1/folders/"+folder.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = client.do(http.MethodGet, "/api/v1/projects?folder=unfiled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Project](t, rec), 1)
}

func TestAuthRequiredAndStatusMapping(t *testing.T) {
	client := newTestClient(t)

	rec := client.do(http.MethodGet, "/api/v1/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = client.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	client.signup("alice@example.com")

	rec = client.do(http.MethodPost, "/api/v1/auth/signup", gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = client.do(http.MethodPost, "/api/v1/projects", gin.H{"kind": "video"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = client.do(http.MethodGet, "/api/v1/projects/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionCookieLifetimeMatchesTTL(t *testing.T) {
	client := newTestClient(t)
	client.signup("alice@example.com")

	// The API is wired with a one hour TTL; the cookie must not outlive or
	// undercut the session it carries.
	require.NotNil(t, client.session)
	assert.Equal(t, int(time.Hour.Seconds()), client.session.MaxAge)
}

func TestLogoutEndsSession(t *testing.T) {
	client := newTestClient(t)
	client.signup("alice@example.com")

	rec := client.do(http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = client.do(http.MethodGet, "/api/v1/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerationEndpoints(t *testing.T) {
	client := newTestClient(t)

	rec := client.do(http.MethodPost, "/api/v1/generate", gin.H{
		"idea":         "a hiker at sunrise",
		"kind":         "video",
		"generator_id": "veo",
		"count":        2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]string](t, rec)
	assert.Len(t, body["artifacts"], 2)

	rec = client.do(http.MethodPost, "/api/v1/generate/image", gin.H{"prompt": "a portrait"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodPost, "/api/v1/generate/from-image", gin.H{
		"image":    "data:image/jpeg;base64,aGVsbG8=",
		"language": "en",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	described := decode[map[string]string](t, rec)
	assert.NotEmpty(t, described["prompt"])

	rec = client.do(http.MethodPost, "/api/v1/generate/from-image", gin.H{"language": "en"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = client.do(http.MethodPost, "/api/v1/generate", gin.H{"kind": "video"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	client := newTestClient(t)

	rec := client.do(http.MethodGet, "/api/v1/generators", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]domain.Generator](t, rec))

	rec = client.do(http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[map[string][]string](t, rec)
	assert.NotEmpty(t, categories["video"])
	assert.NotEmpty(t, categories["audio"])

	rec = client.do(http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]domain.Template](t, rec))

	rec = client.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
