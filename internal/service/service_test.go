package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/repository"
	"github.com/mahamadoubmaiga/Koraprompt/internal/storage"
)

type testEnv struct {
	db       *sqlx.DB
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	folders  *repository.FolderRepository
	presets  *repository.PresetRepository
	projects *repository.ProjectRepository

	auth    *AuthService
	library *LibraryService
	projSvc *ProjectService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	require.NoError(t, storage.RunMigrations(context.Background(), db))
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		sessions: repository.NewSessionRepository(db),
		folders:  repository.NewFolderRepository(db),
		presets:  repository.NewPresetRepository(db),
		projects: repository.NewProjectRepository(db),
	}
	env.auth = NewAuthService(env.users, env.sessions, time.Hour)
	env.library = NewLibraryService(env.folders, env.presets)
	env.projSvc = NewProjectService(env.projects, env.folders, logger)
	return env
}

func (e *testEnv) user(t *testing.T, email string) domain.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), email)
	require.NoError(t, err)
	return user
}

func (e *testEnv) project(t *testing.T, ownerID *string, artifacts ...string) domain.Project {
	t.Helper()
	if len(artifacts) == 0 {
		artifacts = []string{"a cinematic shot of a hiker"}
	}
	project, err := e.projSvc.Create(context.Background(), ownerID, ProjectDraft{
		Kind:        domain.KindVideo,
		Artifacts:   artifacts,
		GeneratorID: "veo",
		SourceIdea:  "a hiker at sunrise",
	})
	require.NoError(t, err)
	return project
}
