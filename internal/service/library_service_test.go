package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

func TestDeleteFolderUnfilesProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice@example.com")

	folder, err := env.library.CreateFolder(ctx, alice.ID, "Drafts")
	require.NoError(t, err)

	project := env.project(t, &alice.ID)
	moved, err := env.projSvc.Move(ctx, project.ID, &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)

	require.NoError(t, env.library.DeleteFolder(ctx, alice.ID, folder.ID))

	// The project survives and is unfiled.
	got, err := env.projSvc.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FolderID)

	folders, err := env.library.ListFolders(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestFolderOwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice@example.com")
	bob := env.user(t, "bob@example.com")

	folder, err := env.library.CreateFolder(ctx, alice.ID, "Drafts")
	require.NoError(t, err)

	_, err = env.library.RenameFolder(ctx, bob.ID, folder.ID, "Stolen")
	require.ErrorIs(t, err, ErrUnauthorized)

	err = env.library.DeleteFolder(ctx, bob.ID, folder.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	renamed, err := env.library.RenameFolder(ctx, alice.ID, folder.ID, "Ideas")
	require.NoError(t, err)
	assert.Equal(t, "Ideas", renamed.Name)

	_, err = env.library.CreateFolder(ctx, alice.ID, "   ")
	require.ErrorIs(t, err, ErrValidation)
}

func TestPresetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice@example.com")
	bob := env.user(t, "bob@example.com")

	settings := domain.PresetSettings{
		GeneratorID:     "midjourney",
		Category:        "portrait",
		NegativePrompt:  "blurry",
		CreativityLevel: "high",
		AspectRatio:     "4:3",
	}

	preset, err := env.library.CreatePreset(ctx, alice.ID, "Moody Portraits", settings)
	require.NoError(t, err)

	listed, err := env.library.ListPresets(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, settings, listed[0].Settings)

	// Presets are scoped to their owner.
	other, err := env.library.ListPresets(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, other)

	err = env.library.DeletePreset(ctx, bob.ID, preset.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.library.DeletePreset(ctx, alice.ID, preset.ID))

	err = env.library.DeletePreset(ctx, alice.ID, preset.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
