package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/repository"
)

// LibraryService manages the per-user organization entities: folders and
// presets. Presets are immutable once created.
type LibraryService struct {
	folders *repository.FolderRepository
	presets *repository.PresetRepository
}

func NewLibraryService(folders *repository.FolderRepository, presets *repository.PresetRepository) *LibraryService {
	return &LibraryService{folders: folders, presets: presets}
}

func (s *LibraryService) CreateFolder(ctx context.Context, ownerID, name string) (domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Folder{}, validationf("folder name must not be empty")
	}
	return s.folders.Create(ctx, ownerID, name)
}

func (s *LibraryService) ListFolders(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	return s.folders.ListByOwner(ctx, ownerID)
}

func (s *LibraryService) RenameFolder(ctx context.Context, ownerID, id, name string) (domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Folder{}, validationf("folder name must not be empty")
	}
	if err := s.checkFolderOwner(ctx, ownerID, id); err != nil {
		return domain.Folder{}, err
	}
	return s.folders.Rename(ctx, id, name)
}

// DeleteFolder removes the folder; projects filed under it become unfiled,
// they are never deleted with it.
func (s *LibraryService) DeleteFolder(ctx context.Context, ownerID, id string) error {
	if err := s.checkFolderOwner(ctx, ownerID, id); err != nil {
		return err
	}
	return s.folders.Delete(ctx, id)
}

func (s *LibraryService) CreatePreset(ctx context.Context, ownerID, name string, settings domain.PresetSettings) (domain.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Preset{}, validationf("preset name must not be empty")
	}
	return s.presets.Create(ctx, ownerID, name, settings)
}

func (s *LibraryService) ListPresets(ctx context.Context, ownerID string) ([]domain.Preset, error) {
	return s.presets.ListByOwner(ctx, ownerID)
}

func (s *LibraryService) DeletePreset(ctx context.Context, ownerID, id string) error {
	preset, err := s.presets.Get(ctx, id)
	if err != nil {
		return translateNoRows(err, "preset", id)
	}
	if preset.OwnerID != ownerID {
		return fmt.Errorf("%w: preset %s belongs to another user", ErrUnauthorized, id)
	}
	return s.presets.Delete(ctx, id)
}

func (s *LibraryService) checkFolderOwner(ctx context.Context, ownerID, id string) error {
	folder, err := s.folders.Get(ctx, id)
	if err != nil {
		return translateNoRows(err, "folder", id)
	}
	if folder.OwnerID != ownerID {
		return fmt.Errorf("%w: folder %s belongs to another user", ErrUnauthorized, id)
	}
	return nil
}
