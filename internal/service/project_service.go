package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/repository"
)

const (
	displayNameLimit    = 70
	fallbackProjectName = "Untitled Project"
)

// ProjectDraft carries the fields a caller must supply when saving a
// generation result. Ids, timestamps and the initial version are assigned by
// the store.
type ProjectDraft struct {
	Kind         domain.PromptKind
	Artifacts    []string
	GeneratorID  string
	SourceIdea   string
	PreviewImage *string
	FolderID     *string
}

type ProjectService struct {
	projects *repository.ProjectRepository
	folders  *repository.FolderRepository
	logger   *slog.Logger
}

func NewProjectService(projects *repository.ProjectRepository, folders *repository.FolderRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, folders: folders, logger: logger}
}

// Create persists a generation result as a new project. A project is only
// ever created by an explicit save; a failed generation never reaches here.
func (s *ProjectService) Create(ctx context.Context, ownerID *string, draft ProjectDraft) (domain.Project, error) {
	if !draft.Kind.Valid() {
		return domain.Project{}, validationf("unknown kind %q", draft.Kind)
	}
	if len(draft.Artifacts) == 0 {
		return domain.Project{}, validationf("artifacts must not be empty")
	}
	if draft.GeneratorID == "" {
		return domain.Project{}, validationf("generator is required")
	}

	if draft.FolderID != nil {
		if err := s.checkFolderOwnership(ctx, *draft.FolderID, ownerID); err != nil {
			return domain.Project{}, err
		}
	}

	now := time.Now().UTC()
	project := domain.Project{
		Kind:         draft.Kind,
		Artifacts:    draft.Artifacts,
		Versions:     []domain.PromptVersion{{Artifacts: draft.Artifacts, CreatedAt: now}},
		GeneratorID:  draft.GeneratorID,
		SourceIdea:   draft.SourceIdea,
		DisplayName:  defaultDisplayName(draft.SourceIdea),
		PreviewImage: draft.PreviewImage,
		OwnerID:      ownerID,
		FolderID:     draft.FolderID,
		IsPublished:  false,
		LikeCount:    0,
		LikedBy:      []string{},
		CreatedAt:    now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return domain.Project{}, err
	}
	s.logger.Info("project created", slog.String("id", created.ID), slog.String("kind", string(created.Kind)))
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return domain.Project{}, translateNoRows(err, "project", id)
	}
	return project, nil
}

func (s *ProjectService) ListOwned(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *ProjectService) ListPublished(ctx context.Context) ([]domain.Project, error) {
	return s.projects.ListPublished(ctx)
}

func (s *ProjectService) Rename(ctx context.Context, id, newName string) (domain.Project, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return domain.Project{}, validationf("project name must not be empty")
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	project.DisplayName = name
	return s.projects.Update(ctx, project)
}

// Move assigns the project to a folder, or unfiles it when folderID is nil.
// The target folder must exist and belong to the project's owner.
func (s *ProjectService) Move(ctx context.Context, id string, folderID *string) (domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	if folderID != nil {
		if err := s.checkFolderOwnership(ctx, *folderID, project.OwnerID); err != nil {
			return domain.Project{}, err
		}
	}

	project.FolderID = folderID
	return s.projects.Update(ctx, project)
}

// Regenerate records a refine round: the new artifacts become current and a
// new version is pushed onto the head of the history. Prior versions are
// never mutated or dropped.
func (s *ProjectService) Regenerate(ctx context.Context, id string, newArtifacts []string) (domain.Project, error) {
	if len(newArtifacts) == 0 {
		return domain.Project{}, validationf("artifacts must not be empty")
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	version := domain.PromptVersion{Artifacts: newArtifacts, CreatedAt: time.Now().UTC()}
	project.Versions = append([]domain.PromptVersion{version}, project.Versions...)
	project.Artifacts = newArtifacts
	return s.projects.Update(ctx, project)
}

// RestoreVersion makes the version identified by its timestamp current again.
// The entry is moved to the head of the history, deduplicated by timestamp,
// so recency order reflects the most recently activated version.
func (s *ProjectService) RestoreVersion(ctx context.Context, id string, versionCreatedAt time.Time) (domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	var restored *domain.PromptVersion
	for i := range project.Versions {
		if project.Versions[i].CreatedAt.Equal(versionCreatedAt) {
			restored = &project.Versions[i]
			break
		}
	}
	if restored == nil {
		return domain.Project{}, notFoundf("version %s of project %s", versionCreatedAt.Format(time.RFC3339Nano), id)
	}

	head := *restored
	rest := make([]domain.PromptVersion, 0, len(project.Versions))
	for _, v := range project.Versions {
		if !v.CreatedAt.Equal(versionCreatedAt) {
			rest = append(rest, v)
		}
	}

	project.Versions = append([]domain.PromptVersion{head}, rest...)
	project.Artifacts = head.Artifacts
	return s.projects.Update(ctx, project)
}

func (s *ProjectService) TogglePublish(ctx context.Context, id string) (domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	project.IsPublished = !project.IsPublished
	return s.projects.Update(ctx, project)
}

// ToggleLike alternates the liked state of the project for userID. It is a
// toggle, not an idempotent add or remove.
func (s *ProjectService) ToggleLike(ctx context.Context, id, userID string) (domain.Project, error) {
	if userID == "" {
		return domain.Project{}, fmt.Errorf("%w: identity required to like", ErrUnauthorized)
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	if project.LikedByUser(userID) {
		kept := make([]string, 0, len(project.LikedBy))
		for _, liker := range project.LikedBy {
			if liker != userID {
				kept = append(kept, liker)
			}
		}
		project.LikedBy = kept
	} else {
		project.LikedBy = append(project.LikedBy, userID)
	}
	project.LikeCount = len(project.LikedBy)

	return s.projects.Update(ctx, project)
}

// Delete is permanent; the embedded version history and likes go with the
// record. Folders are independent entities and are untouched.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", slog.String("id", id))
	return nil
}

func (s *ProjectService) checkFolderOwnership(ctx context.Context, folderID string, ownerID *string) error {
	folder, err := s.folders.Get(ctx, folderID)
	if err != nil {
		return translateNoRows(err, "folder", folderID)
	}
	if ownerID == nil || folder.OwnerID != *ownerID {
		return fmt.Errorf("%w: folder %s belongs to another user", ErrUnauthorized, folderID)
	}
	return nil
}

func defaultDisplayName(sourceIdea string) string {
	name := strings.TrimSpace(sourceIdea)
	if runes := []rune(name); len(runes) > displayNameLimit {
		name = strings.TrimSpace(string(runes[:displayNameLimit]))
	}
	if name == "" {
		return fallbackProjectName
	}
	return name
}
