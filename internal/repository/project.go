package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// projectRow is the raw storage shape. JSON payload columns stay opaque here
// and are decoded by migrateProject so the rest of the store never sees a
// pre-migration record.
type projectRow struct {
	ID           string    `db:"id"`
	Kind         string    `db:"kind"`
	Artifacts    []byte    `db:"artifacts"`
	Versions     []byte    `db:"versions"`
	GeneratorID  string    `db:"generator_id"`
	SourceIdea   string    `db:"source_idea"`
	DisplayName  string    `db:"display_name"`
	PreviewImage *string   `db:"preview_image"`
	OwnerID      *string   `db:"owner_id"`
	FolderID     *string   `db:"folder_id"`
	IsPublished  bool      `db:"is_published"`
	LikeCount    int       `db:"like_count"`
	LikedBy      []byte    `db:"liked_by"`
	CreatedAt    time.Time `db:"created_at"`
}

const projectColumns = `
	id, kind, artifacts, versions, generator_id, source_idea, display_name,
	preview_image, owner_id, folder_id, is_published, like_count, liked_by, created_at`

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	artifacts, versions, likedBy, err := encodeBlobs(project)
	if err != nil {
		return domain.Project{}, err
	}

	// One write path for every owner/folder combination: nil pointers bind
	// as SQL NULL.
	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		project.ID, string(project.Kind), artifacts, versions,
		project.GeneratorID, project.SourceIdea, project.DisplayName,
		project.PreviewImage, project.OwnerID, project.FolderID,
		project.IsPublished, project.LikeCount, likedBy, project.CreatedAt)
	return project, err
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (domain.Project, error) {
	var row projectRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT `+projectColumns+` FROM projects WHERE id = ?
	`), id)
	if err != nil {
		return domain.Project{}, err
	}
	return migrateProject(row)
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	var rows []projectRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	return migrateProjects(rows)
}

func (r *ProjectRepository) ListPublished(ctx context.Context) ([]domain.Project, error) {
	var rows []projectRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE is_published = TRUE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return migrateProjects(rows)
}

// Update rewrites every mutable column in a single statement so a reader
// never observes a half-written record.
func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	artifacts, versions, likedBy, err := encodeBlobs(project)
	if err != nil {
		return domain.Project{}, err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE projects SET
			kind = ?, artifacts = ?, versions = ?, generator_id = ?,
			source_idea = ?, display_name = ?, preview_image = ?,
			folder_id = ?, is_published = ?, like_count = ?, liked_by = ?
		WHERE id = ?
	`),
		string(project.Kind), artifacts, versions, project.GeneratorID,
		project.SourceIdea, project.DisplayName, project.PreviewImage,
		project.FolderID, project.IsPublished, project.LikeCount, likedBy,
		project.ID)
	return project, err
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	return err
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM projects`)
	return count, err
}

func encodeBlobs(project domain.Project) (artifacts, versions, likedBy string, err error) {
	rawArtifacts, err := json.Marshal(project.Artifacts)
	if err != nil {
		return "", "", "", err
	}
	rawVersions, err := json.Marshal(project.Versions)
	if err != nil {
		return "", "", "", err
	}
	if project.LikedBy == nil {
		project.LikedBy = []string{}
	}
	rawLikedBy, err := json.Marshal(project.LikedBy)
	if err != nil {
		return "", "", "", err
	}
	return string(rawArtifacts), string(rawVersions), string(rawLikedBy), nil
}

// migrateProject lifts a raw row to the current schema. Records written
// before versioning existed get a single synthesized version; records
// written before likes existed get a zero count and an empty liked-by set.
func migrateProject(row projectRow) (domain.Project, error) {
	project := domain.Project{
		ID:           row.ID,
		Kind:         domain.PromptKind(row.Kind),
		GeneratorID:  row.GeneratorID,
		SourceIdea:   row.SourceIdea,
		DisplayName:  row.DisplayName,
		PreviewImage: row.PreviewImage,
		OwnerID:      row.OwnerID,
		FolderID:     row.FolderID,
		IsPublished:  row.IsPublished,
		CreatedAt:    row.CreatedAt,
	}

	if len(row.Artifacts) > 0 {
		if err := json.Unmarshal(row.Artifacts, &project.Artifacts); err != nil {
			return domain.Project{}, err
		}
	}

	if len(row.Versions) > 0 {
		if err := json.Unmarshal(row.Versions, &project.Versions); err != nil {
			return domain.Project{}, err
		}
	}
	if len(project.Versions) == 0 {
		project.Versions = []domain.PromptVersion{{
			Artifacts: project.Artifacts,
			CreatedAt: project.CreatedAt,
		}}
	}

	if len(row.LikedBy) > 0 {
		if err := json.Unmarshal(row.LikedBy, &project.LikedBy); err != nil {
			return domain.Project{}, err
		}
	}
	if project.LikedBy == nil {
		project.LikedBy = []string{}
	}
	// The liker set is the source of truth; a stored count that disagrees
	// (hand-edited or pre-likes row) is corrected here.
	project.LikeCount = len(project.LikedBy)

	return project, nil
}

func migrateProjects(rows []projectRow) ([]domain.Project, error) {
	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		project, err := migrateProject(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}
