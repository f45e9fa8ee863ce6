package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

type FolderRepository struct {
	db *sqlx.DB
}

func NewFolderRepository(db *sqlx.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Create(ctx context.Context, ownerID, name string) (domain.Folder, error) {
	folder := domain.Folder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO folders (id, owner_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`), folder.ID, folder.OwnerID, folder.Name, folder.CreatedAt)
	return folder, err
}

func (r *FolderRepository) Get(ctx context.Context, id string) (domain.Folder, error) {
	var folder domain.Folder
	err := r.db.GetContext(ctx, &folder, r.db.Rebind(`
		SELECT id, owner_id, name, created_at FROM folders WHERE id = ?
	`), id)
	return folder, err
}

func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	var folders []domain.Folder
	err := r.db.SelectContext(ctx, &folders, r.db.Rebind(`
		SELECT id, owner_id, name, created_at
		FROM folders
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`), ownerID)
	return folders, err
}

func (r *FolderRepository) Rename(ctx context.Context, id, name string) (domain.Folder, error) {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE folders SET name = ? WHERE id = ?
	`), name, id); err != nil {
		return domain.Folder{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes the folder and unfiles every project inside it in one
// transaction. Projects themselves are never deleted here.
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE projects SET folder_id = NULL WHERE folder_id = ?
	`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		DELETE FROM folders WHERE id = ?
	`), id); err != nil {
		return err
	}

	return tx.Commit()
}
