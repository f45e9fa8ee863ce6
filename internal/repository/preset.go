package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

type PresetRepository struct {
	db *sqlx.DB
}

func NewPresetRepository(db *sqlx.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

type presetRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Settings  []byte    `db:"settings"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *PresetRepository) Create(ctx context.Context, ownerID, name string, settings domain.PresetSettings) (domain.Preset, error) {
	preset := domain.Preset{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Settings:  settings,
		CreatedAt: time.Now().UTC(),
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return domain.Preset{}, err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO presets (id, owner_id, name, settings, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), preset.ID, preset.OwnerID, preset.Name, string(raw), preset.CreatedAt)
	return preset, err
}

func (r *PresetRepository) Get(ctx context.Context, id string) (domain.Preset, error) {
	var row presetRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT id, owner_id, name, settings, created_at FROM presets WHERE id = ?
	`), id)
	if err != nil {
		return domain.Preset{}, err
	}
	return presetFromRow(row)
}

func (r *PresetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Preset, error) {
	var rows []presetRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT id, owner_id, name, settings, created_at
		FROM presets
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`), ownerID)
	if err != nil {
		return nil, err
	}

	presets := make([]domain.Preset, 0, len(rows))
	for _, row := range rows {
		preset, err := presetFromRow(row)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, nil
}

func (r *PresetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM presets WHERE id = ?`), id)
	return err
}

func presetFromRow(row presetRow) (domain.Preset, error) {
	preset := domain.Preset{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
	if len(row.Settings) > 0 {
		if err := json.Unmarshal(row.Settings, &preset.Settings); err != nil {
			return domain.Preset{}, err
		}
	}
	return preset, nil
}
