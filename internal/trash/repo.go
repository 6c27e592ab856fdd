// Package trash implements per-list soft deletion with a single accumulating
// undo: restore brings back the whole trash, emptying it is irreversible.
package trash

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"gorm.io/gorm"
)

// Repository runs the trash-flag writes.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// SoftDelete trashes the given members, shedding their selection and
// expansion flags. Returns how many rows were actually trashed.
func (r *Repository) SoftDelete(ctx context.Context, kind enums.ListKind, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	cols := models.ColumnsFor(kind)
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id IN ?", ids).
		Where(fmt.Sprintf("%s IS NOT NULL", cols.Amount)).
		Where(fmt.Sprintf("%s = ?", cols.Trashed), false).
		Updates(map[string]any{
			cols.Trashed:  true,
			cols.Selected: false,
			cols.Expanded: false,
		})
	return res.RowsAffected, res.Error
}

// SelectedIDs returns the untrashed selected members of the list.
func (r *Repository) SelectedIDs(ctx context.Context, kind enums.ListKind) ([]uuid.UUID, error) {
	cols := models.ColumnsFor(kind)
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(fmt.Sprintf("%s IS NOT NULL", cols.Amount)).
		Where(fmt.Sprintf("%s = ?", cols.Trashed), false).
		Where(fmt.Sprintf("%s = ?", cols.Selected), true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// TrashedIDs returns every currently trashed member of the list.
func (r *Repository) TrashedIDs(ctx context.Context, kind enums.ListKind) ([]uuid.UUID, error) {
	cols := models.ColumnsFor(kind)
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(fmt.Sprintf("%s IS NOT NULL", cols.Amount)).
		Where(fmt.Sprintf("%s = ?", cols.Trashed), true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RestoreAll untrashes the whole list in one statement.
func (r *Repository) RestoreAll(ctx context.Context, kind enums.ListKind) (int64, error) {
	cols := models.ColumnsFor(kind)
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(fmt.Sprintf("%s = ?", cols.Trashed), true).
		Update(cols.Trashed, false)
	return res.RowsAffected, res.Error
}
