// Package selection mutates the per-list selection sets and the exclusive
// detail-expansion flag. Both are transient view state carried on the item
// rows so that a row leaving a list sheds them automatically.
package selection

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"gorm.io/gorm"
)

// Repository runs the selection and expansion writes.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindSelected returns the current selection flag, or nil when the id is not
// an untrashed member of the list.
func (r *Repository) FindSelected(ctx context.Context, kind enums.ListKind, id uuid.UUID) (*bool, error) {
	cols := models.ColumnsFor(kind)
	var flags []bool
	err := r.memberScope(ctx, cols).
		Where("items.id = ?", id).
		Pluck(cols.Selected, &flags).Error
	if err != nil {
		return nil, err
	}
	if len(flags) == 0 {
		return nil, nil
	}
	return &flags[0], nil
}

// SetSelected writes the selection flag for one member.
func (r *Repository) SetSelected(ctx context.Context, kind enums.ListKind, id uuid.UUID, selected bool) error {
	cols := models.ColumnsFor(kind)
	return r.memberScope(ctx, cols).
		Where("items.id = ?", id).
		Update(cols.Selected, selected).Error
}

// SelectMany sets the selection flag on every given member id.
func (r *Repository) SelectMany(ctx context.Context, kind enums.ListKind, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	cols := models.ColumnsFor(kind)
	return r.memberScope(ctx, cols).
		Where("items.id IN ?", ids).
		Update(cols.Selected, true).Error
}

// ClearSelection deselects the whole list.
func (r *Repository) ClearSelection(ctx context.Context, kind enums.ListKind) error {
	cols := models.ColumnsFor(kind)
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(fmt.Sprintf("%s = ?", cols.Selected), true).
		Update(cols.Selected, false).Error
}

// ClearExpanded drops the list's expansion flag wherever it is set.
func (r *Repository) ClearExpanded(ctx context.Context, kind enums.ListKind) error {
	cols := models.ColumnsFor(kind)
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(fmt.Sprintf("%s = ?", cols.Expanded), true).
		Update(cols.Expanded, false).Error
}

// SetExpanded marks one member as the list's expanded item.
func (r *Repository) SetExpanded(ctx context.Context, kind enums.ListKind, id uuid.UUID) error {
	cols := models.ColumnsFor(kind)
	return r.memberScope(ctx, cols).
		Where("items.id = ?", id).
		Update(cols.Expanded, true).Error
}

func (r *Repository) memberScope(ctx context.Context, cols models.ListColumns) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(fmt.Sprintf("%s IS NOT NULL", cols.Amount)).
		Where(fmt.Sprintf("%s = ?", cols.Trashed), false)
}
