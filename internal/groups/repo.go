package groups

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates item-group persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a group repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a group.
func (r *Repository) Create(ctx context.Context, group *models.ItemGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// FindByID loads a single group. Unknown ids return nil without error.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ItemGroup, error) {
	var group models.ItemGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// ListAll returns every group in creation order.
func (r *Repository) ListAll(ctx context.Context) ([]models.ItemGroup, error) {
	var rows []models.ItemGroup
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the total number of groups.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ItemGroup{}).Count(&count).Error
	return count, err
}

// SelectedCount returns how many groups are currently selected.
func (r *Repository) SelectedCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ItemGroup{}).
		Where("selected = ?", true).
		Count(&count).Error
	return count, err
}

// Rename overwrites the group name. Missing ids report zero rows.
func (r *Repository) Rename(ctx context.Context, id uuid.UUID, name string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ItemGroup{}).
		Where("id = ?", id).
		Update("name", name)
	return res.RowsAffected, res.Error
}

// SelectOnly marks the given group selected and every other group deselected.
func (r *Repository) SelectOnly(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.ItemGroup{}).
		Where("id <> ?", id).
		Update("selected", false).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.ItemGroup{}).
		Where("id = ?", id).
		Update("selected", true).Error
}

// SetSelected writes one group's selection flag.
func (r *Repository) SetSelected(ctx context.Context, id uuid.UUID, selected bool) error {
	return r.db.WithContext(ctx).
		Model(&models.ItemGroup{}).
		Where("id = ?", id).
		Update("selected", selected).Error
}

// EarliestSelected returns the selected group that has held selection
// longest, i.e. the first-created one still selected.
func (r *Repository) EarliestSelected(ctx context.Context) (*models.ItemGroup, error) {
	var group models.ItemGroup
	err := r.db.WithContext(ctx).
		Where("selected = ?", true).
		Order("created_at ASC").
		Order("id ASC").
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// Earliest returns the first-created group regardless of selection.
func (r *Repository) Earliest(ctx context.Context) (*models.ItemGroup, error) {
	var group models.ItemGroup
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// Delete removes the group. Item rows cascade at the schema level; the
// caller still deletes them explicitly so the engine does not depend on the
// sqlite foreign_keys pragma being on.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", id).
		Delete(&models.Item{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.ItemGroup{}, "id = ?", id).Error
}
