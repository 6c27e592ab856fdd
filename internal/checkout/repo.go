// Package checkout transfers checked shopping-list quantities into inventory
// stock in one transaction.
package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"gorm.io/gorm"
)

// Repository runs the checkout statements.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CheckedVisibleIDs returns the checkout set: checked, untrashed shopping
// members whose group is selected.
func (r *Repository) CheckedVisibleIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN item_groups ON item_groups.id = items.group_id").
		Where("item_groups.selected = ?", true).
		Where("items.shopping_amount IS NOT NULL").
		Where("items.in_shopping_trash = ?", false).
		Where("items.checked = ?", true).
		Pluck("items.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddToStock adds each item's shopping amount onto its inventory stock. Rows
// that are not inventory members are left alone.
func (r *Repository) AddToStock(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id IN ?", ids).
		Where("inventory_amount IS NOT NULL").
		Update("inventory_amount", gorm.Expr("inventory_amount + shopping_amount")).Error
}
