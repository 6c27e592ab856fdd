// Package restock implements the reactive low-stock rule: an inventory item
// flagged for auto-add is pushed back onto the shopping list whenever its
// stock drops below its threshold. The original expressed this as a database
// trigger on the amount, flag, and threshold columns; here it is an ordinary
// hook the item service calls inside the same transaction after mutating any
// of those fields.
package restock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"gorm.io/gorm"
)

// Apply re-evaluates the rule for one item inside the caller's transaction.
// It reports whether the shopping list was changed. The rule is idempotent:
// re-running it with unchanged inputs writes nothing.
func Apply(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var item models.Item
	if err := tx.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if !item.AutoAddToShopping || item.InventoryAmount == nil {
		return false, nil
	}
	if *item.InventoryAmount >= item.AutoAddThreshold {
		return false, nil
	}

	deficit := item.AutoAddThreshold - *item.InventoryAmount

	current := 0
	if item.ShoppingAmount != nil {
		current = *item.ShoppingAmount
	}
	want := current
	if deficit > want {
		want = deficit
	}

	if item.ShoppingAmount != nil && *item.ShoppingAmount == want && !item.InShoppingTrash {
		return false, nil
	}

	return true, tx.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"shopping_amount":   want,
			"in_shopping_trash": false,
		}).Error
}
