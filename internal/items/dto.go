package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
)

// ItemDTO is the item shape handed to the presentation layer. A nil amount
// means the item is not a member of that list.
type ItemDTO struct {
	ID         uuid.UUID `json:"id"`
	GroupID    uuid.UUID `json:"group_id"`
	Name       string    `json:"name"`
	ExtraInfo  string    `json:"extra_info"`
	ColorIndex int       `json:"color_index"`

	ShoppingAmount  *int `json:"shopping_amount"`
	InventoryAmount *int `json:"inventory_amount"`

	Checked bool `json:"checked"`

	ExpandedInShopping  bool `json:"expanded_in_shopping"`
	ExpandedInInventory bool `json:"expanded_in_inventory"`
	SelectedInShopping  bool `json:"selected_in_shopping"`
	SelectedInInventory bool `json:"selected_in_inventory"`
	InShoppingTrash     bool `json:"in_shopping_trash"`
	InInventoryTrash    bool `json:"in_inventory_trash"`

	AutoAddToShopping bool `json:"auto_add_to_shopping"`
	AutoAddThreshold  int  `json:"auto_add_threshold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddItemInput captures the fields accepted when creating an item. At least
// one amount must be present so the new row is a member of something.
type AddItemInput struct {
	GroupID    uuid.UUID
	Name       string
	ExtraInfo  string
	ColorIndex int

	ShoppingAmount  *int
	InventoryAmount *int

	AutoAddToShopping bool
	AutoAddThreshold  int
}

func toDTO(item *models.Item) ItemDTO {
	return ItemDTO{
		ID:                  item.ID,
		GroupID:             item.GroupID,
		Name:                item.Name,
		ExtraInfo:           item.ExtraInfo,
		ColorIndex:          item.ColorIndex,
		ShoppingAmount:      copyAmount(item.ShoppingAmount),
		InventoryAmount:     copyAmount(item.InventoryAmount),
		Checked:             item.Checked,
		ExpandedInShopping:  item.ExpandedInShopping,
		ExpandedInInventory: item.ExpandedInInventory,
		SelectedInShopping:  item.SelectedInShopping,
		SelectedInInventory: item.SelectedInInventory,
		InShoppingTrash:     item.InShoppingTrash,
		InInventoryTrash:    item.InInventoryTrash,
		AutoAddToShopping:   item.AutoAddToShopping,
		AutoAddThreshold:    item.AutoAddThreshold,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

// ToDTOs maps raw rows into the external shape.
func ToDTOs(rows []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out
}

func copyAmount(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
