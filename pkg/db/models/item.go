package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/enums"
)

// Item is the canonical dual-role record shared by the shopping list and the
// inventory. Membership of a list is encoded by the corresponding amount
// pointer: nil means the item is not on that list. An item that is a member
// of neither list does not exist (the store deletes it on commit).
type Item struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	GroupID uuid.UUID `gorm:"column:group_id;type:uuid;not null;index:items_group_id_idx"`

	// Seq preserves insertion order for deterministic sort tie-breaks.
	Seq int64 `gorm:"column:seq;not null;uniqueIndex:items_seq_key"`

	Name       string `gorm:"column:name;not null"`
	ExtraInfo  string `gorm:"column:extra_info;not null;default:''"`
	ColorIndex int    `gorm:"column:color_index;not null;default:0"`

	ShoppingAmount  *int `gorm:"column:shopping_amount"`
	InventoryAmount *int `gorm:"column:inventory_amount"`

	// Checked is meaningful only while the item is a shopping-list member.
	Checked bool `gorm:"column:checked;not null;default:false"`

	ExpandedInShopping  bool `gorm:"column:expanded_in_shopping;not null;default:false"`
	ExpandedInInventory bool `gorm:"column:expanded_in_inventory;not null;default:false"`
	SelectedInShopping  bool `gorm:"column:selected_in_shopping;not null;default:false"`
	SelectedInInventory bool `gorm:"column:selected_in_inventory;not null;default:false"`
	InShoppingTrash     bool `gorm:"column:in_shopping_trash;not null;default:false"`
	InInventoryTrash    bool `gorm:"column:in_inventory_trash;not null;default:false"`

	AutoAddToShopping bool `gorm:"column:auto_add_to_shopping;not null;default:false"`
	AutoAddThreshold  int  `gorm:"column:auto_add_threshold;not null;default:1"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Amount returns the amount pointer for the given list.
func (i *Item) Amount(kind enums.ListKind) *int {
	if kind == enums.ListKindShopping {
		return i.ShoppingAmount
	}
	return i.InventoryAmount
}

// SetAmount stores the amount pointer for the given list.
func (i *Item) SetAmount(kind enums.ListKind, amount *int) {
	if kind == enums.ListKindShopping {
		i.ShoppingAmount = amount
		return
	}
	i.InventoryAmount = amount
}

// IsMember reports whether the item currently belongs to the given list.
func (i *Item) IsMember(kind enums.ListKind) bool {
	return i.Amount(kind) != nil
}

// Orphaned reports whether the item belongs to neither list.
func (i *Item) Orphaned() bool {
	return i.ShoppingAmount == nil && i.InventoryAmount == nil
}

// ListColumns names the per-list item columns so per-list logic stays generic.
type ListColumns struct {
	Amount   string
	Trashed  string
	Selected string
	Expanded string
}

// ColumnsFor returns the column set backing the given list.
func ColumnsFor(kind enums.ListKind) ListColumns {
	if kind == enums.ListKindShopping {
		return ListColumns{
			Amount:   "shopping_amount",
			Trashed:  "in_shopping_trash",
			Selected: "selected_in_shopping",
			Expanded: "expanded_in_shopping",
		}
	}
	return ListColumns{
		Amount:   "inventory_amount",
		Trashed:  "in_inventory_trash",
		Selected: "selected_in_inventory",
		Expanded: "expanded_in_inventory",
	}
}
