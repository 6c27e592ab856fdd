// Package backup serializes the whole store to a portable snapshot and loads
// one back in a single all-or-nothing transaction.
package backup

import (
	"time"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
)

// SnapshotVersion tags the wire format of exported snapshots.
const SnapshotVersion = 1

// Snapshot is the full-store export. Selection and expansion flags are
// transient view state and deliberately left out; trash flags travel so a
// restore keeps pending undos meaningful.
type Snapshot struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Groups     []GroupRecord   `json:"groups"`
	Items      []ItemRecord    `json:"items"`
	Settings   *SettingsRecord `json:"settings,omitempty"`
}

type GroupRecord struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Selected bool      `json:"selected"`
}

type ItemRecord struct {
	ID         uuid.UUID `json:"id"`
	GroupID    uuid.UUID `json:"group_id"`
	Name       string    `json:"name"`
	ExtraInfo  string    `json:"extra_info,omitempty"`
	ColorIndex int       `json:"color_index"`

	ShoppingAmount  *int `json:"shopping_amount"`
	InventoryAmount *int `json:"inventory_amount"`

	Checked          bool `json:"checked"`
	InShoppingTrash  bool `json:"in_shopping_trash"`
	InInventoryTrash bool `json:"in_inventory_trash"`

	AutoAddToShopping bool `json:"auto_add_to_shopping"`
	AutoAddThreshold  int  `json:"auto_add_threshold"`
}

type SettingsRecord struct {
	GroupSelectionMode enums.GroupSelectionMode `json:"group_selection_mode"`
	DefaultListKind    enums.ListKind           `json:"default_list_kind"`
	KeepScreenOn       bool                     `json:"keep_screen_on"`
}

func groupRecord(group *models.ItemGroup) GroupRecord {
	return GroupRecord{ID: group.ID, Name: group.Name, Selected: group.Selected}
}

func itemRecord(item *models.Item) ItemRecord {
	return ItemRecord{
		ID:                item.ID,
		GroupID:           item.GroupID,
		Name:              item.Name,
		ExtraInfo:         item.ExtraInfo,
		ColorIndex:        item.ColorIndex,
		ShoppingAmount:    item.ShoppingAmount,
		InventoryAmount:   item.InventoryAmount,
		Checked:           item.Checked,
		InShoppingTrash:   item.InShoppingTrash,
		InInventoryTrash:  item.InInventoryTrash,
		AutoAddToShopping: item.AutoAddToShopping,
		AutoAddThreshold:  item.AutoAddThreshold,
	}
}
