package models

import (
	"time"

	"github.com/jlindqvist/stocklist/pkg/enums"
)

// SettingsRowID is the primary key of the single settings row.
const SettingsRowID = 1

// Settings is the single global preferences row. It is loaded once per
// operation and passed into the services that need it, never read ambiently.
type Settings struct {
	ID                 int64                    `gorm:"column:id;primaryKey"`
	GroupSelectionMode enums.GroupSelectionMode `gorm:"column:group_selection_mode;not null;default:'single'"`

	// Display preferences carried for the presentation layer; the engine
	// persists them but attaches no behavior.
	DefaultListKind enums.ListKind `gorm:"column:default_list_kind;not null;default:'shopping_list'"`
	KeepScreenOn    bool           `gorm:"column:keep_screen_on;not null;default:false"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
