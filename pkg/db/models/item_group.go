package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemGroup is a named collection partitioning items. Selected groups decide
// which items contribute to the visible lists.
type ItemGroup struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	Selected bool      `gorm:"column:selected;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
