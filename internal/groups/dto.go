package groups

import (
	"time"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
)

// GroupDTO is the group shape handed to the presentation layer.
type GroupDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Selected  bool      `json:"selected"`
	CreatedAt time.Time `json:"created_at"`
}

// SettingsDTO mirrors the singleton preferences row.
type SettingsDTO struct {
	GroupSelectionMode enums.GroupSelectionMode `json:"group_selection_mode"`
	DefaultListKind    enums.ListKind           `json:"default_list_kind"`
	KeepScreenOn       bool                     `json:"keep_screen_on"`
}

func toDTO(group *models.ItemGroup) GroupDTO {
	return GroupDTO{
		ID:        group.ID,
		Name:      group.Name,
		Selected:  group.Selected,
		CreatedAt: group.CreatedAt,
	}
}

func toDTOs(rows []models.ItemGroup) []GroupDTO {
	out := make([]GroupDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out
}

func settingsToDTO(settings *models.Settings) SettingsDTO {
	return SettingsDTO{
		GroupSelectionMode: settings.GroupSelectionMode,
		DefaultListKind:    settings.DefaultListKind,
		KeepScreenOn:       settings.KeepScreenOn,
	}
}
