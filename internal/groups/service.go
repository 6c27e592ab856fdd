package groups

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"gorm.io/gorm"
)

// DefaultGroupName seeds the very first group on an empty database.
const DefaultGroupName = "My group"

type txWriter interface {
	Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the group service.
type ServiceParams struct {
	Tx       txWriter
	Repo     *Repository
	Settings *SettingsRepository
}

// Service manages item groups and the selection preferences. The selection
// model keeps two invariants at all times: the last remaining group cannot be
// deleted, and at least one group stays selected. Operations that would break
// either are silent no-ops.
type Service interface {
	Bootstrap(ctx context.Context) error
	List(ctx context.Context) ([]GroupDTO, error)
	GetSettings(ctx context.Context) (SettingsDTO, error)
	Add(ctx context.Context, name string) (GroupDTO, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetSelected(ctx context.Context, id uuid.UUID) error
	ToggleSelected(ctx context.Context, id uuid.UUID) error
	ToggleSelectionMode(ctx context.Context) (enums.GroupSelectionMode, error)
	SetDefaultListKind(ctx context.Context, kind enums.ListKind) error
	SetKeepScreenOn(ctx context.Context, on bool) error
}

type service struct {
	tx       txWriter
	repo     *Repository
	settings *SettingsRepository
}

// NewService builds a group service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx writer is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group repo is required")
	}
	if params.Settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo, settings: params.Settings}, nil
}

// Bootstrap seeds the settings row and a first selected group so the stores
// are never empty. Safe to call on every startup.
func (s *service) Bootstrap(ctx context.Context) error {
	return s.tx.Write(ctx, "groups.bootstrap", func(tx *gorm.DB) error {
		settingsRepo := s.settings.WithTx(tx)
		settings, err := settingsRepo.Load(ctx)
		if err != nil {
			return err
		}
		if settings == nil {
			settings = &models.Settings{
				ID:                 models.SettingsRowID,
				GroupSelectionMode: enums.GroupSelectionModeMulti,
				DefaultListKind:    enums.ListKindShopping,
				UpdatedAt:          time.Now().UTC(),
			}
			if err := settingsRepo.Save(ctx, settings); err != nil {
				return err
			}
		}

		repo := s.repo.WithTx(tx)
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			group := &models.ItemGroup{
				ID:       uuid.New(),
				Name:     DefaultGroupName,
				Selected: true,
			}
			return repo.Create(ctx, group)
		}

		selected, err := repo.SelectedCount(ctx)
		if err != nil {
			return err
		}
		if selected > 0 {
			return nil
		}
		earliest, err := repo.Earliest(ctx)
		if err != nil || earliest == nil {
			return err
		}
		return repo.SetSelected(ctx, earliest.ID, true)
	})
}

func (s *service) List(ctx context.Context) ([]GroupDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (s *service) GetSettings(ctx context.Context) (SettingsDTO, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return SettingsDTO{}, err
	}
	if settings == nil {
		return SettingsDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "settings row is missing, run bootstrap")
	}
	return settingsToDTO(settings), nil
}

// Add creates a group that starts out selected. In single-selection mode the
// new group takes over as the only selected one.
func (s *service) Add(ctx context.Context, name string) (GroupDTO, error) {
	if strings.TrimSpace(name) == "" {
		return GroupDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "group name is required")
	}

	var dto GroupDTO
	err := s.tx.Write(ctx, "groups.add", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		group := &models.ItemGroup{
			ID:       uuid.New(),
			Name:     name,
			Selected: true,
		}
		if err := repo.Create(ctx, group); err != nil {
			return err
		}

		mode, err := s.selectionMode(ctx, tx)
		if err != nil {
			return err
		}
		if mode == enums.GroupSelectionModeSingle {
			if err := repo.SelectOnly(ctx, group.ID); err != nil {
				return err
			}
		}
		dto = toDTO(group)
		return nil
	})
	return dto, err
}

func (s *service) Rename(ctx context.Context, id uuid.UUID, name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "group name is required")
	}
	return s.tx.Write(ctx, "groups.rename", func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Rename(ctx, id, name)
		return err
	})
}

// Delete removes a group and every item in it. Deleting the last group is a
// no-op. If the deleted group was the only selected one, the oldest remaining
// group becomes selected so a view filter always matches something.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.Write(ctx, "groups.delete", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return nil
		}
		group, err := repo.FindByID(ctx, id)
		if err != nil || group == nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}

		selected, err := repo.SelectedCount(ctx)
		if err != nil {
			return err
		}
		if selected > 0 {
			return nil
		}
		earliest, err := repo.Earliest(ctx)
		if err != nil || earliest == nil {
			return err
		}
		return repo.SetSelected(ctx, earliest.ID, true)
	})
}

// SetSelected makes id the only selected group. Used by single-selection
// mode, where picking a group always replaces the previous pick.
func (s *service) SetSelected(ctx context.Context, id uuid.UUID) error {
	return s.tx.Write(ctx, "groups.select", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		group, err := repo.FindByID(ctx, id)
		if err != nil || group == nil {
			return err
		}
		return repo.SelectOnly(ctx, id)
	})
}

// ToggleSelected flips the selection of one group. Deselecting the sole
// selected group is a no-op.
func (s *service) ToggleSelected(ctx context.Context, id uuid.UUID) error {
	return s.tx.Write(ctx, "groups.toggle_select", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		group, err := repo.FindByID(ctx, id)
		if err != nil || group == nil {
			return err
		}
		if group.Selected {
			selected, err := repo.SelectedCount(ctx)
			if err != nil {
				return err
			}
			if selected <= 1 {
				return nil
			}
		}
		return repo.SetSelected(ctx, id, !group.Selected)
	})
}

// ToggleSelectionMode switches between single and multi selection. Going
// multi to single collapses the selection to the oldest selected group.
func (s *service) ToggleSelectionMode(ctx context.Context) (enums.GroupSelectionMode, error) {
	var next enums.GroupSelectionMode
	err := s.tx.Write(ctx, "groups.toggle_mode", func(tx *gorm.DB) error {
		mode, err := s.selectionMode(ctx, tx)
		if err != nil {
			return err
		}
		next = mode.Toggled()
		if err := s.settings.WithTx(tx).SetSelectionMode(ctx, next); err != nil {
			return err
		}
		if next != enums.GroupSelectionModeSingle {
			return nil
		}

		repo := s.repo.WithTx(tx)
		keep, err := repo.EarliestSelected(ctx)
		if err != nil {
			return err
		}
		if keep == nil {
			keep, err = repo.Earliest(ctx)
			if err != nil || keep == nil {
				return err
			}
		}
		return repo.SelectOnly(ctx, keep.ID)
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

func (s *service) SetDefaultListKind(ctx context.Context, kind enums.ListKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "settings.default_list", func(tx *gorm.DB) error {
		return s.updateSettings(ctx, tx, func(settings *models.Settings) {
			settings.DefaultListKind = kind
		})
	})
}

func (s *service) SetKeepScreenOn(ctx context.Context, on bool) error {
	return s.tx.Write(ctx, "settings.keep_screen_on", func(tx *gorm.DB) error {
		return s.updateSettings(ctx, tx, func(settings *models.Settings) {
			settings.KeepScreenOn = on
		})
	})
}

func (s *service) selectionMode(ctx context.Context, tx *gorm.DB) (enums.GroupSelectionMode, error) {
	settings, err := s.settings.WithTx(tx).Load(ctx)
	if err != nil {
		return "", err
	}
	if settings == nil {
		return enums.GroupSelectionModeMulti, nil
	}
	return settings.GroupSelectionMode, nil
}

func (s *service) updateSettings(ctx context.Context, tx *gorm.DB, mutate func(*models.Settings)) error {
	repo := s.settings.WithTx(tx)
	settings, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "settings row is missing, run bootstrap")
	}
	mutate(settings)
	settings.UpdatedAt = time.Now().UTC()
	return repo.Save(ctx, settings)
}
