package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/internal/groups"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type txWriter interface {
	Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the backup service.
type ServiceParams struct {
	Tx       txWriter
	Items    *items.Repository
	Groups   *groups.Repository
	Settings *groups.SettingsRepository
}

// Service exports and imports full-store snapshots. Import replaces the
// store: it never merges, and it never commits a partial load.
type Service interface {
	Export(ctx context.Context) (Snapshot, error)
	Import(ctx context.Context, snapshot Snapshot) error
}

type service struct {
	tx       txWriter
	items    *items.Repository
	groups   *groups.Repository
	settings *groups.SettingsRepository
}

// NewService builds a backup service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx writer is required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	if params.Groups == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group repo is required")
	}
	if params.Settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings repo is required")
	}
	return &service{
		tx:       params.Tx,
		items:    params.Items,
		groups:   params.Groups,
		settings: params.Settings,
	}, nil
}

func (s *service) Export(ctx context.Context) (Snapshot, error) {
	groupRows, err := s.groups.ListAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	itemRows, err := s.items.ListAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: time.Now().UTC(),
		Groups:     make([]GroupRecord, 0, len(groupRows)),
		Items:      make([]ItemRecord, 0, len(itemRows)),
	}
	for i := range groupRows {
		snapshot.Groups = append(snapshot.Groups, groupRecord(&groupRows[i]))
	}
	for i := range itemRows {
		snapshot.Items = append(snapshot.Items, itemRecord(&itemRows[i]))
	}
	if settings != nil {
		snapshot.Settings = &SettingsRecord{
			GroupSelectionMode: settings.GroupSelectionMode,
			DefaultListKind:    settings.DefaultListKind,
			KeepScreenOn:       settings.KeepScreenOn,
		}
	}
	return snapshot, nil
}

// Import validates the snapshot up front and then replaces every group and
// item row inside one transaction. A snapshot with no selected group gets its
// oldest group selected so the view filters keep matching.
func (s *service) Import(ctx context.Context, snapshot Snapshot) error {
	if err := validate(snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInvalidData, err, "snapshot rejected")
	}

	return s.tx.Write(ctx, "backup.import", func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Exec("DELETE FROM items").Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Exec("DELETE FROM item_groups").Error; err != nil {
			return err
		}

		anySelected := false
		for _, record := range snapshot.Groups {
			if record.Selected {
				anySelected = true
				break
			}
		}

		groupRepo := s.groups.WithTx(tx)
		for i, record := range snapshot.Groups {
			group := &models.ItemGroup{
				ID:       record.ID,
				Name:     record.Name,
				Selected: record.Selected || (!anySelected && i == 0),
			}
			if err := groupRepo.Create(ctx, group); err != nil {
				return err
			}
		}

		itemRepo := s.items.WithTx(tx)
		for _, record := range snapshot.Items {
			if err := itemRepo.Create(ctx, recordToItem(record)); err != nil {
				return err
			}
		}

		if snapshot.Settings == nil {
			return nil
		}
		settingsRepo := s.settings.WithTx(tx)
		return settingsRepo.Save(ctx, &models.Settings{
			ID:                 models.SettingsRowID,
			GroupSelectionMode: snapshot.Settings.GroupSelectionMode,
			DefaultListKind:    snapshot.Settings.DefaultListKind,
			KeepScreenOn:       snapshot.Settings.KeepScreenOn,
			UpdatedAt:          time.Now().UTC(),
		})
	})
}

// validate collects every problem in the snapshot instead of stopping at the
// first, so the caller can report the whole list.
func validate(snapshot Snapshot) error {
	var errs error

	if snapshot.Version != SnapshotVersion {
		errs = multierr.Append(errs, fmt.Errorf("unsupported snapshot version %d", snapshot.Version))
	}
	if len(snapshot.Groups) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("snapshot must contain at least one group"))
	}

	groupIDs := make(map[uuid.UUID]struct{}, len(snapshot.Groups))
	for i, record := range snapshot.Groups {
		if record.ID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("group %d: missing id", i))
		}
		if strings.TrimSpace(record.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("group %d: missing name", i))
		}
		if _, dup := groupIDs[record.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("group %d: duplicate id %s", i, record.ID))
		}
		groupIDs[record.ID] = struct{}{}
	}

	itemIDs := make(map[uuid.UUID]struct{}, len(snapshot.Items))
	for i, record := range snapshot.Items {
		if record.ID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d: missing id", i))
		}
		if _, dup := itemIDs[record.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("item %d: duplicate id %s", i, record.ID))
		}
		itemIDs[record.ID] = struct{}{}

		if strings.TrimSpace(record.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("item %d: missing name", i))
		}
		if _, ok := groupIDs[record.GroupID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("item %d: unknown group %s", i, record.GroupID))
		}
		if record.ShoppingAmount == nil && record.InventoryAmount == nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d: member of neither list", i))
		}
		if record.ShoppingAmount != nil && *record.ShoppingAmount < 0 {
			errs = multierr.Append(errs, fmt.Errorf("item %d: negative shopping amount", i))
		}
		if record.InventoryAmount != nil && *record.InventoryAmount < 0 {
			errs = multierr.Append(errs, fmt.Errorf("item %d: negative inventory amount", i))
		}
		if record.AutoAddThreshold < 1 {
			errs = multierr.Append(errs, fmt.Errorf("item %d: restock threshold below one", i))
		}
	}

	if snapshot.Settings != nil {
		if snapshot.Settings.GroupSelectionMode != enums.GroupSelectionModeSingle &&
			snapshot.Settings.GroupSelectionMode != enums.GroupSelectionModeMulti {
			errs = multierr.Append(errs, fmt.Errorf("settings: unknown selection mode %q", snapshot.Settings.GroupSelectionMode))
		}
		if !snapshot.Settings.DefaultListKind.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("settings: unknown list kind %q", snapshot.Settings.DefaultListKind))
		}
	}
	return errs
}

func recordToItem(record ItemRecord) *models.Item {
	return &models.Item{
		ID:                record.ID,
		GroupID:           record.GroupID,
		Name:              record.Name,
		ExtraInfo:         record.ExtraInfo,
		ColorIndex:        record.ColorIndex,
		ShoppingAmount:    record.ShoppingAmount,
		InventoryAmount:   record.InventoryAmount,
		Checked:           record.Checked,
		InShoppingTrash:   record.InShoppingTrash,
		InInventoryTrash:  record.InInventoryTrash,
		AutoAddToShopping: record.AutoAddToShopping,
		AutoAddThreshold:  record.AutoAddThreshold,
	}
}
