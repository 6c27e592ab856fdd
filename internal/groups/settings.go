package groups

import (
	"context"
	"errors"

	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"gorm.io/gorm"
)

// SettingsRepository owns the singleton preferences row.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs a settings repository.
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *SettingsRepository) WithTx(tx *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: tx}
}

// Load returns the settings row, or nil when the store was never bootstrapped.
func (r *SettingsRepository) Load(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Save upserts the settings row.
func (r *SettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsRowID
	return r.db.WithContext(ctx).Save(settings).Error
}

// SetSelectionMode writes the group selection mode.
func (r *SettingsRepository) SetSelectionMode(ctx context.Context, mode enums.GroupSelectionMode) error {
	return r.db.WithContext(ctx).
		Model(&models.Settings{}).
		Where("id = ?", models.SettingsRowID).
		Update("group_selection_mode", mode).Error
}
