package items

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"gorm.io/gorm"
)

// Repository encapsulates item persistence and the membership bookkeeping
// rules: leaving a list clears that list's flags, and a row that belongs to
// neither list is removed before the transaction commits.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an item repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the item, assigning the next insertion-order sequence.
func (r *Repository) Create(ctx context.Context, item *models.Item) error {
	var maxSeq int64
	if err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error; err != nil {
		return err
	}
	item.Seq = maxSeq + 1
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID loads a single item. Returns gorm.ErrRecordNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAll returns every row ordered by insertion. Diagnostic and backup use.
func (r *Repository) ListAll(ctx context.Context) ([]models.Item, error) {
	var rows []models.Item
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFields applies a last-writer-wins partial update. A missing id is not
// an error: the caller learns nothing happened from the zero row count.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// SetAmount writes one list's amount and applies the membership rules. The
// returned item is nil when the row was deleted (left both lists) or was
// already gone. The row count reports whether anything was touched.
func (r *Repository) SetAmount(ctx context.Context, id uuid.UUID, kind enums.ListKind, amount *int) (*models.Item, int64, error) {
	item, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	cols := models.ColumnsFor(kind)
	fields := map[string]any{cols.Amount: amount}

	wasMember := item.IsMember(kind)
	if amount == nil {
		// Leaving the list invalidates every per-list flag.
		fields[cols.Trashed] = false
		fields[cols.Selected] = false
		fields[cols.Expanded] = false
		if kind == enums.ListKindShopping {
			fields["checked"] = false
		}
	} else if !wasMember {
		// Joining a list starts outside its trash.
		fields[cols.Trashed] = false
	}

	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, 0, res.Error
	}

	item.SetAmount(kind, amount)
	if item.Orphaned() {
		if err := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error; err != nil {
			return nil, 0, err
		}
		return nil, res.RowsAffected, nil
	}

	updated, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return updated, res.RowsAffected, nil
}

// LeaveList clears one list's membership for every given id in a single
// statement, then removes the rows that no longer belong anywhere.
func (r *Repository) LeaveList(ctx context.Context, kind enums.ListKind, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	cols := models.ColumnsFor(kind)
	fields := map[string]any{
		cols.Amount:   nil,
		cols.Trashed:  false,
		cols.Selected: false,
		cols.Expanded: false,
	}
	if kind == enums.ListKindShopping {
		fields["checked"] = false
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id IN ?", ids).
		Updates(fields).Error; err != nil {
		return err
	}
	return r.DeleteOrphaned(ctx)
}

// MemberIDs returns the ids of every current member of the list.
func (r *Repository) MemberIDs(ctx context.Context, kind enums.ListKind) ([]uuid.UUID, error) {
	cols := models.ColumnsFor(kind)
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where(cols.Amount+" IS NOT NULL").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteOrphaned removes rows that are members of neither list.
func (r *Repository) DeleteOrphaned(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("shopping_amount IS NULL AND inventory_amount IS NULL").
		Delete(&models.Item{}).Error
}
