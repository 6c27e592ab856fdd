// Package projection computes the filtered, ordered read views of the item
// stores: membership plus trash plus group-selection filters, case-insensitive
// search and the sort keys, with insertion order as the deterministic
// tie-break.
package projection

import (
	"context"
	"fmt"
	"strings"

	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"gorm.io/gorm"
)

// ViewQuery identifies one projected view of a list.
type ViewQuery struct {
	Kind   enums.ListKind
	Sort   enums.SortKey
	Search string

	// UncheckedFirst sorts unchecked shopping items entirely before checked
	// ones, with Sort as the secondary order. Ignored for the inventory.
	UncheckedFirst bool
}

// Repository runs the projection queries. Read only.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Visible returns the projected sequence: members of the list, not in its
// trash, in a selected group, matching the search text, in query order.
func (r *Repository) Visible(ctx context.Context, query ViewQuery) ([]models.Item, error) {
	var rows []models.Item
	err := r.visibleScope(ctx, query.Kind, query.Search).
		Order(orderClause(query)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Trashed returns the list's trash, oldest deletion candidates first.
func (r *Repository) Trashed(ctx context.Context, kind enums.ListKind) ([]models.Item, error) {
	cols := models.ColumnsFor(kind)
	var rows []models.Item
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN item_groups ON item_groups.id = items.group_id").
		Where("item_groups.selected = ?", true).
		Where(fmt.Sprintf("items.%s IS NOT NULL", cols.Amount)).
		Where(fmt.Sprintf("items.%s = ?", cols.Trashed), true).
		Order("items.seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SelectedCount counts the selected items inside the projected view.
func (r *Repository) SelectedCount(ctx context.Context, query ViewQuery) (int64, error) {
	cols := models.ColumnsFor(query.Kind)
	var count int64
	err := r.visibleScope(ctx, query.Kind, query.Search).
		Where(fmt.Sprintf("items.%s = ?", cols.Selected), true).
		Count(&count).Error
	return count, err
}

// CheckedCount counts the checked items visible on the shopping list. The
// checkout action is enabled only while this is non-zero.
func (r *Repository) CheckedCount(ctx context.Context, search string) (int64, error) {
	var count int64
	err := r.visibleScope(ctx, enums.ListKindShopping, search).
		Where("items.checked = ?", true).
		Count(&count).Error
	return count, err
}

// VisibleIDs returns just the ids of the projected view, for select-all.
func (r *Repository) VisibleIDs(ctx context.Context, query ViewQuery) ([]string, error) {
	var ids []string
	err := r.visibleScope(ctx, query.Kind, query.Search).
		Order(orderClause(query)).
		Pluck("items.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) visibleScope(ctx context.Context, kind enums.ListKind, search string) *gorm.DB {
	cols := models.ColumnsFor(kind)
	scope := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN item_groups ON item_groups.id = items.group_id").
		Where("item_groups.selected = ?", true).
		Where(fmt.Sprintf("items.%s IS NOT NULL", cols.Amount)).
		Where(fmt.Sprintf("items.%s = ?", cols.Trashed), false)

	if needle := strings.TrimSpace(search); needle != "" {
		pattern := "%" + escapeLike(strings.ToLower(needle)) + "%"
		scope = scope.Where(
			`LOWER(items.name) LIKE ? ESCAPE '\' OR LOWER(items.extra_info) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}
	return scope
}

func orderClause(query ViewQuery) string {
	cols := models.ColumnsFor(query.Kind)

	var clauses []string
	if query.Kind == enums.ListKindShopping && query.UncheckedFirst {
		clauses = append(clauses, "items.checked ASC")
	}
	switch query.Sort {
	case enums.SortKeyColor:
		clauses = append(clauses, "items.color_index ASC")
	case enums.SortKeyNameDesc:
		clauses = append(clauses, "LOWER(items.name) DESC")
	case enums.SortKeyAmountAsc:
		clauses = append(clauses, fmt.Sprintf("items.%s ASC", cols.Amount))
	case enums.SortKeyAmountDesc:
		clauses = append(clauses, fmt.Sprintf("items.%s DESC", cols.Amount))
	default:
		clauses = append(clauses, "LOWER(items.name) ASC")
	}
	clauses = append(clauses, "items.seq ASC")
	return strings.Join(clauses, ", ")
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
