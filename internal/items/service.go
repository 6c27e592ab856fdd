package items

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/internal/restock"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"gorm.io/gorm"
)

type txWriter interface {
	Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the item service.
type ServiceParams struct {
	Tx   txWriter
	Repo *Repository
}

// Service exposes the item mutations. Mutating an id that no longer exists is
// a silent no-op: the row may have just been removed by a checkout or a trash
// emptying, and that race is expected rather than exceptional.
type Service interface {
	Add(ctx context.Context, input AddItemInput) (ItemDTO, error)
	SetName(ctx context.Context, id uuid.UUID, name string) error
	SetExtraInfo(ctx context.Context, id uuid.UUID, extraInfo string) error
	SetColorIndex(ctx context.Context, id uuid.UUID, colorIndex int) error
	SetChecked(ctx context.Context, id uuid.UUID, checked bool) error
	SetAmount(ctx context.Context, id uuid.UUID, kind enums.ListKind, amount *int) error
	SetAutoAdd(ctx context.Context, id uuid.UUID, enabled bool) error
	SetAutoAddThreshold(ctx context.Context, id uuid.UUID, threshold int) error
	DeleteAll(ctx context.Context, kind enums.ListKind) error
	GetAllRaw(ctx context.Context) ([]ItemDTO, error)
}

type service struct {
	tx   txWriter
	repo *Repository
}

// NewService builds an item service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx writer is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo}, nil
}

// Add creates an item that is a member of at least one list.
func (s *service) Add(ctx context.Context, input AddItemInput) (ItemDTO, error) {
	if input.GroupID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "group id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	shopping := normalizeAmount(input.ShoppingAmount)
	inventory := normalizeAmount(input.InventoryAmount)
	if shopping == nil && inventory == nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item must join at least one list")
	}

	threshold := input.AutoAddThreshold
	if threshold < 1 {
		threshold = 1
	}

	var dto ItemDTO
	err := s.tx.Write(ctx, "items.add", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item := newItem(input, shopping, inventory, threshold)
		if err := repo.Create(ctx, item); err != nil {
			return err
		}
		if _, err := restock.Apply(ctx, tx, item.ID); err != nil {
			return err
		}
		created, err := repo.FindByID(ctx, item.ID)
		if err != nil {
			return err
		}
		dto = toDTO(created)
		return nil
	})
	if err != nil {
		return ItemDTO{}, err
	}
	return dto, nil
}

// SetName overwrites the display name, last writer wins.
func (s *service) SetName(ctx context.Context, id uuid.UUID, name string) error {
	return s.updateFields(ctx, "items.set_name", id, map[string]any{"name": name})
}

// SetExtraInfo overwrites the free-text detail line, last writer wins.
func (s *service) SetExtraInfo(ctx context.Context, id uuid.UUID, extraInfo string) error {
	return s.updateFields(ctx, "items.set_extra_info", id, map[string]any{"extra_info": extraInfo})
}

// SetColorIndex overwrites the palette tag, last writer wins.
func (s *service) SetColorIndex(ctx context.Context, id uuid.UUID, colorIndex int) error {
	if colorIndex < 0 {
		colorIndex = 0
	}
	return s.updateFields(ctx, "items.set_color", id, map[string]any{"color_index": colorIndex})
}

// SetChecked flips the shopping-list check mark. Items that are not shopping
// members are left untouched.
func (s *service) SetChecked(ctx context.Context, id uuid.UUID, checked bool) error {
	return s.tx.Write(ctx, "items.set_checked", func(tx *gorm.DB) error {
		res := tx.WithContext(ctx).
			Table("items").
			Where("id = ? AND shopping_amount IS NOT NULL", id).
			Update("checked", checked)
		return res.Error
	})
}

// SetAmount writes one list's amount. A nil (or negative) amount removes the
// item from that list; leaving both lists deletes the item. Inventory writes
// re-evaluate the auto-restock rule in the same transaction.
func (s *service) SetAmount(ctx context.Context, id uuid.UUID, kind enums.ListKind, amount *int) error {
	amount = normalizeAmount(amount)
	return s.tx.Write(ctx, "items.set_amount", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, _, err := repo.SetAmount(ctx, id, kind, amount)
		if err != nil {
			return err
		}
		if kind == enums.ListKindInventory && item != nil {
			if _, err := restock.Apply(ctx, tx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetAutoAdd toggles the restock rule and re-evaluates it immediately.
func (s *service) SetAutoAdd(ctx context.Context, id uuid.UUID, enabled bool) error {
	return s.tx.Write(ctx, "items.set_auto_add", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.UpdateFields(ctx, id, map[string]any{"auto_add_to_shopping": enabled})
		if err != nil || rows == 0 {
			return err
		}
		_, err = restock.Apply(ctx, tx, id)
		return err
	})
}

// SetAutoAddThreshold writes the restock threshold (floored at 1) and
// re-evaluates the rule.
func (s *service) SetAutoAddThreshold(ctx context.Context, id uuid.UUID, threshold int) error {
	if threshold < 1 {
		threshold = 1
	}
	return s.tx.Write(ctx, "items.set_threshold", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.UpdateFields(ctx, id, map[string]any{"auto_add_threshold": threshold})
		if err != nil || rows == 0 {
			return err
		}
		_, err = restock.Apply(ctx, tx, id)
		return err
	})
}

// DeleteAll removes every member of the list, deleting the rows that belong
// to neither list afterwards.
func (s *service) DeleteAll(ctx context.Context, kind enums.ListKind) error {
	return s.tx.Write(ctx, "items.delete_all", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ids, err := repo.MemberIDs(ctx, kind)
		if err != nil {
			return err
		}
		return repo.LeaveList(ctx, kind, ids)
	})
}

// GetAllRaw dumps every row. Diagnostic and export use only.
func (s *service) GetAllRaw(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToDTOs(rows), nil
}

func (s *service) updateFields(ctx context.Context, op string, id uuid.UUID, fields map[string]any) error {
	return s.tx.Write(ctx, op, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).UpdateFields(ctx, id, fields)
		return err
	})
}

func normalizeAmount(amount *int) *int {
	if amount == nil || *amount < 0 {
		return nil
	}
	return amount
}

func newItem(input AddItemInput, shopping, inventory *int, threshold int) *models.Item {
	return &models.Item{
		ID:                uuid.New(),
		GroupID:           input.GroupID,
		Name:              strings.TrimSpace(input.Name),
		ExtraInfo:         input.ExtraInfo,
		ColorIndex:        input.ColorIndex,
		ShoppingAmount:    shopping,
		InventoryAmount:   inventory,
		AutoAddToShopping: input.AutoAddToShopping,
		AutoAddThreshold:  threshold,
	}
}
