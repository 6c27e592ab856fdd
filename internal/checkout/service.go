package checkout

import (
	"context"

	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"gorm.io/gorm"
)

type txWriter interface {
	Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Tx    txWriter
	Repo  *Repository
	Items *items.Repository
}

// Service executes the checkout. It is all-or-nothing: either every checked
// item is transferred and cleared from the shopping list, or none are.
type Service interface {
	Checkout(ctx context.Context) (int64, error)
}

type service struct {
	tx    txWriter
	repo  *Repository
	items *items.Repository
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx writer is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout repo is required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo, items: params.Items}, nil
}

// Checkout moves every checked visible shopping quantity into inventory
// stock, then clears those items off the shopping list. Items that are not
// inventory members simply leave the store. Returns the number of items
// checked out; zero checked items is a no-op.
//
// The restock rule does not run here: checkout only ever raises inventory
// amounts, so no deficit can appear.
func (s *service) Checkout(ctx context.Context) (int64, error) {
	var count int64
	err := s.tx.Write(ctx, "checkout", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ids, err := repo.CheckedVisibleIDs(ctx)
		if err != nil || len(ids) == 0 {
			return err
		}
		if err := repo.AddToStock(ctx, ids); err != nil {
			return err
		}
		if err := s.items.WithTx(tx).LeaveList(ctx, enums.ListKindShopping, ids); err != nil {
			return err
		}
		count = int64(len(ids))
		return nil
	})
	return count, err
}
