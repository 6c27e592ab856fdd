package selection

import (
	"context"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"gorm.io/gorm"
)

type txWriter interface {
	Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the selection service.
type ServiceParams struct {
	Tx   txWriter
	Repo *Repository
}

// Service mutates selection and expansion per list. Ids that are not
// untrashed members of the list are silently skipped.
type Service interface {
	ToggleSelected(ctx context.Context, kind enums.ListKind, id uuid.UUID) error
	SetSelected(ctx context.Context, kind enums.ListKind, id uuid.UUID, selected bool) error
	SelectAll(ctx context.Context, kind enums.ListKind, visibleIDs []uuid.UUID) error
	ClearSelection(ctx context.Context, kind enums.ListKind) error
	SetExpanded(ctx context.Context, kind enums.ListKind, id *uuid.UUID) error
}

type service struct {
	tx   txWriter
	repo *Repository
}

// NewService builds a selection service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx writer is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo}, nil
}

func (s *service) ToggleSelected(ctx context.Context, kind enums.ListKind, id uuid.UUID) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "selection.toggle", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindSelected(ctx, kind, id)
		if err != nil || current == nil {
			return err
		}
		return repo.SetSelected(ctx, kind, id, !*current)
	})
}

func (s *service) SetSelected(ctx context.Context, kind enums.ListKind, id uuid.UUID, selected bool) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "selection.set", func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SetSelected(ctx, kind, id, selected)
	})
}

// SelectAll selects exactly the caller's visible ids, not the whole list: the
// consumer passes the ids of its current filtered projection.
func (s *service) SelectAll(ctx context.Context, kind enums.ListKind, visibleIDs []uuid.UUID) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "selection.select_all", func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SelectMany(ctx, kind, visibleIDs)
	})
}

func (s *service) ClearSelection(ctx context.Context, kind enums.ListKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "selection.clear", func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ClearSelection(ctx, kind)
	})
}

// SetExpanded replaces the list's expanded item in one atomic clear-then-set.
// A nil id just collapses the current one. Two items are never expanded at
// once, not even transiently inside the store.
func (s *service) SetExpanded(ctx context.Context, kind enums.ListKind, id *uuid.UUID) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "selection.expand", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ClearExpanded(ctx, kind); err != nil {
			return err
		}
		if id == nil {
			return nil
		}
		return repo.SetExpanded(ctx, kind, *id)
	})
}
