package trash

import (
	"context"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"gorm.io/gorm"
)

type txWriter interface {
	Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the trash service.
type ServiceParams struct {
	Tx    txWriter
	Repo  *Repository
	Items *items.Repository
}

// Service drives the soft-delete lifecycle. SoftDelete returns the
// number of trashed rows so the consumer can show an accumulating
// "N items deleted" notice backed by a single RestoreAll.
type Service interface {
	SoftDelete(ctx context.Context, kind enums.ListKind, ids []uuid.UUID) (int64, error)
	SoftDeleteSelected(ctx context.Context, kind enums.ListKind) (int64, error)
	RestoreAll(ctx context.Context, kind enums.ListKind) error
	EmptyTrash(ctx context.Context, kind enums.ListKind) error
}

type service struct {
	tx    txWriter
	repo  *Repository
	items *items.Repository
}

// NewService builds a trash service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx writer is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trash repo is required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo, items: params.Items}, nil
}

// SoftDelete moves the given members into the list's trash. Ids that are not
// untrashed members are skipped. The other list is untouched.
func (s *service) SoftDelete(ctx context.Context, kind enums.ListKind, ids []uuid.UUID) (int64, error) {
	if !kind.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	var trashed int64
	err := s.tx.Write(ctx, "trash.soft_delete", func(tx *gorm.DB) error {
		var err error
		trashed, err = s.repo.WithTx(tx).SoftDelete(ctx, kind, ids)
		return err
	})
	return trashed, err
}

// SoftDeleteSelected trashes the current selection set, which empties it as a
// side effect of trashing.
func (s *service) SoftDeleteSelected(ctx context.Context, kind enums.ListKind) (int64, error) {
	if !kind.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	var trashed int64
	err := s.tx.Write(ctx, "trash.soft_delete_selected", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ids, err := repo.SelectedIDs(ctx, kind)
		if err != nil {
			return err
		}
		trashed, err = repo.SoftDelete(ctx, kind, ids)
		return err
	})
	return trashed, err
}

// RestoreAll brings the entire trash back in one shot.
func (s *service) RestoreAll(ctx context.Context, kind enums.ListKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "trash.restore_all", func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).RestoreAll(ctx, kind)
		return err
	})
}

// EmptyTrash removes every trashed member from the list for good. Rows that
// belong to neither list afterwards are deleted.
func (s *service) EmptyTrash(ctx context.Context, kind enums.ListKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	return s.tx.Write(ctx, "trash.empty", func(tx *gorm.DB) error {
		ids, err := s.repo.WithTx(tx).TrashedIDs(ctx, kind)
		if err != nil {
			return err
		}
		return s.items.WithTx(tx).LeaveList(ctx, kind, ids)
	})
}
