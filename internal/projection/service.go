package projection

import (
	"context"
	"fmt"
	"strings"

	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"gorm.io/gorm"
)

// ViewDTO is one fully evaluated projection: the ordered sequence plus the
// counters the consumer needs to enable bulk actions.
type ViewDTO struct {
	Items         []items.ItemDTO `json:"items"`
	SelectedCount int64           `json:"selected_count"`
	CheckedCount  int64           `json:"checked_count"`
}

// txReader runs a read against the latest committed state.
type txReader interface {
	Read(ctx context.Context, fn func(conn *gorm.DB) error) error
}

// ServiceParams groups dependencies for the projection service.
type ServiceParams struct {
	Read txReader
	Repo *Repository
}

// Service evaluates read views. All methods observe the latest committed
// state only.
type Service interface {
	View(ctx context.Context, query ViewQuery) (ViewDTO, error)
	Trash(ctx context.Context, kind enums.ListKind) ([]items.ItemDTO, error)
	ExportLines(ctx context.Context, query ViewQuery) ([]string, error)
}

type service struct {
	rd   txReader
	repo *Repository
}

// NewService builds a projection service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Read == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reader is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "projection repo is required")
	}
	return &service{rd: params.Read, repo: params.Repo}, nil
}

func (s *service) View(ctx context.Context, query ViewQuery) (ViewDTO, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return ViewDTO{}, err
	}

	var view ViewDTO
	err = s.rd.Read(ctx, func(conn *gorm.DB) error {
		repo := s.repo.WithTx(conn)
		rows, err := repo.Visible(ctx, query)
		if err != nil {
			return err
		}
		selected, err := repo.SelectedCount(ctx, query)
		if err != nil {
			return err
		}

		view = ViewDTO{Items: items.ToDTOs(rows), SelectedCount: selected}
		if query.Kind == enums.ListKindShopping {
			checked, err := repo.CheckedCount(ctx, query.Search)
			if err != nil {
				return err
			}
			view.CheckedCount = checked
		}
		return nil
	})
	if err != nil {
		return ViewDTO{}, err
	}
	return view, nil
}

func (s *service) Trash(ctx context.Context, kind enums.ListKind) ([]items.ItemDTO, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	var dtos []items.ItemDTO
	err := s.rd.Read(ctx, func(conn *gorm.DB) error {
		rows, err := s.repo.WithTx(conn).Trashed(ctx, kind)
		if err != nil {
			return err
		}
		dtos = items.ToDTOs(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

// ExportLines renders the visible sequence as share-ready text, one line per
// item: "2x Milk, organic" with the detail part dropped when empty.
func (s *service) ExportLines(ctx context.Context, query ViewQuery) ([]string, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	var lines []string
	err = s.rd.Read(ctx, func(conn *gorm.DB) error {
		rows, err := s.repo.WithTx(conn).Visible(ctx, query)
		if err != nil {
			return err
		}
		lines = make([]string, 0, len(rows))
		for i := range rows {
			lines = append(lines, formatLine(&rows[i], query.Kind))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func formatLine(item *models.Item, kind enums.ListKind) string {
	amount := 0
	if v := item.Amount(kind); v != nil {
		amount = *v
	}
	line := fmt.Sprintf("%dx %s", amount, item.Name)
	if extra := strings.TrimSpace(item.ExtraInfo); extra != "" {
		line += ", " + extra
	}
	return line
}

func normalizeQuery(query ViewQuery) (ViewQuery, error) {
	if !query.Kind.IsValid() {
		return ViewQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind")
	}
	if query.Sort == "" {
		query.Sort = enums.SortKeyNameAsc
	}
	if !query.Sort.IsValid() {
		return ViewQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key")
	}
	if query.Kind != enums.ListKindShopping {
		query.UncheckedFirst = false
	}
	return query, nil
}
