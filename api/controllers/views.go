package controllers

import (
	"net/http"
	"strings"

	"github.com/jlindqvist/stocklist/api/responses"
	"github.com/jlindqvist/stocklist/api/validators"
	"github.com/jlindqvist/stocklist/internal/projection"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

func viewQueryFromRequest(r *http.Request) (projection.ViewQuery, error) {
	kind, err := validators.PathListKind(r)
	if err != nil {
		return projection.ViewQuery{}, err
	}
	sort, err := validators.QuerySortKey(r)
	if err != nil {
		return projection.ViewQuery{}, err
	}
	return projection.ViewQuery{
		Kind:           kind,
		Sort:           sort,
		Search:         strings.TrimSpace(r.URL.Query().Get("search")),
		UncheckedFirst: validators.QueryBool(r, "unchecked_first"),
	}, nil
}

// ViewGet evaluates one projected list view.
func ViewGet(svc projection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query, err := viewQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.View(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ViewExport renders the visible sequence as share-ready text lines.
func ViewExport(svc projection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query, err := viewQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		lines, err := svc.ExportLines(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"lines": lines})
	}
}

// ViewTrash lists the trashed members of one list.
func ViewTrash(svc projection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rows, err := svc.Trash(ctx, kind)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
