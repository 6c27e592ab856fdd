package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/enums"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
)

// PathUUID parses a uuid route parameter.
func PathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

// PathListKind parses the list-kind route parameter.
func PathListKind(r *http.Request) (enums.ListKind, error) {
	kind, err := enums.ParseListKind(chi.URLParam(r, "list"))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown list kind").
			WithDetails(map[string]any{"field": "list"})
	}
	return kind, nil
}

// QuerySortKey parses the optional sort query parameter.
func QuerySortKey(r *http.Request) (enums.SortKey, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("sort"))
	if raw == "" {
		return enums.SortKeyNameAsc, nil
	}
	key, err := enums.ParseSortKey(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").
			WithDetails(map[string]any{"field": "sort"})
	}
	return key, nil
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(r *http.Request, key string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	return raw == "true" || raw == "1"
}
