package controllers

import (
	"net/http"

	"github.com/jlindqvist/stocklist/api/responses"
	"github.com/jlindqvist/stocklist/api/validators"
	"github.com/jlindqvist/stocklist/internal/trash"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

// TrashItems soft-deletes the given members of a list.
func TrashItems(svc trash.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload idsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		trashed, err := svc.SoftDelete(ctx, kind, payload.IDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"trashed": trashed})
	}
}

// TrashSelected soft-deletes the list's current selection.
func TrashSelected(svc trash.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		trashed, err := svc.SoftDeleteSelected(ctx, kind)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"trashed": trashed})
	}
}

// TrashRestore undoes every pending soft deletion in the list.
func TrashRestore(svc trash.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.RestoreAll(ctx, kind); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "restored"})
	}
}

// TrashEmpty discards the list's trash for good.
func TrashEmpty(svc trash.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.EmptyTrash(ctx, kind); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "emptied"})
	}
}
