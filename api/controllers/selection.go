package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/api/responses"
	"github.com/jlindqvist/stocklist/api/validators"
	"github.com/jlindqvist/stocklist/internal/selection"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

type idPayload struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type selectPayload struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Selected bool      `json:"selected"`
}

type idsPayload struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type expandPayload struct {
	// Null collapses the currently expanded item.
	ID *uuid.UUID `json:"id"`
}

// SelectionToggle flips one item's selection in the list.
func SelectionToggle(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload idPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.ToggleSelected(ctx, kind, payload.ID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "toggled"})
	}
}

// SelectionSet writes one item's selection flag.
func SelectionSet(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload selectPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetSelected(ctx, kind, payload.ID, payload.Selected); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// SelectionSelectAll selects the caller's currently visible items.
func SelectionSelectAll(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
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
		if err := svc.SelectAll(ctx, kind, payload.IDs); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "selected"})
	}
}

// SelectionClear deselects the whole list.
func SelectionClear(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.ClearSelection(ctx, kind); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// SelectionExpand replaces the list's expanded item.
func SelectionExpand(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload expandPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetExpanded(ctx, kind, payload.ID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
