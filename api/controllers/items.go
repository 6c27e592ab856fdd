package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/api/responses"
	"github.com/jlindqvist/stocklist/api/validators"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

type addItemPayload struct {
	GroupID   uuid.UUID `json:"group_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=200"`
	ExtraInfo string    `json:"extra_info" validate:"max=500"`

	ColorIndex int `json:"color_index" validate:"min=0"`

	ShoppingAmount  *int `json:"shopping_amount"`
	InventoryAmount *int `json:"inventory_amount"`

	AutoAddToShopping bool `json:"auto_add_to_shopping"`
	AutoAddThreshold  int  `json:"auto_add_threshold" validate:"min=0"`
}

type namePayload struct {
	Name string `json:"name" validate:"required,max=200"`
}

type extraInfoPayload struct {
	ExtraInfo string `json:"extra_info" validate:"max=500"`
}

type colorPayload struct {
	ColorIndex int `json:"color_index" validate:"min=0"`
}

type checkedPayload struct {
	Checked bool `json:"checked"`
}

type amountPayload struct {
	// A null or negative amount removes the item from the list.
	Amount *int `json:"amount"`
}

type autoAddPayload struct {
	Enabled bool `json:"enabled"`
}

type thresholdPayload struct {
	Threshold int `json:"threshold" validate:"min=1"`
}

// ItemsAdd creates a new item.
func ItemsAdd(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload addItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Add(ctx, items.AddItemInput{
			GroupID:           payload.GroupID,
			Name:              payload.Name,
			ExtraInfo:         payload.ExtraInfo,
			ColorIndex:        payload.ColorIndex,
			ShoppingAmount:    payload.ShoppingAmount,
			InventoryAmount:   payload.InventoryAmount,
			AutoAddToShopping: payload.AutoAddToShopping,
			AutoAddThreshold:  payload.AutoAddThreshold,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ItemSetName renames an item.
func ItemSetName(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload namePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetName(ctx, id, payload.Name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemSetExtraInfo updates the free-text detail line.
func ItemSetExtraInfo(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload extraInfoPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetExtraInfo(ctx, id, payload.ExtraInfo); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemSetColor updates the palette tag.
func ItemSetColor(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload colorPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetColorIndex(ctx, id, payload.ColorIndex); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemSetChecked flips the shopping check mark.
func ItemSetChecked(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload checkedPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetChecked(ctx, id, payload.Checked); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemSetAmount writes one list's amount for an item.
func ItemSetAmount(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload amountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetAmount(ctx, id, kind, payload.Amount); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemSetAutoAdd toggles the restock rule for an item.
func ItemSetAutoAdd(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload autoAddPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetAutoAdd(ctx, id, payload.Enabled); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemSetAutoAddThreshold updates the restock threshold.
func ItemSetAutoAddThreshold(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload thresholdPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.SetAutoAddThreshold(ctx, id, payload.Threshold); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ItemsDeleteAll clears an entire list.
func ItemsDeleteAll(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := validators.PathListKind(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteAll(ctx, kind); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ItemsRaw dumps every row for diagnostics and export tooling.
func ItemsRaw(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rows, err := svc.GetAllRaw(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
