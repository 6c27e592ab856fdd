package controllers

import (
	"net/http"

	"github.com/jlindqvist/stocklist/api/responses"
	"github.com/jlindqvist/stocklist/internal/checkout"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

// Checkout transfers checked shopping quantities into inventory stock.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		count, err := svc.Checkout(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"checked_out": count})
	}
}
