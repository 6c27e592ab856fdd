package controllers

import (
	"net/http"

	"github.com/jlindqvist/stocklist/api/responses"
	"github.com/jlindqvist/stocklist/api/validators"
	"github.com/jlindqvist/stocklist/internal/backup"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

// BackupExport dumps the whole store as a snapshot.
func BackupExport(svc backup.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapshot, err := svc.Export(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// BackupImport replaces the store with the posted snapshot.
func BackupImport(svc backup.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var snapshot backup.Snapshot
		if err := validators.DecodeJSONBody(r, &snapshot); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Import(ctx, snapshot); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "imported"})
	}
}
