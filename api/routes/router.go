package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jlindqvist/stocklist/api/controllers"
	"github.com/jlindqvist/stocklist/api/middleware"
	"github.com/jlindqvist/stocklist/internal/backup"
	"github.com/jlindqvist/stocklist/internal/checkout"
	"github.com/jlindqvist/stocklist/internal/groups"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/internal/projection"
	"github.com/jlindqvist/stocklist/internal/selection"
	"github.com/jlindqvist/stocklist/internal/trash"
	"github.com/jlindqvist/stocklist/pkg/config"
	"github.com/jlindqvist/stocklist/pkg/db"
	"github.com/jlindqvist/stocklist/pkg/logger"
)

// Services bundles everything the router serves.
type Services struct {
	Items      items.Service
	Groups     groups.Service
	Projection projection.Service
	Selection  selection.Service
	Trash      trash.Service
	Checkout   checkout.Service
	Backup     backup.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.ItemsAdd(svcs.Items, logg))
			r.Get("/raw", controllers.ItemsRaw(svcs.Items, logg))
			r.Put("/{id}/name", controllers.ItemSetName(svcs.Items, logg))
			r.Put("/{id}/extra-info", controllers.ItemSetExtraInfo(svcs.Items, logg))
			r.Put("/{id}/color", controllers.ItemSetColor(svcs.Items, logg))
			r.Put("/{id}/checked", controllers.ItemSetChecked(svcs.Items, logg))
			r.Put("/{id}/amount/{list}", controllers.ItemSetAmount(svcs.Items, logg))
			r.Put("/{id}/auto-add", controllers.ItemSetAutoAdd(svcs.Items, logg))
			r.Put("/{id}/auto-add-threshold", controllers.ItemSetAutoAddThreshold(svcs.Items, logg))
		})

		r.Route("/lists/{list}", func(r chi.Router) {
			r.Get("/", controllers.ViewGet(svcs.Projection, logg))
			r.Delete("/", controllers.ItemsDeleteAll(svcs.Items, logg))
			r.Get("/export", controllers.ViewExport(svcs.Projection, logg))

			r.Route("/selection", func(r chi.Router) {
				r.Post("/toggle", controllers.SelectionToggle(svcs.Selection, logg))
				r.Put("/", controllers.SelectionSet(svcs.Selection, logg))
				r.Post("/all", controllers.SelectionSelectAll(svcs.Selection, logg))
				r.Delete("/", controllers.SelectionClear(svcs.Selection, logg))
			})
			r.Put("/expanded", controllers.SelectionExpand(svcs.Selection, logg))

			r.Route("/trash", func(r chi.Router) {
				r.Get("/", controllers.ViewTrash(svcs.Projection, logg))
				r.Post("/", controllers.TrashItems(svcs.Trash, logg))
				r.Post("/selected", controllers.TrashSelected(svcs.Trash, logg))
				r.Post("/restore", controllers.TrashRestore(svcs.Trash, logg))
				r.Delete("/", controllers.TrashEmpty(svcs.Trash, logg))
			})
		})

		r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", controllers.GroupsList(svcs.Groups, logg))
			r.Post("/", controllers.GroupsAdd(svcs.Groups, logg))
			r.Put("/{id}", controllers.GroupRename(svcs.Groups, logg))
			r.Delete("/{id}", controllers.GroupDelete(svcs.Groups, logg))
			r.Post("/{id}/select", controllers.GroupSelect(svcs.Groups, logg))
			r.Post("/{id}/toggle", controllers.GroupToggleSelect(svcs.Groups, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(svcs.Groups, logg))
			r.Post("/selection-mode/toggle", controllers.SettingsToggleSelectionMode(svcs.Groups, logg))
			r.Put("/default-list", controllers.SettingsSetDefaultList(svcs.Groups, logg))
			r.Put("/keep-screen-on", controllers.SettingsSetKeepScreenOn(svcs.Groups, logg))
		})

		r.Route("/backup", func(r chi.Router) {
			r.Get("/", controllers.BackupExport(svcs.Backup, logg))
			r.Post("/", controllers.BackupImport(svcs.Backup, logg))
		})
	})

	return r
}
