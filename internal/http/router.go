package httpx

import (
	"net/http"

	"adminconsole/internal/config"
	"adminconsole/internal/http/handlers"
	middlewarex "adminconsole/internal/http/middleware"
	"adminconsole/internal/services/audit"
	"adminconsole/internal/services/screen"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config   config.Cfg
	Catalog  *screen.Catalog
	Sessions *screen.Store
	Audit    *audit.Service // nil when DB_DSN is not set
}

// NewRouter creates the console HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	screens := handlers.NewScreens(deps.Sessions)

	r.Group(func(r chi.Router) {
		r.Use(middlewarex.AdminAuth(deps.Config.Sec.AdminToken))

		r.Get("/catalog", handlers.Catalog(deps.Catalog))
		r.Get("/audit", handlers.ListAudit(deps.Audit))

		r.Post("/screens", screens.Mount)
		r.Route("/screens/{sid}", func(r chi.Router) {
			r.Get("/", screens.Show)
			r.Delete("/", screens.Unmount)

			// Query state
			r.Post("/page", screens.ChangePage)
			r.Post("/limit", screens.SetLimit)
			r.Post("/sort", screens.SetSort)
			r.Post("/filters", screens.UpdateFilters)
			r.Post("/filters/reset", screens.ResetFilters)
			r.Post("/refresh", screens.Refresh)

			// Modals
			r.Post("/modals/create", screens.OpenCreate)
			r.Post("/modals/edit", screens.OpenEdit)
			r.Post("/modals/delete", screens.OpenDelete)
			r.Post("/modals/close", screens.CloseModal)
			r.Post("/modals/{name}", screens.OpenNamed)

			// Mutations
			r.Post("/items", screens.CreateItem)
			r.Put("/items/{id}", screens.UpdateItem)
			r.Delete("/items/{id}", screens.DeleteItem)

			r.Post("/errors/{field}/clear", screens.ClearError)
			r.Get("/serial/{row}", screens.Serial)
		})
	})

	return r
}
