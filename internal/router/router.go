// Package router sets up all HTTP routes and middleware chains for the
// Chronicle API. Routes are grouped by resource under /api, with compiled
// books served as static files under the public books path.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"chronicle/internal/handlers"
	"chronicle/internal/middleware"
)

// Handlers bundles every handler group the router wires up.
type Handlers struct {
	Posts       *handlers.Posts
	Taxonomy    *handlers.Taxonomy
	Images      *handlers.Images
	Manuscripts *handlers.Manuscripts
	Sections    *handlers.Sections
	Collections *handlers.Collections
	Tracking    *handlers.Tracking
	Research    *handlers.Research
	Compile     *handlers.Compile
	Health      *handlers.Health
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. booksDir is served read-only at booksPath so
// compile download URLs resolve.
func New(h *Handlers, limiter *middleware.RateLimiter, corsOrigins, booksDir, booksPath string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request. CORS sits outermost so
	// pre-flight requests short-circuit before anything else runs.
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   strings.Split(corsOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.Health.Check)

	r.Route("/api", func(r chi.Router) {
		// Posts
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Posts.List)
			r.Post("/", h.Posts.Create)
			r.Post("/preview", h.Posts.Preview)
			r.Get("/{id}", h.Posts.Get)
			r.Put("/{id}", h.Posts.Update)
			r.Patch("/{id}", h.Posts.Update)
			r.Delete("/{id}", h.Posts.Delete)
			r.Get("/{id}/images", h.Images.ListByPost)
		})

		// Taxonomy
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Taxonomy.ListCategories)
			r.Post("/", h.Taxonomy.CreateCategory)
			r.Delete("/{id}", h.Taxonomy.DeleteCategory)
		})
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.Taxonomy.ListTags)
			r.Post("/", h.Taxonomy.CreateTag)
			r.Delete("/{id}", h.Taxonomy.DeleteTag)
		})

		// Image metadata
		r.Route("/images", func(r chi.Router) {
			r.Post("/", h.Images.Create)
			r.Patch("/{id}", h.Images.Update)
			r.Delete("/{id}", h.Images.Delete)
		})

		// Manuscripts and their scoped listings
		r.Route("/manuscripts", func(r chi.Router) {
			r.Get("/", h.Manuscripts.List)
			r.Post("/", h.Manuscripts.Create)
			r.Get("/{id}", h.Manuscripts.Get)
			r.Patch("/{id}", h.Manuscripts.Update)
			r.Delete("/{id}", h.Manuscripts.Delete)

			r.Get("/{id}/sections", h.Sections.ListByManuscript)
			r.Get("/{id}/collections", h.Collections.ListByManuscript)
			r.Get("/{id}/goals", h.Tracking.ListGoals)
			r.Get("/{id}/sessions", h.Tracking.ListSessions)
			r.Get("/{id}/stats", h.Tracking.Stats)
			r.Get("/{id}/research", h.Research.ListByManuscript)
		})

		// Sections, snapshots, comments
		r.Route("/sections", func(r chi.Router) {
			r.Post("/", h.Sections.Create)
			r.Get("/{id}", h.Sections.Get)
			r.Put("/{id}", h.Sections.Update)
			r.Patch("/{id}", h.Sections.Update)
			r.Delete("/{id}", h.Sections.Delete)
			r.Get("/{id}/snapshots", h.Sections.ListSnapshots)
			r.Post("/{id}/snapshots", h.Sections.CreateSnapshot)
			r.Get("/{id}/comments", h.Sections.ListComments)
			r.Post("/{id}/comments", h.Sections.CreateComment)
		})
		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/{id}/restore", h.Sections.RestoreSnapshot)
			r.Delete("/{id}", h.Sections.DeleteSnapshot)
		})
		r.Route("/comments", func(r chi.Router) {
			r.Patch("/{id}", h.Sections.UpdateComment)
			r.Delete("/{id}", h.Sections.DeleteComment)
		})

		// Collections
		r.Route("/collections", func(r chi.Router) {
			r.Post("/", h.Collections.Create)
			r.Patch("/{id}", h.Collections.Update)
			r.Delete("/{id}", h.Collections.Delete)
			r.Post("/{id}/items/{sectionId}", h.Collections.AddItem)
			r.Delete("/{id}/items/{sectionId}", h.Collections.RemoveItem)
		})

		// Writing goals and sessions
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", h.Tracking.CreateGoal)
			r.Delete("/{id}", h.Tracking.DeactivateGoal)
		})
		r.Post("/sessions", h.Tracking.CreateSession)

		// Research references
		r.Route("/research", func(r chi.Router) {
			r.Post("/", h.Research.Create)
			r.Patch("/{id}", h.Research.Update)
			r.Delete("/{id}", h.Research.Delete)
		})

		// Saved compiled books
		r.Get("/save-book", h.Manuscripts.SavedBook)
		r.Post("/save-book", h.Manuscripts.SaveBook)

		// Book compilation — rate limited; each run launches a browser.
		r.Route("/book/compile", func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Get("/", h.Compile.Status)
			r.Post("/", h.Compile.Run)
		})
	})

	// Compiled PDFs.
	fs := http.StripPrefix(booksPath+"/", http.FileServer(http.Dir(booksDir)))
	r.Get(booksPath+"/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})

	return r
}
