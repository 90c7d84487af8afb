package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rh "github.com/coreybb/bookpot-admin/route-handlers"
	"github.com/coreybb/bookpot-admin/session"
	"github.com/coreybb/bookpot-admin/webutil"
)

const (
	usersPagePath   = "/"
	authorsBasePath = "/authors"
	ebooksBasePath  = "/ebooks"
	loginPath       = session.LoginPath
	logoutPath      = "/logout"
	healthPath      = "/healthz"
	metricsPath     = "/metrics"
)

const (
	assetsSubPath = "/assets"
)

const (
	paramID = "id" // General parameter name for resource IDs
)

// Handlers groups the route handlers the router dispatches to.
type Handlers struct {
	Pages   *rh.PageHandler
	Authors *rh.AuthorHandler
	Ebooks  *rh.EbookHandler
	Auth    *rh.AuthHandler
}

// SetupRoutes builds the dashboard router. Every request is bounded by
// handlerTimeout, which must cover the backend calls the request makes.
func SetupRoutes(h Handlers, gatherer prometheus.Gatherer, handlerTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(RequestID)
	r.Use(RealIP)
	r.Use(Logger)                                            // Log every request
	r.Use(Recoverer)                                         // Recover from panics
	r.Use(Timeout(handlerTimeout))                           // Set a timeout context for requests
	r.Use(SetHeader(webutil.HeaderCacheControl, "no-store")) // Pages carry session data

	configureAuthRoutes(r, h.Auth)

	// Page views gate themselves so they can redirect before fetching data.
	r.Get(usersPagePath, webutil.MakeHandler(h.Pages.HandleUsersPage))

	configureAuthorRoutes(r, h.Pages, h.Authors)
	configureEbookRoutes(r, h.Pages, h.Ebooks)

	// Health check endpoint
	r.Get(healthPath, handleHealthCheck)
	r.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- Auth Routes ---
func configureAuthRoutes(r chi.Router, handler *rh.AuthHandler) {
	r.Get(loginPath, webutil.MakeHandler(handler.HandleLoginPage))
	r.Post(loginPath, webutil.MakeHandler(handler.HandleLogin))
	r.With(RequireSession).Post(logoutPath, webutil.MakeHandler(handler.HandleLogout))
}

// --- Author Routes ---
func configureAuthorRoutes(r chi.Router, pages *rh.PageHandler, handler *rh.AuthorHandler) {
	specificAuthorPath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(authorsBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(pages.HandleAuthorsPage))
		r.Group(func(r chi.Router) {
			r.Use(RequireSession)
			r.Post("/", webutil.MakeHandler(handler.HandleCreateAuthor))
			r.Post(specificAuthorPath, webutil.MakeHandler(handler.HandleUpdateAuthor)) // POST /authors/{id}
		})
	})
}

// --- Ebook Routes ---
func configureEbookRoutes(r chi.Router, pages *rh.PageHandler, handler *rh.EbookHandler) {
	specificEbookPath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(ebooksBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(pages.HandleEbooksPage))
		r.Group(func(r chi.Router) {
			r.Use(RequireSession)
			r.Post("/", webutil.MakeHandler(handler.HandleCreateEbook))                 // step 1: record
			r.Post(assetsSubPath, webutil.MakeHandler(handler.HandleAttachEbookAssets)) // step 2: POST /ebooks/assets
			r.Post(specificEbookPath, webutil.MakeHandler(handler.HandleUpdateEbook))   // POST /ebooks/{id}
		})
	})
}

// --- Utility Functions ---

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// SetHeader is a middleware to set a response header.
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, value)
			next.ServeHTTP(w, r)
		})
	}
}
