// Package handler provides the HTTP handlers of the link service.
package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iVbk/khmerlink/internal/config"
	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/middleware"
	"github.com/iVbk/khmerlink/internal/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler serves the HTML form, the JSON API and the redirects.
type Handler struct {
	store  repository.MappingStorage
	logger *zap.Logger
	config *config.Config
}

// New constructs a new Handler, ensuring that the dependencies are valid values.
func New(store repository.MappingStorage, logger *zap.Logger, config *config.Config) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	return &Handler{store: store, logger: logger, config: config}, nil
}

// Register attaches the middleware stack and all routes to the router.
// The slug route must come last: every path that is not a reserved route
// is a potential slug.
func (h *Handler) Register(r chi.Router) chi.Router {
	r.Use(middleware.Logger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Unzip(h.logger))
	r.Use(middleware.Metrics)
	// the form is meant to be embeddable from anywhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", h.Home)
	r.Post("/create", h.CreateLink)
	r.Post("/api/links", h.CreateLinkJSON)
	r.Get("/api/links", h.ListLinks)
	r.Get("/ping", h.PingDB)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/{slug}", h.Redirect)

	return r
}

// shortLink builds the full public link for a slug.
func (h *Handler) shortLink(slug string) string {
	scheme := "http"
	if h.config.TLSEnabled {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s",
		scheme, h.config.Server.ReturnAddress, url.PathEscape(slug))
}

// textError writes an error response in a text format and logs it
// with the given message if the status code is of the 5xx class.
func (h *Handler) textError(w http.ResponseWriter, msg string, err error, code int) {
	if code >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Info(msg, zap.Error(err))
	}
	http.Error(w, fmt.Sprintf("%s: %s", err, msg), code)
}
