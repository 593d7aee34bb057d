package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/metrics"
	"github.com/iVbk/khmerlink/internal/models"
)

// Redirect serves a redirect to the destination URL of a slug.
//
// Request:
//
//	GET /{slug}
//
// The slug is matched verbatim after URL decoding, so percent-encoded
// Khmer slugs resolve to the same key the form stored. chi hands the
// parameter over still escaped when the request carries a raw path.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}

	destination, err := h.store.Resolve(r.Context(), models.Slug(slug))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.Redirects.WithLabelValues(metrics.OutcomeNotFound).Inc()
			h.textError(w, "redirect with slug: "+slug, errs.ErrNotFound, http.StatusNotFound)
			return
		}
		h.textError(w, "failed to resolve slug: "+slug, err, http.StatusInternalServerError)
		return
	}

	metrics.Redirects.WithLabelValues(metrics.OutcomeFound).Inc()

	w.Header().Set("Location", string(destination))
	w.WriteHeader(http.StatusTemporaryRedirect)
}
