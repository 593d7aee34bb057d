package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/metrics"
	"github.com/iVbk/khmerlink/internal/shorturl"
)

// CreateLink handles the HTML form submission.
//
// Request:
//
//	POST /create
//	Content-Type: application/x-www-form-urlencoded
//	slug=...&url=...
//
// The slug is used verbatim, any Unicode text is a valid slug. When the
// slug field is left empty one is generated from the destination URL.
// The response is the form page again, with a success or error block.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.textError(w, "failed to parse form", err, http.StatusBadRequest)
		return
	}

	slug := strings.TrimSpace(r.PostFormValue("slug"))
	destination := strings.TrimSpace(r.PostFormValue("url"))

	if destination == "" {
		h.renderHome(w, homeData{Error: "❌ Destination URL is required."})
		return
	}
	if !govalidator.IsURL(destination) {
		h.renderHome(w, homeData{Error: "❌ Destination is not a valid URL."})
		return
	}

	if slug == "" {
		slug = shorturl.Generate(destination)
	}

	err := h.store.Create(r.Context(), slug, destination)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrAlreadyExists):
		h.renderHome(w, homeData{Error: "❌ Slug already exists. Please choose another."})
		return
	case errors.Is(err, errs.ErrInvalidRequest):
		h.renderHome(w, homeData{Error: "❌ Slug must not be empty."})
		return
	default:
		h.textError(w, "failed to save link", err, http.StatusInternalServerError)
		return
	}

	metrics.LinksCreated.Inc()

	h.renderHome(w, homeData{
		Message:   "✅ Link created successfully!",
		ShortLink: h.shortLink(slug),
	})
}
