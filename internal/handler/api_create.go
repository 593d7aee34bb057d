package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/metrics"
	"github.com/iVbk/khmerlink/internal/models"
	"github.com/iVbk/khmerlink/internal/shorturl"
	"go.uber.org/zap"
)

type (
	createLinkJSONRequestPayload struct {
		Slug string `json:"slug"`
		URL  string `json:"url"`
	}

	createLinkJSONResponsePayload struct {
		Slug        models.Slug        `json:"slug"`
		ShortURL    string             `json:"short_url"`
		Destination models.Destination `json:"destination"`
		Success     bool               `json:"success"`
		Message     string             `json:"message"`
	}
)

// CreateLinkJSON handles the JSON variant of link creation.
//
// Request:
//
//	POST /api/links
//	Content-Type: application/json
//	{
//	    "slug": "ផ្ទះ",
//	    "url": "https://example.com/home"
//	}
//
// Response:
//
//	HTTP/1.1 201 Created
//	Content-Type: application/json
//	{
//	    "slug": "ផ្ទះ",
//	    "short_url": "http://0.0.0.0:8080/%E1%9E%95%E1%9F%92%E1%9E%91%E1%9F%87",
//	    "destination": "https://example.com/home",
//	    "success": true,
//	    "message": "OK"
//	}
//
// A taken slug yields 409 Conflict.
func (h *Handler) CreateLinkJSON(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// check content type
	if !isApplicationJSONContentType(r.Header.Get("Content-Type")) {
		h.jsonError(w, "bad content-type: "+r.Header.Get("Content-Type"),
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	// decode request body
	var payload createLinkJSONRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.jsonError(w, "failed to decode request", err, http.StatusBadRequest)
		return
	}

	slug := strings.TrimSpace(payload.Slug)
	destination := strings.TrimSpace(payload.URL)

	// check if URL is provided
	if destination == "" {
		h.jsonError(w, "url field is empty", errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	// check if URL is a valid URL
	if !govalidator.IsURL(destination) {
		h.jsonError(w, "provided url isn't valid: "+destination,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	if slug == "" {
		slug = shorturl.Generate(destination)
	}

	err := h.store.Create(r.Context(), slug, destination)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrAlreadyExists):
		h.jsonError(w, "slug already exists: "+slug, err, http.StatusConflict)
		return
	default:
		h.jsonError(w, "failed to save link", err, http.StatusInternalServerError)
		return
	}

	metrics.LinksCreated.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	h.writeJSON(w, createLinkJSONResponsePayload{
		Slug:        models.Slug(slug),
		ShortURL:    h.shortLink(slug),
		Destination: models.Destination(destination),
		Success:     true,
		Message:     "OK",
	})
}

// jsonError writes an error response in a JSON format.
func (h *Handler) jsonError(w http.ResponseWriter, msg string, err error, code int) {
	if code >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Info(msg, zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	h.writeJSON(w, createLinkJSONResponsePayload{
		Success: false,
		Message: err.Error(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// isApplicationJSONContentType returns true if the content type is application/json.
func isApplicationJSONContentType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i > -1 {
		contentType = contentType[0:i]
	}
	return contentType == "application/json"
}
