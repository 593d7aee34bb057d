package handler

import "net/http"

// ListLinks returns the complete mapping table.
//
// Request:
//
//	GET /api/links
//
// Response:
//
//	HTTP/1.1 200 OK
//	Content-Type: application/json
//	{
//	    "ផ្ទះ": "https://example.com/home",
//	    "abc": "https://example.com/other"
//	}
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.All(r.Context())
	if err != nil {
		h.textError(w, "failed to list links", err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, table)
}
