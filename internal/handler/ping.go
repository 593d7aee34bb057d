package handler

import (
	"errors"
	"net/http"

	"github.com/iVbk/khmerlink/internal/errs"
)

// PingDB checks the status of the storage connection.
//
// Request:
//
//	GET /ping
func (h *Handler) PingDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		if errors.Is(err, errs.ErrDBNotConnected) {
			h.textError(w, "DB not connected", err, http.StatusInternalServerError)
			return
		}
		h.textError(w, "connection error", err, http.StatusInternalServerError)
		return
	}
}
