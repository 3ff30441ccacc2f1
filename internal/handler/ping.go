package handler

import (
	"net/http"
)

// Ping checks the health of the storage.
//
//	GET /ping
//
//	HTTP/1.1 200 OK
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.textError(w, r, "storage is unavailable",
			err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
