package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/page"
)

// Controller is the page surface the API drives.
type Controller interface {
	View() page.View
	Toggle(index int)
	Refetch()
}

// APIHandler serves the page as JSON.
//
//	GET  /api/page           current view
//	POST /api/toggle?index=N toggle item N, returns the new view
//	POST /api/refetch        reload the catalog, returns the Pending view
type APIHandler struct {
	ctrl   Controller
	logger *log.Logger
}

func NewAPIHandler(ctrl Controller, logger *log.Logger) *APIHandler {
	return &APIHandler{ctrl: ctrl, logger: logger}
}

func (h *APIHandler) Routes() []string {
	return []string{"/api/page", "/api/toggle", "/api/refetch"}
}

func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/page":
		if !allow(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, h.ctrl.View())

	case "/api/toggle":
		if !allow(w, r, http.MethodPost) {
			return
		}
		index, err := strconv.Atoi(r.URL.Query().Get("index"))
		if err != nil || index < 0 {
			writeError(w, http.StatusBadRequest, "index must be a non-negative integer")
			return
		}
		h.ctrl.Toggle(index)
		h.logger.Debug("toggled", "index", index)
		writeJSON(w, http.StatusOK, h.ctrl.View())

	case "/api/refetch":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.ctrl.Refetch()
		writeJSON(w, http.StatusAccepted, h.ctrl.View())

	default:
		http.NotFound(w, r)
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
