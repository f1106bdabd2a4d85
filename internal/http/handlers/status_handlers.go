package handlers

import "net/http"

// SystemStatus handles GET /api/system-status. The report always comes back
// 200 with every probe either live or on its documented fallback, so the
// dashboard never breaks when a dependency is down.
func (h *Handlers) SystemStatus(w http.ResponseWriter, r *http.Request) {
	report := h.status.Report(r.Context())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    report,
	})
}
