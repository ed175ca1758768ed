package response

import (
	"encoding/json"
	"net/http"

	"github.com/finsight/finsight-backend/pkg/logger"
)

// WriteJSON writes the payload as-is. Single-record mutations return the bare
// record; list endpoints pass their own wrapper (e.g. {"transactions": [...]}).
func (h *responseHandler) WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode response", "error", err, "status", status)
	}
}
