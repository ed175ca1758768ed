package handlers

import (
	"net/http"
	"strconv"

	"github.com/finsight/finsight-backend/internal/errs"
)

// queryInt parses a required positive integer query parameter.
func queryInt(r *http.Request, name, code string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errs.NewValidationError(code, name+" is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errs.NewValidationError(code, name+" must be a positive integer")
	}
	return v, nil
}

// queryIntDefault parses an optional integer query parameter, falling back
// to def when absent or malformed.
func queryIntDefault(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
