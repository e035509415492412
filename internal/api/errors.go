package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goalgrid/goalgrid/internal/store"
)

// errInvalidRequest marks client errors (missing or malformed parameters).
var errInvalidRequest = errors.New("invalid request")

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto HTTP status codes:
// NotFound is 404, invalid input is 400, everything else (store
// unavailability included) is a 500. Generation failures never reach here;
// the service layer recovers them.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errInvalidRequest):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
