package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"starcast/internal/bootstrap/logging"
	domainhoroscope "starcast/internal/domain/horoscope"
	"starcast/internal/errs"
	"starcast/internal/ports"
	horoscopeuc "starcast/internal/usecase/horoscope"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeRaw serves an already-marshaled payload verbatim so cache hits stay
// byte-identical to the stored entry.
func writeRaw(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domainhoroscope.IsValidation(err), errors.Is(err, horoscopeuc.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ports.ErrDuplicateSubscriber):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logging.Error(r.Context(), "request failed", slog.Any("err", errs.Loggable(err)))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
