package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/filter"
	"fintrack/internal/ledger"
	"fintrack/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps sentinel errors to HTTP statuses: missing
// resources and empty report ranges are 404, an inverted range is 422,
// everything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, report.ErrNoData):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, report.ErrInvalidRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}

// parseFilterSpec builds a filter from query parameters. Empty params
// leave the corresponding predicate off.
func parseFilterSpec(r *http.Request) (filter.Spec, error) {
	q := r.URL.Query()
	spec := filter.Spec{
		SearchTerm: sanitizeInput(q.Get("search")),
		Category:   sanitizeInput(q.Get("category")),
	}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		typ, err := core.ParseTransactionType(v)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.Type = typ
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.To = d
	}
	return spec, nil
}
