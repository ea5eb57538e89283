package http

import (
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

type reportResponse struct {
	Mode string `json:"mode"`
	*report.Report
	Degraded bool `json:"degraded"`
}

// handleReports serves GET /reports?mode=&from=&to=. Reports are
// cached until the next mutation; the renderer is only invoked on a
// cache miss.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	mode, err := report.ParseMode(q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, err := core.ParseDate(strings.TrimSpace(q.Get("from")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := core.ParseDate(strings.TrimSpace(q.Get("to")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		return
	}

	key := reportCacheKey(mode, from, to)
	if cached, found := s.reportCache.Get(key); found {
		slog.DebugContext(r.Context(), "Report cache hit", "mode", mode.String(), "from", from.String(), "to", to.String())
		writeJSON(w, http.StatusOK, reportResponse{Mode: mode.String(), Report: cached.report, Degraded: cached.degraded})
		return
	}

	rep, degraded, err := s.tracker.GenerateReport(r.Context(), from, to, mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.reportCache.Set(key, cachedReport{report: rep, degraded: degraded})
	writeJSON(w, http.StatusOK, reportResponse{Mode: mode.String(), Report: rep, Degraded: degraded})
}

func reportCacheKey(mode report.Mode, from, to core.Date) string {
	return mode.String() + "|" + from.String() + "|" + to.String()
}
