package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
)

// transactionRequest is the JSON body for create and edit. Amount is a
// decimal string so clients never round in floating point.
type transactionRequest struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

type transactionListResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Count        int                `json:"count"`
}

// parse validates the request body into ledger fields.
func (req transactionRequest) parse() (ledger.Fields, error) {
	typ, err := core.ParseTransactionType(req.Type)
	if err != nil {
		return ledger.Fields{}, err
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return ledger.Fields{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return ledger.Fields{}, err
	}

	f := ledger.Fields{
		Type:     typ,
		Name:     sanitizeInput(req.Name),
		Amount:   amount,
		Date:     date,
		Category: sanitizeInput(req.Category),
	}
	t := core.Transaction{
		Type:     f.Type,
		Name:     f.Name,
		Amount:   f.Amount,
		Date:     f.Date,
		Category: f.Category,
	}
	if err := t.Validate(); err != nil {
		return ledger.Fields{}, err
	}
	return f, nil
}

// handleTransactions serves GET (list) and POST (create) on
// /transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter: "+err.Error())
		return
	}

	ts := s.tracker.ListTransactions(r.Context(), spec)
	if ts == nil {
		ts = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Transactions: ts, Count: len(ts)})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t := s.tracker.AddTransaction(r.Context(), f.Type, f.Name, f.Amount, f.Date, f.Category)
	s.purgeReportCache()
	writeJSON(w, http.StatusCreated, t)
}

// handleTransactionByID serves POST (edit) and DELETE on
// /transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/transactions/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut:
		s.handleEditTransaction(w, r, id)
	case http.MethodDelete:
		s.handleDeleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "POST, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.tracker.EditTransaction(r.Context(), id, f); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Edit transaction failed",
			applog.FieldTransactionID, id, applog.FieldError, err)
		writeDomainError(w, err)
		return
	}
	s.purgeReportCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.tracker.DeleteTransaction(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Delete transaction failed",
			applog.FieldTransactionID, id, applog.FieldError, err)
		writeDomainError(w, err)
		return
	}
	s.purgeReportCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Totals(r.Context()))
}
