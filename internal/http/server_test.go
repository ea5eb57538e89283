package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tracker, err := services.NewTrackerService(context.Background(), storage.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("tracker: %v", err)
	}
	srv := NewServer(":0", tracker, Options{})
	t.Cleanup(func() {
		srv.cacheManager.Stop()
		srv.rateLimiter.stop()
	})
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postTransaction(t *testing.T, srv *Server, typ, name, amount, date, category string) core.Transaction {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"name":%q,"amount":%q,"date":%q,"category":%q}`,
		typ, name, amount, date, category)
	rr := do(t, srv, http.MethodPost, "/transactions", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create %s: expected 201, got %d: %s", name, rr.Code, rr.Body.String())
	}
	var tx core.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode created transaction: %v", err)
	}
	return tx
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	// Wrong method on the collection.
	rr := do(t, srv, http.MethodDelete, "/transactions", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Malformed body.
	rr = do(t, srv, http.MethodPost, "/transactions", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	cases := []struct {
		name, body string
	}{
		{"bad amount", `{"type":"expense","name":"x","amount":"abc","date":"2024-01-03","category":"Food"}`},
		{"zero amount", `{"type":"expense","name":"x","amount":"0","date":"2024-01-03","category":"Food"}`},
		{"bad type", `{"type":"transfer","name":"x","amount":"1.00","date":"2024-01-03","category":"Food"}`},
		{"bad date", `{"type":"expense","name":"x","amount":"1.00","date":"03-01-2024","category":"Food"}`},
		{"empty name", `{"type":"expense","name":"  ","amount":"1.00","date":"2024-01-03","category":"Food"}`},
		{"empty category", `{"type":"expense","name":"x","amount":"1.00","date":"2024-01-03","category":""}`},
	}
	for _, tc := range cases {
		rr := do(t, srv, http.MethodPost, "/transactions", tc.body)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d: %s", tc.name, rr.Code, rr.Body.String())
		}
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := postTransaction(t, srv, "income", "Salary", "1000", "2024-01-02", "Work")
	if created.ID <= 0 || created.Amount.Cents != 100000 {
		t.Fatalf("unexpected created transaction %+v", created)
	}
	postTransaction(t, srv, "expense", "Groceries", "40.00", "2024-01-03", "Food")

	// Summary reflects both.
	rr := do(t, srv, http.MethodGet, "/summary", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status=%d", rr.Code)
	}
	var totals services.Totals
	if err := json.Unmarshal(rr.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if totals.Balance.Cents != 96000 || totals.Income.Cents != 100000 || totals.Expenses.Cents != 4000 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	// Edit the income down.
	edit := `{"type":"income","name":"Salary","amount":"900","date":"2024-01-02","category":"Work"}`
	rr = do(t, srv, http.MethodPost, fmt.Sprintf("/transactions/%d", created.ID), edit)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("edit: expected 204, got %d: %s", rr.Code, rr.Body.String())
	}
	rr = do(t, srv, http.MethodGet, "/summary", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if totals.Balance.Cents != 86000 {
		t.Fatalf("expected balance 86000 after edit, got %d", totals.Balance.Cents)
	}

	// Delete it.
	rr = do(t, srv, http.MethodDelete, fmt.Sprintf("/transactions/%d", created.ID), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}
	rr = do(t, srv, http.MethodDelete, fmt.Sprintf("/transactions/%d", created.ID), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodDelete, "/transactions/not-a-number", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", rr.Code)
	}
}

func TestListTransactionsFiltering(t *testing.T) {
	srv := newTestServer(t)
	postTransaction(t, srv, "income", "Salary", "1000", "2024-01-02", "Work")
	postTransaction(t, srv, "expense", "Groceries", "40.00", "2024-01-03", "Food")
	postTransaction(t, srv, "expense", "Coffee", "3.50", "2024-01-05", "Food")

	cases := []struct {
		query string
		count int
	}{
		{"", 3},
		{"?category=Food", 2},
		{"?type=income", 1},
		{"?search=coff", 1},
		{"?from=2024-01-03&to=2024-01-03", 1},
		{"?category=Food&search=salary", 0},
	}
	for _, tc := range cases {
		rr := do(t, srv, http.MethodGet, "/transactions"+tc.query, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%q status=%d", tc.query, rr.Code)
		}
		var resp transactionListResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%q decode: %v", tc.query, err)
		}
		if resp.Count != tc.count {
			t.Fatalf("%q: expected %d, got %d", tc.query, tc.count, resp.Count)
		}
	}

	// Bad filter values are rejected, not silently ignored.
	for _, q := range []string{"?type=transfer", "?from=01-2024"} {
		rr := do(t, srv, http.MethodGet, "/transactions"+q, "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", q, rr.Code)
		}
	}
}

func TestReports(t *testing.T) {
	srv := newTestServer(t)
	postTransaction(t, srv, "income", "Salary", "1000", "2024-01-02", "Work")
	postTransaction(t, srv, "expense", "Groceries", "40.00", "2024-01-03", "Food")

	rr := do(t, srv, http.MethodGet, "/reports?mode=weekly&from=2024-01-01&to=2024-01-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("report status=%d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Mode     string `json:"mode"`
		Degraded bool   `json:"degraded"`
		Summary  struct {
			NetChange core.Money `json:"net_change"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if resp.Mode != "weekly" || resp.Summary.NetChange.Cents != 96000 {
		t.Fatalf("unexpected report %+v", resp)
	}
	// No renderer configured: served, but flagged degraded.
	if !resp.Degraded {
		t.Fatalf("expected degraded report without renderer")
	}

	// Error mapping.
	cases := []struct {
		query string
		code  int
	}{
		{"?mode=yearly&from=2024-01-01&to=2024-01-31", http.StatusBadRequest},
		{"?mode=weekly&from=2024-02-01&to=2024-01-01", http.StatusUnprocessableEntity},
		{"?mode=weekly&from=2030-01-01&to=2030-01-31", http.StatusNotFound},
		{"?mode=weekly&from=bad&to=2024-01-31", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := do(t, srv, http.MethodGet, "/reports"+tc.query, "")
		if rr.Code != tc.code {
			t.Fatalf("%q: expected %d, got %d", tc.query, tc.code, rr.Code)
		}
	}
}

func TestReportCachePurgedOnMutation(t *testing.T) {
	srv := newTestServer(t)
	postTransaction(t, srv, "expense", "Groceries", "40.00", "2024-01-03", "Food")

	const query = "/reports?mode=monthly&from=2024-01-01&to=2024-01-31"
	count := func() int {
		rr := do(t, srv, http.MethodGet, query, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("report status=%d", rr.Code)
		}
		var resp struct {
			Summary struct {
				TransactionCount int `json:"transaction_count"`
			} `json:"summary"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode report: %v", err)
		}
		return resp.Summary.TransactionCount
	}

	if got := count(); got != 1 {
		t.Fatalf("expected 1 transaction in report, got %d", got)
	}
	postTransaction(t, srv, "expense", "Coffee", "3.50", "2024-01-05", "Food")
	if got := count(); got != 2 {
		t.Fatalf("expected purged cache to pick up the new transaction, got %d", got)
	}
}
