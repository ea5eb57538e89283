// Package services orchestrates the ledger, the persistence adapter,
// and the renderer behind one façade the HTTP layer talks to.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/filter"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
	"fintrack/internal/render"
	"fintrack/internal/report"
	"fintrack/internal/storage"
)

// Totals is the dashboard view of the running aggregates.
type Totals struct {
	Balance  core.Money `json:"balance"`
	Income   core.Money `json:"income"`
	Expenses core.Money `json:"expenses"`
}

// TrackerService owns a single ledger instance for the session. One
// logical user drives it, but the HTTP server is concurrent, so a
// mutex serializes access; each operation runs to completion before
// the next is accepted.
type TrackerService struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	store    storage.Store
	renderer render.Renderer
	logger   *applog.Logger
}

// NewTrackerService loads the saved ledger state (or starts empty) and
// wires the store and renderer. A nil renderer means degraded mode;
// reports are still generated and served.
func NewTrackerService(ctx context.Context, store storage.Store, renderer render.Renderer, logger *applog.Logger) (*TrackerService, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentLedger)

	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger state: %w", err)
	}

	var l *ledger.Ledger
	if state == nil {
		l = ledger.New()
		logger.InfoContext(ctx, "Starting with empty ledger")
	} else {
		l = ledger.NewFromState(*state)
		logger.InfoContext(ctx, "Ledger state loaded",
			"transactions", l.Len(),
			applog.FieldAmountCents, l.Balance().Cents)
	}

	return &TrackerService{
		ledger:   l,
		store:    store,
		renderer: renderer,
		logger:   logger,
	}, nil
}

// AddTransaction records a validated transaction and persists the new
// state. Validation of raw input happens in the HTTP layer before this
// is called.
func (s *TrackerService) AddTransaction(ctx context.Context, typ core.TransactionType, name string, amount core.Money, date core.Date, category string) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ledger.Add(typ, name, amount, date, category)
	s.persist(ctx)

	fields := applog.NewFields().
		WithTransaction(t.ID, string(t.Type), t.Name, t.Amount.Cents, t.Category).
		WithOperation(applog.OpAdd)
	s.logger.InfoContext(ctx, "Transaction added", fields.ToSlice()...)
	return t
}

// EditTransaction replaces a transaction's fields. A missing id is a
// no-op that surfaces ledger.ErrNotFound; nothing is persisted then.
func (s *TrackerService) EditTransaction(ctx context.Context, id int64, f ledger.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Edit(id, f); err != nil {
		return err
	}
	s.persist(ctx)

	fields := applog.NewFields().
		WithTransaction(id, string(f.Type), f.Name, f.Amount.Cents, f.Category).
		WithOperation(applog.OpEdit)
	s.logger.InfoContext(ctx, "Transaction edited", fields.ToSlice()...)
	return nil
}

// DeleteTransaction removes a transaction. A missing id is a no-op
// that surfaces ledger.ErrNotFound.
func (s *TrackerService) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Delete(id); err != nil {
		return err
	}
	s.persist(ctx)

	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldTransactionID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}

// ListTransactions returns the transactions matching spec under the
// list-view presentation policy.
func (s *TrackerService) ListTransactions(_ context.Context, spec filter.Spec) []core.Transaction {
	return filter.Visible(s.snapshot().Transactions, spec)
}

// Totals returns the running aggregates.
func (s *TrackerService) Totals(_ context.Context) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Totals{
		Balance:  s.ledger.Balance(),
		Income:   s.ledger.Income(),
		Expenses: s.ledger.Expenses(),
	}
}

// GenerateReport aggregates the ledger over [from, to] under mode and
// hands the result to the renderer. degraded reports whether chart
// rendering was unavailable; the report itself is valid either way.
func (s *TrackerService) GenerateReport(ctx context.Context, from, to core.Date, mode report.Mode) (r *report.Report, degraded bool, err error) {
	snap := s.snapshot()
	r, err = report.Generate(snap.Transactions, from, to, mode)
	if err != nil {
		return nil, false, err
	}

	if s.renderer == nil {
		return r, true, nil
	}
	if renderErr := s.renderer.Render(ctx, r); renderErr != nil {
		fields := applog.NewFields().
			WithReport(mode.String(), from.String(), to.String()).
			WithError(renderErr).
			WithOperation(applog.OpRender)
		s.logger.WarnContext(ctx, "Chart rendering unavailable, serving report without chart", fields.ToSlice()...)
		return r, true, nil
	}
	return r, false, nil
}

// Snapshot exposes the full ledger state, used by the readiness probe
// and by tests.
func (s *TrackerService) Snapshot(_ context.Context) ledger.State {
	return s.snapshot()
}

func (s *TrackerService) snapshot() ledger.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// persist saves the current state. The save is synchronous but
// fire-and-forget towards the caller: a failed save is logged and the
// in-memory ledger stays authoritative, like the original tracker's
// local-storage write.
func (s *TrackerService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		fields := applog.NewFields().WithError(err).WithOperation(applog.OpSave)
		s.logger.ErrorContext(ctx, "Failed to persist ledger state", fields.ToSlice()...)
	}
}

// Close releases the store.
func (s *TrackerService) Close() error {
	var errs []error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
