package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"igreja/internal/amqp"
	"igreja/internal/cache"
	"igreja/internal/core"
	applog "igreja/internal/log"
	"igreja/internal/metrics"
	"igreja/internal/sheets"
)

// Outcomes reported to metrics for each handled message.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
)

// EntrySource is the read side of the store the worker needs.
type EntrySource interface {
	GetFinancialEntry(ctx context.Context, id int64) (core.FinancialEntry, error)
	ListFinancialEntries(ctx context.Context) ([]core.FinancialEntry, error)
}

// Consumer delivers change messages until its context ends.
type Consumer interface {
	Consume(ctx context.Context, handler amqp.Handler) error
}

// LedgerSync mirrors financial entries into a ledger sheet as change
// messages arrive.
type LedgerSync struct {
	source  EntrySource
	ledger  sheets.Ledger
	seen    *cache.LRUCache[struct{}]
	metrics *metrics.Metrics
}

// NewLedgerSync remembers handled message ids for dedupeTTL.
func NewLedgerSync(source EntrySource, ledger sheets.Ledger, dedupeTTL time.Duration, m *metrics.Metrics) *LedgerSync {
	if dedupeTTL <= 0 {
		dedupeTTL = 10 * time.Minute
	}
	return &LedgerSync{
		source:  source,
		ledger:  ledger,
		seen:    cache.NewLRUCache[struct{}](10000, dedupeTTL),
		metrics: m,
	}
}

// HandleChange applies one change message. A returned error makes the
// consumer requeue the message; everything else is acknowledged.
func (w *LedgerSync) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	if msg.Entity != core.EntityFinancialEntry {
		w.metrics.LedgerSynced(msg.Action, OutcomeIgnored)
		return nil
	}

	if msg.MessageID != "" && !w.seen.SetIfAbsent(msg.MessageID, struct{}{}) {
		slog.InfoContext(ctx, "Skipping duplicate change message",
			applog.FieldMessageID, msg.MessageID, applog.FieldRecordID, msg.ID)
		w.metrics.LedgerSynced(msg.Action, OutcomeDuplicate)
		return nil
	}

	outcome, err := w.apply(ctx, msg)
	if err != nil {
		// Let the redelivery try again.
		w.seen.Delete(msg.MessageID)
		w.metrics.LedgerSynced(msg.Action, OutcomeError)
		return err
	}
	w.metrics.LedgerSynced(msg.Action, outcome)
	return nil
}

func (w *LedgerSync) apply(ctx context.Context, msg *amqp.ChangeMessage) (string, error) {
	switch msg.Action {
	case amqp.ActionCreated:
		entry, err := w.source.GetFinancialEntry(ctx, msg.ID)
		if errors.Is(err, core.ErrNotFound) {
			slog.InfoContext(ctx, "Entry deleted before it was synced", applog.FieldRecordID, msg.ID)
			return OutcomeSkipped, nil
		}
		if err != nil {
			return "", fmt.Errorf("load entry %d: %w", msg.ID, err)
		}
		present, err := w.ledgerHas(ctx, entry.ID)
		if err != nil {
			return "", err
		}
		if present {
			slog.InfoContext(ctx, "Entry already in ledger", applog.FieldRecordID, entry.ID)
			return OutcomeSkipped, nil
		}
		ref, err := w.ledger.AppendEntry(ctx, entry)
		if err != nil {
			return "", fmt.Errorf("append entry %d: %w", msg.ID, err)
		}
		slog.InfoContext(ctx, "Synced entry to ledger",
			applog.FieldOperation, applog.OpSync,
			applog.FieldAction, msg.Action,
			applog.FieldRecordID, entry.ID,
			applog.FieldEntryKind, entry.Kind,
			applog.FieldCategory, entry.Category,
			applog.FieldAmountCents, entry.Amount.Cents,
			"ledger_ref", ref)
		return OutcomeOK, nil

	case amqp.ActionDeleted:
		err := w.ledger.DeleteEntry(ctx, msg.ID)
		if errors.Is(err, sheets.ErrRowNotFound) {
			slog.InfoContext(ctx, "Entry not present in ledger", applog.FieldRecordID, msg.ID)
			return OutcomeSkipped, nil
		}
		if err != nil {
			return "", fmt.Errorf("delete entry %d: %w", msg.ID, err)
		}
		slog.InfoContext(ctx, "Removed entry from ledger",
			applog.FieldOperation, applog.OpSync,
			applog.FieldAction, msg.Action,
			applog.FieldRecordID, msg.ID)
		return OutcomeOK, nil

	default:
		return OutcomeIgnored, nil
	}
}

// ledgerHas reports whether the ledger already holds a row for id. A startup
// reconcile may have appended the entry before its created message arrives.
func (w *LedgerSync) ledgerHas(ctx context.Context, id int64) (bool, error) {
	rows, err := w.ledger.ListEntries(ctx)
	if err != nil {
		return false, fmt.Errorf("list ledger entries: %w", err)
	}
	for _, r := range rows {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Reconcile brings the ledger in line with the store: missing entries are
// appended and rows for entries that no longer exist are removed. It covers
// messages lost while the worker was down.
func (w *LedgerSync) Reconcile(ctx context.Context) (added, removed int, err error) {
	entries, err := w.source.ListFinancialEntries(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list store entries: %w", err)
	}
	rows, err := w.ledger.ListEntries(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list ledger entries: %w", err)
	}

	inLedger := make(map[int64]bool, len(rows))
	for _, r := range rows {
		inLedger[r.ID] = true
	}
	inStore := make(map[int64]bool, len(entries))
	for _, e := range entries {
		inStore[e.ID] = true
		if inLedger[e.ID] {
			continue
		}
		if _, err := w.ledger.AppendEntry(ctx, e); err != nil {
			return added, removed, fmt.Errorf("append entry %d: %w", e.ID, err)
		}
		added++
	}
	for id := range inLedger {
		if inStore[id] {
			continue
		}
		if err := w.ledger.DeleteEntry(ctx, id); err != nil && !errors.Is(err, sheets.ErrRowNotFound) {
			return added, removed, fmt.Errorf("delete entry %d: %w", id, err)
		}
		removed++
	}

	slog.InfoContext(ctx, "Ledger reconciled", applog.FieldOperation, applog.OpSync, "added", added, "removed", removed, "entries", len(entries))
	return added, removed, nil
}

// Run reconciles once, then consumes messages and sweeps the dedupe cache
// until ctx ends. Cancellation is a clean stop.
func (w *LedgerSync) Run(ctx context.Context, consumer Consumer, sweepEvery time.Duration) error {
	if _, _, err := w.Reconcile(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup reconcile failed", applog.FieldOperation, applog.OpStartup, applog.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Consume(gctx, w.HandleChange)
	})
	g.Go(func() error {
		return cache.NewManager(w.seen).Run(gctx, sweepEvery)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
