// Package ledger owns atomic balance mutation and transaction
// recording. It is the only code path that writes to balances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emilhuseynli/cardpay-backend/internal/metrics"
	"github.com/emilhuseynli/cardpay-backend/internal/models"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
	"github.com/emilhuseynli/cardpay-backend/internal/session"
	"github.com/emilhuseynli/cardpay-backend/internal/worker"
)

const (
	// conflictRetries bounds internal retries of serialization aborts.
	// An aborted transaction committed nothing, so re-running it cannot
	// double-apply a transfer.
	conflictRetries = 3
	// readRetries bounds retries of pure reads against a flaky store.
	// Writes are never retried on ErrUnavailable.
	readRetries = 3
)

// Totals is the aggregate view over a user's transaction history.
type Totals struct {
	Count int64        `json:"count"`
	Total models.Money `json:"total"`
}

type Engine struct {
	store    repo.LedgerStore
	accounts repo.Accounts
	txns     repo.Transactions
	audit    repo.AuditLogs
	wp       *worker.Pool
}

func NewEngine(store repo.LedgerStore, accounts repo.Accounts, txns repo.Transactions, audit repo.AuditLogs, wp *worker.Pool) *Engine {
	return &Engine{store: store, accounts: accounts, txns: txns, audit: audit, wp: wp}
}

// Balance returns the current balance of a card. No side effects.
func (e *Engine) Balance(ctx context.Context, cardNumber string) (models.Money, error) {
	var bal models.Money
	err := e.withReadRetry(ctx, func() error {
		acc, err := e.accounts.GetByCard(ctx, cardNumber)
		if err != nil {
			return err
		}
		bal = acc.Balance
		return nil
	})
	if err != nil {
		return 0, mapStoreErr(err)
	}
	return bal, nil
}

// Transfer moves amount from one card to another as a single atomic
// unit: funds check, debit, credit and the transaction record commit
// together or not at all.
func (e *Engine) Transfer(ctx context.Context, actor session.Actor, fromCard, toCard string, amount models.Money) (models.Transaction, error) {
	if amount <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if fromCard == toCard {
		return models.Transaction{}, ErrSelfTransfer
	}

	var rec models.Transaction
	err := e.execWithConflictRetry(ctx, func(tx repo.Tx) error {
		src, err := tx.AccountForUpdate(ctx, fromCard)
		if err != nil {
			return err
		}
		// Destination must exist before anything is written, so a bad
		// recipient never needs a compensating rollback.
		ok, err := tx.AccountExists(ctx, toCard)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDestinationNotFound
		}
		if src.Balance < amount {
			return ErrInsufficientFunds
		}
		if _, err := tx.AddToBalance(ctx, fromCard, -amount); err != nil {
			return err
		}
		if _, err := tx.AddToBalance(ctx, toCard, amount); err != nil {
			return err
		}
		rec, err = tx.AppendTransaction(ctx, models.Transaction{
			Kind:       models.TxnTransfer,
			SourceCard: &fromCard,
			DestCard:   toCard,
			Amount:     amount,
			UserID:     actor.UserID,
			Status:     models.TxnCompleted,
		})
		return err
	})
	if err != nil {
		metrics.TransactionsFailed.Inc()
		return models.Transaction{}, mapStoreErr(err)
	}
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnTransfer)).Inc()
	e.auditAsync(rec, "transfer completed")
	return rec, nil
}

// Deposit credits a card from an external source (top-up). Same
// atomicity contract as Transfer minus the debit and funds check.
func (e *Engine) Deposit(ctx context.Context, actor session.Actor, toCard string, amount models.Money) (models.Transaction, error) {
	if amount <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}

	var rec models.Transaction
	err := e.execWithConflictRetry(ctx, func(tx repo.Tx) error {
		ok, err := tx.AccountExists(ctx, toCard)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDestinationNotFound
		}
		if _, err := tx.AddToBalance(ctx, toCard, amount); err != nil {
			return err
		}
		rec, err = tx.AppendTransaction(ctx, models.Transaction{
			Kind:     models.TxnTopUp,
			DestCard: toCard,
			Amount:   amount,
			UserID:   actor.UserID,
			Status:   models.TxnCompleted,
		})
		return err
	})
	if err != nil {
		metrics.TransactionsFailed.Inc()
		return models.Transaction{}, mapStoreErr(err)
	}
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnTopUp)).Inc()
	e.auditAsync(rec, "top-up completed")
	return rec, nil
}

// Aggregate returns count and sum over every transaction the user
// initiated or was counterparty to.
func (e *Engine) Aggregate(ctx context.Context, userID string) (Totals, error) {
	var t Totals
	err := e.withReadRetry(ctx, func() error {
		count, total, err := e.txns.TotalsByUser(ctx, userID)
		if err != nil {
			return err
		}
		t = Totals{Count: count, Total: total}
		return nil
	})
	if err != nil {
		return Totals{}, mapStoreErr(err)
	}
	return t, nil
}

// History lists a user's transactions, newest first.
func (e *Engine) History(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	var out []models.Transaction
	err := e.withReadRetry(ctx, func() error {
		var err error
		out, err = e.txns.ListByUser(ctx, userID, limit, offset)
		return err
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return out, nil
}

// execWithConflictRetry re-runs the unit on serialization aborts. Any
// other error is surfaced as-is.
func (e *Engine) execWithConflictRetry(ctx context.Context, fn func(repo.Tx) error) error {
	var err error
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		err = e.store.ExecTx(ctx, fn)
		if !errors.Is(err, repo.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		slog.Debug("ledger conflict, retrying", "attempt", attempt+1)
	}
	return err
}

func (e *Engine) withReadRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= readRetries; attempt++ {
		err = fn()
		if !errors.Is(err, repo.ErrUnavailable) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (e *Engine) auditAsync(txn models.Transaction, msg string) {
	if e.audit == nil || e.wp == nil {
		return
	}
	id := txn.ID
	e.wp.Submit(func() {
		err := e.audit.Create(context.Background(), models.AuditLog{
			EntityType: "transaction",
			EntityID:   &id,
			Action:     "completed",
			Details:    map[string]any{"message": msg, "kind": string(txn.Kind)},
		})
		if err != nil {
			slog.Warn("audit write failed", "txn", id, "err", err)
		}
	})
}

// mapStoreErr translates repository sentinels into the engine's
// taxonomy; engine sentinels pass through untouched.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrDestinationNotFound),
		errors.Is(err, ErrSelfTransfer),
		errors.Is(err, ErrInvalidAmount):
		return err
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repo.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repo.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	default:
		return err
	}
}
