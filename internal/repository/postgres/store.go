package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/emilhuseynli/cardpay-backend/internal/models"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ledgerStore struct{ pool *pgxpool.Pool }

// ExecTx runs fn inside one serializable transaction. Serialization
// aborts and deadlocks surface as repo.ErrConflict so the engine can
// re-run the unit.
func (s *ledgerStore) ExecTx(ctx context.Context, fn func(repo.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return mapPgErr(err)
	}
	if err := fn(&pgTx{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return mapPgErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapPgErr(err)
	}
	return nil
}

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) AccountForUpdate(ctx context.Context, cardNumber string) (models.Account, error) {
	var a models.Account
	err := t.tx.QueryRow(ctx,
		`SELECT card_number, owner_user_id, balance, created_at, updated_at
		   FROM accounts
		  WHERE card_number=$1
		    FOR UPDATE`,
		cardNumber,
	).Scan(&a.CardNumber, &a.OwnerUserID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Account{}, mapPgErr(err)
	}
	return a, nil
}

func (t *pgTx) AccountExists(ctx context.Context, cardNumber string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE card_number=$1)`, cardNumber,
	).Scan(&exists)
	if err != nil {
		return false, mapPgErr(err)
	}
	return exists, nil
}

func (t *pgTx) AddToBalance(ctx context.Context, cardNumber string, delta models.Money) (models.Money, error) {
	var bal models.Money
	err := t.tx.QueryRow(ctx,
		`UPDATE accounts
		    SET balance = balance + $2,
		        updated_at = now()
		  WHERE card_number = $1
		  RETURNING balance`,
		cardNumber, delta,
	).Scan(&bal)
	if err != nil {
		return 0, mapPgErr(err)
	}
	return bal, nil
}

func (t *pgTx) AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = newID()
	}
	err := t.tx.QueryRow(ctx,
		`INSERT INTO transactions (id, kind, source_card, dest_card, amount, user_id, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at`,
		txn.ID, txn.Kind, txn.SourceCard, txn.DestCard, txn.Amount, txn.UserID, txn.Status,
	).Scan(&txn.CreatedAt)
	if err != nil {
		return models.Transaction{}, mapPgErr(err)
	}
	return txn, nil
}

// mapPgErr collapses driver errors into the repository sentinels.
func mapPgErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", repo.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization failure, deadlock
			return fmt.Errorf("%w: %s", repo.ErrConflict, pgErr.Code)
		case "23505":
			if pgErr.ConstraintName == "users_email_key" {
				return fmt.Errorf("%w: %v", repo.ErrDuplicateEmail, err)
			}
			return fmt.Errorf("%w: %v", repo.ErrConflict, err)
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" { // connection errors
			return fmt.Errorf("%w: %v", repo.ErrUnavailable, err)
		}
		return err
	}
	return err
}
