package postgres

import (
	"context"

	"github.com/emilhuseynli/cardpay-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var txn models.Transaction
	err := r.pool.QueryRow(ctx,
		`SELECT id, kind, source_card, dest_card, amount, user_id, status, created_at
		   FROM transactions WHERE id=$1`,
		id,
	).Scan(&txn.ID, &txn.Kind, &txn.SourceCard, &txn.DestCard, &txn.Amount, &txn.UserID, &txn.Status, &txn.CreatedAt)
	if err != nil {
		return models.Transaction{}, mapPgErr(err)
	}
	return txn, nil
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.kind, t.source_card, t.dest_card, t.amount, t.user_id, t.status, t.created_at
		   FROM transactions t
		  WHERE t.user_id = $1
		     OR t.source_card IN (SELECT card_number FROM accounts WHERE owner_user_id=$1)
		     OR t.dest_card   IN (SELECT card_number FROM accounts WHERE owner_user_id=$1)
		  ORDER BY t.created_at DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.ID, &txn.Kind, &txn.SourceCard, &txn.DestCard, &txn.Amount, &txn.UserID, &txn.Status, &txn.CreatedAt); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, txn)
	}
	return out, mapPgErr(rows.Err())
}

// TotalsByUser aggregates over the single transactions table; top-ups
// and transfers are distinguished only by kind, never by table.
func (r *transactionsRepo) TotalsByUser(ctx context.Context, userID string) (int64, models.Money, error) {
	var count int64
	var total models.Money
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)
		   FROM transactions t
		  WHERE t.user_id = $1
		     OR t.source_card IN (SELECT card_number FROM accounts WHERE owner_user_id=$1)
		     OR t.dest_card   IN (SELECT card_number FROM accounts WHERE owner_user_id=$1)`,
		userID,
	).Scan(&count, &total)
	if err != nil {
		return 0, 0, mapPgErr(err)
	}
	return count, total, nil
}
