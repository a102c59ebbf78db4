package postgres

import (
	"context"

	"github.com/emilhuseynli/cardpay-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountsRepo struct{ pool *pgxpool.Pool }

func (r *accountsRepo) Create(ctx context.Context, cardNumber, ownerUserID string) (models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts(card_number, owner_user_id, balance)
		 VALUES($1, $2, 0)
		 RETURNING card_number, owner_user_id, balance, created_at, updated_at`,
		cardNumber, ownerUserID,
	).Scan(&a.CardNumber, &a.OwnerUserID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Account{}, mapPgErr(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByCard(ctx context.Context, cardNumber string) (models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx,
		`SELECT card_number, owner_user_id, balance, created_at, updated_at
		   FROM accounts WHERE card_number=$1`,
		cardNumber,
	).Scan(&a.CardNumber, &a.OwnerUserID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Account{}, mapPgErr(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByOwner(ctx context.Context, userID string) (models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx,
		`SELECT card_number, owner_user_id, balance, created_at, updated_at
		   FROM accounts WHERE owner_user_id=$1
		  ORDER BY created_at ASC LIMIT 1`,
		userID,
	).Scan(&a.CardNumber, &a.OwnerUserID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Account{}, mapPgErr(err)
	}
	return a, nil
}
