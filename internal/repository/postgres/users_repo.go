package postgres

import (
	"context"

	"github.com/emilhuseynli/cardpay-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) Create(ctx context.Context, fullName, email, passwordHash string) (models.User, error) {
	id := newID()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, full_name, email, password_hash) VALUES($1,$2,$3,$4)`,
		id, fullName, email, passwordHash,
	)
	if err != nil {
		return models.User{}, mapPgErr(err)
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, created_at, updated_at FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, mapPgErr(err)
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, created_at, updated_at FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, mapPgErr(err)
	}
	return u, nil
}
