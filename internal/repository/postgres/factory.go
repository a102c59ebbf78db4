package postgres

import (
	"github.com/google/uuid"

	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users        repo.Users
	Accounts     repo.Accounts
	Transactions repo.Transactions
	AuditLogs    repo.AuditLogs
	Ledger       repo.LedgerStore
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        &usersRepo{pool},
		Accounts:     &accountsRepo{pool},
		Transactions: &transactionsRepo{pool},
		AuditLogs:    &auditLogsRepo{pool},
		Ledger:       &ledgerStore{pool},
	}
}

func newID() string { return uuid.NewString() }
