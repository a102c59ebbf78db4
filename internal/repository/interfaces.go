package repository

import (
	"context"
	"errors"

	"github.com/emilhuseynli/cardpay-backend/internal/models"
)

// Storage-level failures. Implementations translate driver errors into
// these so callers never match on driver types.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrConflict       = errors.New("write conflict")
	ErrUnavailable    = errors.New("storage unavailable")
)

type Users interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Accounts interface {
	Create(ctx context.Context, cardNumber, ownerUserID string) (models.Account, error)
	GetByCard(ctx context.Context, cardNumber string) (models.Account, error)
	GetByOwner(ctx context.Context, userID string) (models.Account, error)
}

type Transactions interface {
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)
	// TotalsByUser counts and sums every transaction where the user is
	// the initiator or owns either card.
	TotalsByUser(ctx context.Context, userID string) (int64, models.Money, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Tx is the set of operations available inside one atomic unit. A
// returned error from any of them aborts the whole unit.
type Tx interface {
	// AccountForUpdate reads an account and holds it locked until the
	// enclosing ExecTx returns.
	AccountForUpdate(ctx context.Context, cardNumber string) (models.Account, error)
	AccountExists(ctx context.Context, cardNumber string) (bool, error)
	// AddToBalance applies a signed delta and returns the new balance.
	AddToBalance(ctx context.Context, cardNumber string, delta models.Money) (models.Money, error)
	AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error)
}

// LedgerStore runs fn inside a single transaction: the writes fn makes
// commit together or not at all.
type LedgerStore interface {
	ExecTx(ctx context.Context, fn func(Tx) error) error
}
