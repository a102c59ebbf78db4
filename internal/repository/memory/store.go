// Package memory is an in-process Store implementation. A single mutex
// serializes every atomic unit, which gives the same per-account
// ordering guarantees as the postgres row locks.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emilhuseynli/cardpay-backend/internal/models"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
)

type state struct {
	mu       sync.Mutex
	users    map[string]models.User    // by id
	emails   map[string]string         // email -> user id
	accounts map[string]models.Account // by card number
	txns     []models.Transaction
	audits   []models.AuditLog

	// failReads forces reads to fail with ErrUnavailable, for retry tests.
	failReads bool
}

// Repositories bundles every interface over one shared state, shaped
// like the postgres factory so callers can swap the two.
type Repositories struct {
	Users        repo.Users
	Accounts     repo.Accounts
	Transactions repo.Transactions
	AuditLogs    repo.AuditLogs
	Ledger       repo.LedgerStore

	st *state
}

func NewRepositories() Repositories {
	st := &state{
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		accounts: make(map[string]models.Account),
	}
	return Repositories{
		Users:        &usersRepo{st},
		Accounts:     &accountsRepo{st},
		Transactions: &transactionsRepo{st},
		AuditLogs:    &auditLogsRepo{st},
		Ledger:       &ledgerStore{st},
		st:           st,
	}
}

// SetFailReads toggles simulated storage outages for reads.
func (r Repositories) SetFailReads(fail bool) {
	r.st.mu.Lock()
	r.st.failReads = fail
	r.st.mu.Unlock()
}

// AuditCount reports how many audit entries have been written.
func (r Repositories) AuditCount() int {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return len(r.st.audits)
}

// ---------------- users ----------------

type usersRepo struct{ st *state }

func (r *usersRepo) Create(ctx context.Context, fullName, email, passwordHash string) (models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.emails[email]; ok {
		return models.User{}, repo.ErrDuplicateEmail
	}
	now := time.Now()
	u := models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.st.users[u.ID] = u
	r.st.emails[email] = u.ID
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	id, ok := r.st.emails[email]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return r.st.users[id], nil
}

// ---------------- accounts ----------------

type accountsRepo struct{ st *state }

func (r *accountsRepo) Create(ctx context.Context, cardNumber, ownerUserID string) (models.Account, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.accounts[cardNumber]; ok {
		return models.Account{}, repo.ErrConflict
	}
	now := time.Now()
	a := models.Account{CardNumber: cardNumber, OwnerUserID: ownerUserID, CreatedAt: now, UpdatedAt: now}
	r.st.accounts[cardNumber] = a
	return a, nil
}

func (r *accountsRepo) GetByCard(ctx context.Context, cardNumber string) (models.Account, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.failReads {
		return models.Account{}, repo.ErrUnavailable
	}
	a, ok := r.st.accounts[cardNumber]
	if !ok {
		return models.Account{}, repo.ErrNotFound
	}
	return a, nil
}

func (r *accountsRepo) GetByOwner(ctx context.Context, userID string) (models.Account, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var found []models.Account
	for _, a := range r.st.accounts {
		if a.OwnerUserID == userID {
			found = append(found, a)
		}
	}
	if len(found) == 0 {
		return models.Account{}, repo.ErrNotFound
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.Before(found[j].CreatedAt) })
	return found[0], nil
}

// ---------------- transactions ----------------

type transactionsRepo struct{ st *state }

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, txn := range r.st.txns {
		if txn.ID == id {
			return txn, nil
		}
	}
	return models.Transaction{}, repo.ErrNotFound
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	matched := r.st.userTxnsLocked(userID)
	// newest first; ties keep append order reversed
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *transactionsRepo) TotalsByUser(ctx context.Context, userID string) (int64, models.Money, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.failReads {
		return 0, 0, repo.ErrUnavailable
	}
	var count int64
	var total models.Money
	for _, txn := range r.st.userTxnsLocked(userID) {
		count++
		total += txn.Amount
	}
	return count, total, nil
}

// userTxnsLocked matches transactions the user initiated or where one
// of the user's cards is an endpoint. Caller holds st.mu.
func (st *state) userTxnsLocked(userID string) []models.Transaction {
	cards := make(map[string]struct{})
	for card, a := range st.accounts {
		if a.OwnerUserID == userID {
			cards[card] = struct{}{}
		}
	}
	var out []models.Transaction
	for _, txn := range st.txns {
		if txn.UserID == userID {
			out = append(out, txn)
			continue
		}
		if txn.SourceCard != nil {
			if _, ok := cards[*txn.SourceCard]; ok {
				out = append(out, txn)
				continue
			}
		}
		if _, ok := cards[txn.DestCard]; ok {
			out = append(out, txn)
		}
	}
	return out
}

// ---------------- audit logs ----------------

type auditLogsRepo struct{ st *state }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	r.st.audits = append(r.st.audits, l)
	return nil
}

// ---------------- ledger store ----------------

type ledgerStore struct{ st *state }

// ExecTx stages every write and applies the lot only when fn succeeds,
// so a failing unit leaves the store exactly as it was.
func (s *ledgerStore) ExecTx(ctx context.Context, fn func(repo.Tx) error) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	tx := &memTx{st: s.st, dirty: make(map[string]models.Money)}
	if err := fn(tx); err != nil {
		return err
	}
	now := time.Now()
	for card, bal := range tx.dirty {
		a := s.st.accounts[card]
		a.Balance = bal
		a.UpdatedAt = now
		s.st.accounts[card] = a
	}
	s.st.txns = append(s.st.txns, tx.appended...)
	return nil
}

type memTx struct {
	st       *state
	dirty    map[string]models.Money
	appended []models.Transaction
}

func (t *memTx) AccountForUpdate(ctx context.Context, cardNumber string) (models.Account, error) {
	a, ok := t.st.accounts[cardNumber]
	if !ok {
		return models.Account{}, repo.ErrNotFound
	}
	if bal, dirty := t.dirty[cardNumber]; dirty {
		a.Balance = bal
	}
	return a, nil
}

func (t *memTx) AccountExists(ctx context.Context, cardNumber string) (bool, error) {
	_, ok := t.st.accounts[cardNumber]
	return ok, nil
}

func (t *memTx) AddToBalance(ctx context.Context, cardNumber string, delta models.Money) (models.Money, error) {
	var cur models.Money
	if bal, ok := t.dirty[cardNumber]; ok {
		cur = bal
	} else {
		a, ok := t.st.accounts[cardNumber]
		if !ok {
			return 0, repo.ErrNotFound
		}
		cur = a.Balance
	}
	next := cur + delta
	if next < 0 {
		// backstop mirroring the DB CHECK constraint; the engine's own
		// funds check should make this unreachable
		return 0, fmt.Errorf("balance would go negative for %s: %w", cardNumber, repo.ErrConflict)
	}
	t.dirty[cardNumber] = next
	return next, nil
}

func (t *memTx) AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	txn.CreatedAt = time.Now()
	t.appended = append(t.appended, txn)
	return txn, nil
}
