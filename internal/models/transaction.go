package models

import "time"

type TransactionKind string

const (
	TxnTransfer TransactionKind = "transfer"
	TxnTopUp    TransactionKind = "topup"
)

type TransactionStatus string

// Only completed transactions are ever persisted; a transfer that
// fails validation or funds checks leaves no row behind.
const (
	TxnCompleted TransactionStatus = "completed"
)

type Transaction struct {
	ID         string            `json:"id"`
	Kind       TransactionKind   `json:"kind"`
	SourceCard *string           `json:"source_card,omitempty"` // nil for top-ups
	DestCard   string            `json:"dest_card"`
	Amount     Money             `json:"amount"`
	UserID     string            `json:"user_id"`
	Status     TransactionStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
