package models

import "time"

// Account is a card-identified balance holder. The card number is the
// primary key for all ledger operations; the balance is only ever
// mutated through the ledger engine.
type Account struct {
	CardNumber  string    `json:"card_number"`
	OwnerUserID string    `json:"owner_user_id"`
	Balance     Money     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
