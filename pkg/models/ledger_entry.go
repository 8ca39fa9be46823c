package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	LedgerStatusCheckout = "CHECKOUT"
	LedgerStatusReturn   = "RETURN"
)

// LedgerEntry records a single checkout or return. Entries are never updated
// or deleted once written.
type LedgerEntry struct {
	bun.BaseModel `bun:"table:ledger_entries,alias:le"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	BookID    string    `bun:",notnull" json:"bookId"`
	UserID    string    `bun:",notnull" json:"userId"`
	Status    string    `bun:",notnull" json:"status"`
}
