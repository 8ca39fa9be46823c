package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	BookStatusAvailable   = "AVAILABLE"
	BookStatusUnavailable = "UNAVAILABLE"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `bun:",notnull" json:"name"`
	Author    string    `bun:",notnull" json:"author"`
	Status    string    `bun:",notnull" json:"status"`
	UpdatedBy *string   `json:"updatedBy"`
}
