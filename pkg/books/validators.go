package books

import "github.com/segmentio/encoding/json"

// CreateBookPayload drops fields it doesn't declare.
type CreateBookPayload struct {
	Name      string  `json:"name" mod:"trim" validate:"required,max=300"`
	Author    string  `json:"author" mod:"trim" validate:"required,max=300"`
	Status    string  `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE UNAVAILABLE"`
	UpdatedBy *string `json:"updatedBy,omitempty" mod:"trim" validate:"omitempty,max=300"`
}

func (*CreateBookPayload) IgnoreUnknownFields() bool {
	return true
}

// ListBooksQuery doesn't carry bounds checks; out-of-range values are clamped
// by the handler instead of rejected.
type ListBooksQuery struct {
	Page   int     `query:"page" json:"page,omitempty" default:"1"`
	Limit  int     `query:"limit" json:"limit,omitempty" default:"2"`
	Status *string `query:"status" json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE UNAVAILABLE"`
}

type ListLedgerQuery struct {
	Page   int     `query:"page" json:"page,omitempty" default:"1"`
	Limit  int     `query:"limit" json:"limit,omitempty" default:"2"`
	UserID *string `query:"userId" json:"userId,omitempty" mod:"trim" validate:"omitempty,min=1"`
}

// UpdateBookPayload lists every field a PATCH may carry. updatedAt is
// accepted for compatibility but the server always stamps its own time.
type UpdateBookPayload struct {
	Name      *string         `json:"name,omitempty" mod:"trim" validate:"omitempty,min=1,max=300"`
	Author    *string         `json:"author,omitempty" mod:"trim" validate:"omitempty,min=1,max=300"`
	Status    *string         `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE UNAVAILABLE"`
	UpdatedBy *string         `json:"updatedBy,omitempty" mod:"trim" validate:"omitempty,max=300"`
	UpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
}
