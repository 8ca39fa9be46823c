package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shishobooks/circulation/pkg/models"
	"github.com/uptrace/bun"
)

type ListEntriesOptions struct {
	Limit  *int
	Offset *int
	BookID *string
	UserID *string

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateEntry appends an entry to the ledger. The id and timestamp are always
// assigned here.
func (svc *Service) CreateEntry(ctx context.Context, entry *models.LedgerEntry) error {
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now()

	_, err := svc.db.
		NewInsert().
		Model(entry).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) ListEntries(ctx context.Context, opts ListEntriesOptions) ([]*models.LedgerEntry, error) {
	e, _, err := svc.listEntriesWithTotal(ctx, opts)
	return e, errors.WithStack(err)
}

func (svc *Service) ListEntriesWithTotal(ctx context.Context, opts ListEntriesOptions) ([]*models.LedgerEntry, int, error) {
	opts.includeTotal = true
	return svc.listEntriesWithTotal(ctx, opts)
}

func (svc *Service) listEntriesWithTotal(ctx context.Context, opts ListEntriesOptions) ([]*models.LedgerEntry, int, error) {
	entries := []*models.LedgerEntry{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&entries).
		Order("le.created_at DESC", "le.rowid DESC")

	if opts.BookID != nil {
		q = q.Where("le.book_id = ?", *opts.BookID)
	}
	if opts.UserID != nil {
		q = q.Where("le.user_id = ?", *opts.UserID)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return entries, total, nil
}
