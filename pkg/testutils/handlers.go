package testutils

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/circulation/pkg/models"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

type seedBooksRequest struct {
	Books []seedBook `json:"books" validate:"required,min=1,max=100,dive"`
}

type seedBook struct {
	Name   string `json:"name" validate:"required"`
	Author string `json:"author" validate:"required"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE UNAVAILABLE"`
}

// seedBooks inserts books directly, bypassing the public create endpoint so
// fixtures can start out UNAVAILABLE.
// POST /test/books.
func (h *handler) seedBooks(c echo.Context) error {
	ctx := c.Request().Context()

	var req seedBooksRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	now := time.Now()
	books := make([]*models.Book, 0, len(req.Books))
	for _, b := range req.Books {
		status := b.Status
		if status == "" {
			status = models.BookStatusAvailable
		}
		books = append(books, &models.Book{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
			Name:      b.Name,
			Author:    b.Author,
			Status:    status,
		})
	}

	_, err := h.db.NewInsert().Model(&books).Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, books))
}

// deleteAllBooks removes every book. Ledger entries are append-only and are
// left in place; they reference books only by id.
// DELETE /test/books.
func (h *handler) deleteAllBooks(c echo.Context) error {
	ctx := c.Request().Context()

	res, err := h.db.NewDelete().Model((*models.Book)(nil)).Where("1 = 1").Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("test books deleted", logger.Data{"count": n})

	return c.NoContent(http.StatusNoContent)
}
