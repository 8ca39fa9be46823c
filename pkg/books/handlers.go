package books

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/circulation/pkg/auth"
	"github.com/shishobooks/circulation/pkg/errcodes"
	"github.com/shishobooks/circulation/pkg/ledger"
	"github.com/shishobooks/circulation/pkg/models"
)

const (
	defaultPage  = 1
	defaultLimit = 2
	maxLimit     = 100
)

type handler struct {
	bookService   *Service
	ledgerService *ledger.Service
}

type circulationResponse struct {
	Book   *models.Book        `json:"book"`
	Ledger *models.LedgerEntry `json:"ledger"`
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params. A payload that doesn't fit the stored shape is reported
	// like any other write failure.
	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		logger.FromContext(ctx).Warn("book payload rejected", logger.Data{"error": err.Error()})
		return errcodes.StoreFailure("Book could not be created.")
	}

	book := &models.Book{
		Name:      params.Name,
		Author:    params.Author,
		Status:    params.Status,
		UpdatedBy: params.UpdatedBy,
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book created", logger.Data{"book_id": book.ID})

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit, offset := paginate(params.Page, params.Limit)

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  &limit,
		Offset: &offset,
		Status: params.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		TotalCount int            `json:"totalCount"`
		Books      []*models.Book `json:"books"`
	}{total, books}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := bookID(c.Param("id"))
	if err != nil {
		return err
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := bookID(c.Param("id"))
	if err != nil {
		return err
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) && e.Code == errcodes.CodeUnknownParameter {
			return errcodes.InvalidUpdate("Only name, author, status, updatedBy and updatedAt can be updated.")
		}
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Status only moves through checkout and return.
	if params.Status != nil && *params.Status != book.Status {
		return errcodes.InvalidState("Book status can only be changed by checking it out or returning it.")
	}

	// Keep track of what's been changed.
	opts := UpdateBookOptions{Columns: []string{}}

	if params.Name != nil && *params.Name != book.Name {
		book.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}
	if params.Author != nil && *params.Author != book.Author {
		book.Author = *params.Author
		opts.Columns = append(opts.Columns, "author")
	}
	if params.UpdatedBy != nil {
		book.UpdatedBy = params.UpdatedBy
		opts.Columns = append(opts.Columns, "updated_by")
	}

	// Update the model.
	err = h.bookService.UpdateBook(ctx, book, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book updated", withActor(ctx, logger.Data{"book_id": book.ID, "columns": opts.Columns}))

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := bookID(c.Param("id"))
	if err != nil {
		return err
	}

	book, err := h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book deleted", withActor(ctx, logger.Data{"book_id": book.ID}))

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) checkout(c echo.Context) error {
	return h.circulate(c, models.BookStatusAvailable, models.BookStatusUnavailable, models.LedgerStatusCheckout)
}

func (h *handler) giveBack(c echo.Context) error {
	return h.circulate(c, models.BookStatusUnavailable, models.BookStatusAvailable, models.LedgerStatusReturn)
}

// circulate moves a book from one status to the other and records the event
// in the ledger. The two writes are independent: if the ledger write fails
// the book keeps its new status.
func (h *handler) circulate(c echo.Context, from, to, event string) error {
	ctx := c.Request().Context()
	id, err := bookID(c.Param("bookId"))
	if err != nil {
		return err
	}
	userID := c.Param("userId")
	log := logger.FromContext(ctx)

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if book.Status != from {
		if event == models.LedgerStatusCheckout {
			return errcodes.InvalidState("Book is not available for checkout.")
		}
		return errcodes.InvalidState("Book is already available.")
	}

	book.Status = to
	book.UpdatedBy = &userID
	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{
		Columns: []string{"status", "updated_by"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	entry := &models.LedgerEntry{
		BookID: book.ID,
		UserID: userID,
		Status: event,
	}
	if err := h.ledgerService.CreateEntry(ctx, entry); err != nil {
		log.Err(err).Error("ledger write failed after book update", withActor(ctx, logger.Data{
			"book_id": book.ID,
			"user_id": userID,
			"status":  event,
		}))
		return errcodes.StoreFailure("Book status was updated but the ledger entry could not be recorded.")
	}

	log.Info("book circulated", withActor(ctx, logger.Data{
		"book_id": book.ID,
		"user_id": userID,
		"status":  event,
	}))

	return errors.WithStack(c.JSON(http.StatusOK, circulationResponse{book, entry}))
}

func (h *handler) ledger(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := bookID(c.Param("id"))
	if err != nil {
		return err
	}

	// Bind params.
	params := ListLedgerQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit, offset := paginate(params.Page, params.Limit)

	entries, total, err := h.ledgerService.ListEntriesWithTotal(ctx, ledger.ListEntriesOptions{
		Limit:  &limit,
		Offset: &offset,
		BookID: &id,
		UserID: params.UserID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		TotalCount int                   `json:"totalCount"`
		Entries    []*models.LedgerEntry `json:"entries"`
	}{total, entries}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

// withActor adds the token subject of the caller to log data.
func withActor(ctx context.Context, data logger.Data) logger.Data {
	if claims := auth.ClaimsFromContext(ctx); claims != nil {
		data["actor"] = claims.UserID()
	}
	return data
}

// bookID normalizes a path id. Ids that can't be parsed are reported the same
// way as a failed lookup.
func bookID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errcodes.StoreFailure("Check the id of the book")
	}
	return id.String(), nil
}

// paginate clamps page and limit into range and converts them to a
// limit/offset pair.
func paginate(page, limit int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, (page - 1) * limit
}
