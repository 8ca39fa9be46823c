package books

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/circulation/pkg/auth"
	"github.com/shishobooks/circulation/pkg/ledger"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
// Creating a book is public; everything else requires a bearer token.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		bookService:   NewService(db),
		ledgerService: ledger.NewService(db),
	}

	g.POST("", h.create)
	g.GET("", h.list, authMiddleware.Authenticate)
	g.GET("/:id", h.retrieve, authMiddleware.Authenticate)
	g.PATCH("/:id", h.update, authMiddleware.Authenticate)
	g.DELETE("/:id", h.delete, authMiddleware.Authenticate)
	g.GET("/:id/ledger", h.ledger, authMiddleware.Authenticate)
	g.PATCH("/:bookId/checkout/:userId", h.checkout, authMiddleware.Authenticate)
	g.PATCH("/:bookId/return/:userId", h.giveBack, authMiddleware.Authenticate)
}
