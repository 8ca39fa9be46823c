package errcodes

import (
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	echologger "github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
	"github.com/robinjoseph08/golib/logger"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler that uses HTTP errors accordingly, and any
// generic error will be interpreted as a store failure. Every error is logged
// before the response is written.
func (h *Handler) Handle(err error, c echo.Context) {
	log := echologger.FromEchoContext(c)

	if errutils.IsIgnorableErr(err) {
		log.Err(err).Warn("broken pipe")
		return
	}

	httpCode, code, msg := h.classify(err)

	data := logger.Data{
		"code":        code,
		"status_code": httpCode,
		"method":      c.Request().Method,
		"path":        c.Path(),
	}
	if httpCode >= http.StatusInternalServerError {
		log.Err(err).Error("server error", data)
	} else {
		log.Warn(msg, data)
	}

	if c.Response().Committed {
		return
	}

	payload := map[string]interface{}{
		"error": map[string]interface{}{
			"code":        code,
			"message":     msg,
			"status_code": httpCode,
		},
	}
	if err := c.JSON(httpCode, payload); err != nil {
		log.Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) classify(err error) (int, string, string) {
	code := ""
	msg := ""
	httpCode := http.StatusInternalServerError

	// Echo errors
	var he *echo.HTTPError
	if ok := errors.As(err, &he); ok {
		httpCode = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(he.Code)
		}
		code = strcase.ToSnake(msg)
	}

	// Custom errors
	var e *Error
	if ok := errors.As(err, &e); ok {
		httpCode = e.HTTPCode
		code = e.Code
		msg = e.Message
	}

	// Anything else came out of the store or the runtime.
	if httpCode == http.StatusInternalServerError && msg == "" {
		code = "store_failure"
		msg = "Internal Server Error"
	}

	return httpCode, code, msg
}
