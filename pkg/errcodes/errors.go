package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// AuthMissing is returned when a protected route is called without a bearer
// token.
func AuthMissing() error {
	return &Error{
		http.StatusUnauthorized,
		"Authentication token is required.",
		"auth_missing",
	}
}

// AuthInvalid is returned when the bearer token can't be verified or has
// expired.
func AuthInvalid() error {
	return &Error{
		http.StatusForbidden,
		"Authentication token is invalid or expired.",
		"auth_invalid",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

func InvalidUpdate(msg string) error {
	return &Error{
		http.StatusBadRequest,
		msg,
		"invalid_update",
	}
}

func InvalidState(msg string) error {
	return &Error{
		http.StatusBadRequest,
		msg,
		"invalid_state",
	}
}

// StoreFailure is the catch-all for errors coming out of the persistence
// layer, including ids the store can't interpret.
func StoreFailure(msg string) error {
	return &Error{
		http.StatusInternalServerError,
		msg,
		"store_failure",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

// CodeUnknownParameter is the code of the error the binder returns for
// fields and query keys the target struct doesn't declare.
const CodeUnknownParameter = "unknown_parameter"

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		CodeUnknownParameter,
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}
