package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/circulation/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func runAuthenticate(t *testing.T, header string) (echo.Context, bool, error) {
	t.Helper()

	middleware := NewMiddleware(NewService(testSecret))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/book", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	nextCalled := false
	err := middleware.Authenticate(func(_ echo.Context) error {
		nextCalled = true
		return nil
	})(c)
	return c, nextCalled, err
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, code, codeErr.Code)
}

func TestMiddlewareAuthenticate_AllowsValidToken(t *testing.T) {
	t.Parallel()

	token, err := NewService(testSecret).GenerateToken("user-42", "reader", time.Hour)
	require.NoError(t, err)

	c, nextCalled, err := runAuthenticate(t, "Bearer "+token)
	require.NoError(t, err)
	assert.True(t, nextCalled)

	claims, ok := c.Get(string(ContextKeyClaims)).(*Claims)
	require.True(t, ok)
	assert.Equal(t, "user-42", claims.UserID())
	assert.Equal(t, "reader", claims.Username)

	fromCtx := ClaimsFromContext(c.Request().Context())
	require.NotNil(t, fromCtx)
	assert.Equal(t, "user-42", fromCtx.UserID())
}

func TestMiddlewareAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	token, err := NewService(testSecret).GenerateToken("user-42", "", time.Hour)
	require.NoError(t, err)

	_, nextCalled, err := runAuthenticate(t, "bearer "+token)
	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestMiddlewareAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz"} {
		_, nextCalled, err := runAuthenticate(t, header)
		requireCode(t, err, "auth_missing")
		assert.False(t, nextCalled, header)
	}
}

func TestMiddlewareAuthenticate_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewService("another-secret").GenerateToken("user-42", "", time.Hour)
	require.NoError(t, err)

	c, nextCalled, err := runAuthenticate(t, "Bearer "+token)
	requireCode(t, err, "auth_invalid")
	assert.False(t, nextCalled)
	assert.Nil(t, ClaimsFromContext(c.Request().Context()))
}

func TestMiddlewareAuthenticate_ExpiredToken(t *testing.T) {
	t.Parallel()

	token, err := NewService(testSecret).GenerateToken("user-42", "", -time.Minute)
	require.NoError(t, err)

	_, nextCalled, err := runAuthenticate(t, "Bearer "+token)
	requireCode(t, err, "auth_invalid")
	assert.False(t, nextCalled)
}

func TestMiddlewareAuthenticate_TokenWithoutExpiry(t *testing.T) {
	t.Parallel()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-42",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, nextCalled, err := runAuthenticate(t, "Bearer "+token)
	requireCode(t, err, "auth_invalid")
	assert.False(t, nextCalled)
}

func TestMiddlewareAuthenticate_Garbage(t *testing.T) {
	t.Parallel()

	_, nextCalled, err := runAuthenticate(t, "Bearer not-a-jwt")
	requireCode(t, err, "auth_invalid")
	assert.False(t, nextCalled)
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewService(testSecret).ValidateToken(token)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewService(testSecret).ValidateToken(unsigned)
	assert.Error(t, err)
}
