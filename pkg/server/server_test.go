package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/circulation/pkg/auth"
	"github.com/shishobooks/circulation/pkg/config"
	"github.com/shishobooks/circulation/pkg/database"
	"github.com/shishobooks/circulation/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEcho(t *testing.T) (*echo.Echo, *config.Config) {
	t.Helper()

	cfg := config.NewForTest()
	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	e, err := newEcho(cfg, db)
	require.NoError(t, err)

	return e, cfg
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestNew_Addr(t *testing.T) {
	cfg := config.NewForTest()
	cfg.ServerPort = 9123

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	srv, err := New(cfg, db)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9123", srv.Addr)
}

func TestHealth(t *testing.T) {
	e, _ := setupTestEcho(t)

	rr := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNotFound(t *testing.T) {
	e, _ := setupTestEcho(t)

	rr := serve(e, httptest.NewRequest(http.MethodGet, "/shelves", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	body := map[string]map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"]["code"])
}

func TestRequestID(t *testing.T) {
	e, _ := setupTestEcho(t)

	rr := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rr.Header().Get(echo.HeaderXRequestID))
}

func TestBookRoutes_EndToEnd(t *testing.T) {
	e, cfg := setupTestEcho(t)

	// Trailing slash is stripped before routing.
	req := httptest.NewRequest(http.MethodPost, "/book/", strings.NewReader(`{"name":"Beloved","author":"Toni Morrison"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := serve(e, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	created := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	rr = serve(e, httptest.NewRequest(http.MethodGet, "/book/"+id, nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token, err := auth.NewService(cfg.JWTSecret).GenerateToken("reader-1", "", time.Minute)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPatch, "/book/"+id+"/checkout/reader-1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rr = serve(e, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"status":"UNAVAILABLE"`)
	assert.Contains(t, rr.Body.String(), `"status":"CHECKOUT"`)
}
