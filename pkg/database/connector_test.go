package database

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	closed bool
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *stubConn) Close() error                        { c.closed = true; return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

type stubDriver struct {
	conn *stubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func TestPragmaConnector_ClosesConnectionsItCannotConfigure(t *testing.T) {
	t.Parallel()

	drv := &stubDriver{conn: &stubConn{}}
	connector, err := newPragmaConnector(drv, "stub", "PRAGMA busy_timeout = 1")
	require.NoError(t, err)
	assert.Equal(t, drv, connector.Driver())

	_, err = connector.Connect(context.Background())
	assert.Error(t, err)
	assert.True(t, drv.conn.closed)
}
