package database

import (
	"context"
	"database/sql/driver"

	"github.com/pkg/errors"
)

// driverConnector wraps a driver.Driver to implement driver.Connector for
// drivers that don't implement driver.DriverContext.
type driverConnector struct {
	driver driver.Driver
	dsn    string
}

func (dc *driverConnector) Connect(_ context.Context) (driver.Conn, error) {
	return dc.driver.Open(dc.dsn)
}

func (dc *driverConnector) Driver() driver.Driver {
	return dc.driver
}

// pragmaConnector runs the given statements on every new connection, so
// per-connection settings such as busy_timeout hold across the whole pool.
type pragmaConnector struct {
	connector driver.Connector
	pragmas   []string
}

func newPragmaConnector(drv driver.Driver, dsn string, pragmas ...string) (*pragmaConnector, error) {
	var connector driver.Connector = &driverConnector{drv, dsn}
	if drvCtx, ok := drv.(driver.DriverContext); ok {
		c, err := drvCtx.OpenConnector(dsn)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		connector = c
	}
	return &pragmaConnector{connector, pragmas}, nil
}

func (pc *pragmaConnector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := pc.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	execer, ok := conn.(driver.ExecerContext)
	if !ok {
		_ = conn.Close()
		return nil, errors.New("sqlite connection does not support ExecContext")
	}
	for _, pragma := range pc.pragmas {
		if _, err := execer.ExecContext(ctx, pragma, nil); err != nil {
			_ = conn.Close()
			return nil, errors.Wrapf(err, "failed to run %q", pragma)
		}
	}

	return conn, nil
}

func (pc *pragmaConnector) Driver() driver.Driver {
	return pc.connector.Driver()
}
