package main

import (
	"bytes"
	"testing"

	"github.com/shishobooks/circulation/pkg/config"
	"github.com/shishobooks/circulation/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func runApp(t *testing.T, db *bun.DB, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	app := newApp(db)
	app.Writer = out
	err := app.Run(append([]string{"migrations"}, args...))
	return out.String(), err
}

func TestApp_MigrateRollbackStatus(t *testing.T) {
	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	defer db.Close()

	out, err := runApp(t, db, "init")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runApp(t, db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated to")

	out, err = runApp(t, db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "There are no new migrations to run")

	out, err = runApp(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Unapplied migrations: empty")

	out, err = runApp(t, db, "rollback")
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back")

	out, err = runApp(t, db, "rollback")
	require.NoError(t, err)
	assert.Contains(t, out, "There are no groups to roll back")
}

func TestApp_CreateRequiresName(t *testing.T) {
	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	defer db.Close()

	_, err = runApp(t, db, "create")
	assert.EqualError(t, err, "migration name is required")
}
