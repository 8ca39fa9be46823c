package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shishobooks/circulation/pkg/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func newApp(db *bun.DB) *cli.App {
	// withMigrator hands each command a fresh migrator over the shared db.
	withMigrator := func(fn func(c *cli.Context, migrator *migrate.Migrator) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			return fn(c, migrate.NewMigrator(db, migrations.Migrations))
		}
	}

	return &cli.App{
		Name:        "migrations",
		Usage:       "CLI to interact with migrations",
		Description: "CLI to interact with the circulation database migrations",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					return errors.WithStack(migrator.Init(c.Context))
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Init(c.Context); err != nil {
						return errors.WithStack(err)
					}

					group, err := migrator.Migrate(c.Context)
					if err != nil {
						return errors.WithStack(err)
					}

					if group.ID == 0 {
						fmt.Fprintf(c.App.Writer, "There are no new migrations to run\n")
						return nil
					}

					fmt.Fprintf(c.App.Writer, "Migrated to %s\n", group)
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return errors.WithStack(err)
					}

					if group.ID == 0 {
						fmt.Fprintf(c.App.Writer, "There are no groups to roll back\n")
						return nil
					}

					fmt.Fprintf(c.App.Writer, "Rolled back %s\n", group)
					return nil
				}),
			},
			{
				Name:      "create",
				Usage:     "create Go migration",
				ArgsUsage: "<name words...>",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if c.NArg() == 0 {
						return errors.New("migration name is required")
					}

					name := strings.Join(c.Args().Slice(), "_")
					mf, err := migrator.CreateGoMigration(
						c.Context,
						name,
						migrate.WithGoTemplate(migrationTemplate),
					)
					if err != nil {
						return errors.WithStack(err)
					}
					fmt.Fprintf(c.App.Writer, "Created migration %s (%s)\n", mf.Name, mf.Path)

					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					ms, err := migrator.MigrationsWithStatus(c.Context)
					if err != nil {
						return errors.WithStack(err)
					}
					fmt.Fprintf(c.App.Writer, "Migrations: %s\n", ms)
					fmt.Fprintf(c.App.Writer, "Unapplied migrations: %s\n", ms.Unapplied())
					fmt.Fprintf(c.App.Writer, "Last migration group: %s\n", ms.LastGroup())

					return nil
				}),
			},
		},
	}
}

const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
`
