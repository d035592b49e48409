package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// MigrateUp applies all pending migrations and returns version info.
// The schema lives in versioned SQL files embedded in the binary, one
// directory per supported driver.
func MigrateUp(db *sql.DB, driverName string) (uint, bool, error) {
	m, err := newMigrator(db, driverName)
	if err != nil {
		return 0, false, err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return 0, false, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}

	return version, dirty, nil
}

// MigrateDown rolls back all migrations.
// Use with caution: this deletes all data in the affected tables.
func MigrateDown(db *sql.DB, driverName string) error {
	m, err := newMigrator(db, driverName)
	if err != nil {
		return err
	}

	err = m.Down()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	return nil
}

func newMigrator(db *sql.DB, driverName string) (*migrate.Migrate, error) {
	var (
		driver  database.Driver
		dbName  string
		srcPath string
		err     error
	)

	switch driverName {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
		dbName = "postgres"
		srcPath = "migrations/postgres"
	default:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
		dbName = "sqlite"
		srcPath = "migrations/sqlite"
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", dbName, err)
	}

	source, err := iofs.New(migrationFS, srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}
