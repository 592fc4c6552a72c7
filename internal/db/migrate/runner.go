// Package migrate runs database migrations from embedded SQL files using golang-migrate.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"click-stats-service/internal/db"
)

// ErrNoChange is returned when Up/Down has nothing to do (already at target version).
var ErrNoChange = migrate.ErrNoChange

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Run applies migrations in direction over an open lib/pq pool.
// Being at the target version already is not an error.
func Run(conn *sql.DB, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	m, release, err := newMigrator(context.Background(), conn)
	if err != nil {
		return err
	}
	defer release()

	switch direction {
	case DirectionUp:
		err = m.Up()
	case DirectionDown:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version reports the applied schema version and whether it is dirty.
func Version(conn *sql.DB) (uint, bool, error) {
	m, release, err := newMigrator(context.Background(), conn)
	if err != nil {
		return 0, false, err
	}
	defer release()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// newMigrator pins one pool connection for the migrator. release hands it
// back to the pool and leaves the pool itself open.
func newMigrator(ctx context.Context, conn *sql.DB) (*migrate.Migrate, func(), error) {
	if conn == nil {
		return nil, nil, errors.New("migrate: nil database")
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("migrate source: %w", err)
	}

	sqlConn, err := conn.Conn(ctx)
	if err != nil {
		_ = sourceDriver.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	// Built with WithConnection the driver owns sqlConn only, so closing it
	// never closes the shared pool.
	dbDriver, err := postgres.WithConnection(ctx, sqlConn, &postgres.Config{})
	if err != nil {
		_ = sqlConn.Close()
		_ = sourceDriver.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		_ = dbDriver.Close()
		_ = sourceDriver.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	release := func() { _, _ = m.Close() }
	return m, release, nil
}
