package database

import (
	"errors"
	"fmt"

	"servicehub/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies pending migrations from migrationsPath (a source URL such
// as file://migrations). An up-to-date schema is not an error.
func Migrate(migrationsPath string, config utils.DatabaseConfig) error {
	m, err := migrate.New(migrationsPath, ConnString(config))
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
