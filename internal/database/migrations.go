package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"pizzeria/internal/logger"
)

// RunMigrations applies every pending up migration under migrationsPath.
// databaseURL selects the driver by scheme: pgx5:// or sqlite3://.
func RunMigrations(databaseURL, migrationsPath string, log *logger.Logger) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	return up(m, log)
}

// RunSQLiteMigrations applies migrations over an already open sqlite handle
func RunSQLiteMigrations(db *sql.DB, migrationsPath string, log *logger.Logger) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to init sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	// Closing m would close db as well; the caller owns it.

	return up(m, log)
}

func up(m *migrate.Migrate, log *logger.Logger) error {
	err := m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Debug("migrations_current", "Schema already up to date", "startup", nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("migration_applied", fmt.Sprintf("Applied migrations up to version %d", version), "startup", map[string]interface{}{
		"version": version,
		"dirty":   dirty,
	})
	return nil
}
