package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/txvault/internal/database"
)

// migrationSource returns the migration directory and the database URL golang-migrate
// expects for driver. MySQL DSNs are accepted without the mysql:// scheme.
func migrationSource(driver, connectionString string) (string, string) {
	if driver == database.DriverMySQL {
		if !strings.HasPrefix(connectionString, "mysql://") {
			connectionString = "mysql://" + connectionString
		}
		return "file://migrations/mysql", connectionString
	}
	return "file://migrations/postgresql", connectionString
}

// RunMigrations applies all pending migrations for the configured driver.
// Having nothing to apply is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	sourceURL, databaseURL := migrationSource(driver, connectionString)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
