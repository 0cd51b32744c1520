package migration

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/elskow/gatekeeper/internal/config"
)

type Migrator struct {
	db     *sql.DB
	config *config.DatabaseConfig
}

func NewMigrator(config *config.DatabaseConfig) (*Migrator, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	return &Migrator{
		db:     db,
		config: config,
	}, nil
}

func (m *Migrator) Up() error {
	migrationsDir, err := getMigrationsDir()
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}

	if err := goose.Up(m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (m *Migrator) Down() error {
	migrationsDir, err := getMigrationsDir()
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}

	if err := goose.Down(m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}

	return nil
}

func (m *Migrator) Status() error {
	migrationsDir, err := getMigrationsDir()
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}

	if err := goose.Status(m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

// Version returns the current migration version of the database.
func (m *Migrator) Version() (int64, error) {
	return goose.GetDBVersion(m.db)
}

// LatestVersion returns the newest version available on disk.
func (m *Migrator) LatestVersion() (int64, error) {
	migrationsDir, err := getMigrationsDir()
	if err != nil {
		return 0, err
	}

	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return 0, err
	}

	if len(migrations) == 0 {
		return 0, nil
	}

	return migrations[len(migrations)-1].Version, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
