package goosemigrate

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Migrator struct {
	postgresURL    string
	migrationsPath string
	schemaName     string
}

func NewMigrator(postgresURL, migrationsPath, schemaName string) *Migrator {
	return &Migrator{
		postgresURL:    postgresURL,
		migrationsPath: migrationsPath,
		schemaName:     schemaName,
	}
}

func (m *Migrator) open() (*sql.DB, error) {
	goose.SetTableName(m.schemaName + "." + "migrations")

	db, err := goose.OpenDBWithDriver("postgres", m.postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB for migration: %w", err)
	}

	return db, nil
}

func (m *Migrator) Up() error {
	db, err := m.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", m.schemaName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := goose.Up(db, m.migrationsPath); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}

	return nil
}

func (m *Migrator) Down() error {
	db, err := m.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Down(db, m.migrationsPath); err != nil {
		return fmt.Errorf("failed to down migrations: %w", err)
	}

	return nil
}
