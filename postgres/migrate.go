package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// A Migration pairs a unique key with the function executing the schema change.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

// execute runs the migration inside a transaction.
func (m Migration) execute(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := m.Executor(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

// MigrateUp runs every migration not yet recorded in the migrations table,
// recording each as it completes.
func MigrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("failed creating schema %q: %w", schema, err)
	}

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("failed creating migrations table: %w", err)
	}

	toRun, err := pendingMigrations(db, migrations)
	if err != nil {
		return err
	}

	for _, m := range toRun {
		if err := m.execute(db); err != nil {
			return fmt.Errorf("migration %q failed: %w", m.Key, err)
		}

		err := db.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, time.Now().Unix()).Error
		if err != nil {
			return fmt.Errorf("failed recording migration %q: %w", m.Key, err)
		}
	}

	return nil
}

// pendingMigrations filters all down to those without a record in the migrations table.
func pendingMigrations(db *gorm.DB, all []Migration) ([]Migration, error) {
	var ran []string
	if err := db.Raw("SELECT key FROM migrations;").Scan(&ran).Error; err != nil {
		return nil, fmt.Errorf("failed fetching ran migrations: %w", err)
	}

	ranSet := make(map[string]bool, len(ran))
	for _, key := range ran {
		ranSet[key] = true
	}

	var toRun []Migration
	for _, m := range all {
		if !ranSet[m.Key] {
			toRun = append(toRun, m)
		}
	}

	return toRun, nil
}
