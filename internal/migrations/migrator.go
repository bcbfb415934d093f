// Package migrations runs the versioned schema changes that gorm's
// auto-migration cannot express (raw indexes, extensions). Applied
// migrations are recorded in schema_migrations and never re-run.
package migrations

import (
	"fmt"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/pkg/logger"
	"gorm.io/gorm"
)

type Migration struct {
	ID   string // unique, ordered identifier (e.g. "001_ensure_uuid_extension")
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

type MigrationRecord struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"autoUpdateTime:nano"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: All(),
	}
}

// Run applies every pending migration in order, each inside its own
// transaction together with its schema_migrations record.
func (m *Migrator) Run() error {
	if err := m.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var applied []MigrationRecord
	if err := m.db.Find(&applied).Error; err != nil {
		return fmt.Errorf("failed to fetch applied migrations: %w", err)
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedSet[r.ID] = true
	}

	for _, migration := range m.migrations {
		if appliedSet[migration.ID] {
			continue
		}

		logger.Info().Str("migration", migration.ID).Str("name", migration.Name).Msg("Running migration")

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: migration.ID, Name: migration.Name}).Error
		})
		if err != nil {
			logger.Error().Err(err).Str("migration", migration.ID).Msg("Migration failed")
			return fmt.Errorf("migration %s failed: %w", migration.ID, err)
		}

		logger.Info().Str("migration", migration.ID).Msg("Migration applied")
	}

	return nil
}

// All returns the registered migrations in application order.
func All() []Migration {
	return []Migration{
		Migration001EnsureUUIDExtension(),
		Migration002AddChatIndexes(),
	}
}
