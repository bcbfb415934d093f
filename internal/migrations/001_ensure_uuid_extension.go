package migrations

import "gorm.io/gorm"

// Migration001EnsureUUIDExtension makes uuid-ossp available. Ids are
// generated application-side, but ad-hoc SQL and backfills rely on
// uuid_generate_v4().
func Migration001EnsureUUIDExtension() Migration {
	return Migration{
		ID:   "001_ensure_uuid_extension",
		Name: "Ensure uuid-ossp extension is available",
		Up: func(db *gorm.DB) error {
			return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
		},
		Down: func(db *gorm.DB) error {
			// Other schemas may depend on it; never drop.
			return nil
		},
	}
}
