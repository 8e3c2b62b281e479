package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints backing the governance
// invariants that AutoMigrate alone does not express.
func MigrateConstraints(db *gorm.DB) error {
	// At most one deletion-request counter per (site, tag) pair.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tag_deletion_site_tag
		ON tag_deletion_requests (site_id, tag_name);
	`).Error
	if err != nil {
		return err
	}

	// At most one pending addition request per (site, tag) pair. Approved
	// and rejected rows stay behind as audit history, so the index is
	// partial.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tag_addition_pending
		ON tag_addition_requests (site_id, tag_name)
		WHERE status = 'pending';
	`).Error
	if err != nil {
		return err
	}

	// Status-filtered listings are the hot read path for the map.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sites_status
		ON sites (status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
