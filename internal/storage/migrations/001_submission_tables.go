package migrations

import (
	"gorm.io/gorm"

	"github.com/recuperacasa/intake-api/internal/domain/form"
)

// migration001Up creates the four submission tables, one per form kind.
// Identifiers are bigserial, so the insert that assigns them is atomic.
func migration001Up(db *gorm.DB) error {
	return db.AutoMigrate(form.Models()...)
}

// migration001Down drops the submission tables
func migration001Down(db *gorm.DB) error {
	for _, model := range form.Models() {
		if err := db.Migrator().DropTable(model); err != nil {
			return err
		}
	}
	return nil
}
