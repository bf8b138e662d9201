package migrations

import "gorm.io/gorm"

// migration002Up creates indexes for operator-side queries over the
// stored submissions (done directly in SQL, there is no read API here)
func migration002Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_budget_requests_created_at ON budget_requests(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_budget_requests_district ON budget_requests(district)",

		"CREATE INDEX IF NOT EXISTS idx_insurance_requests_created_at ON insurance_requests(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_state_aid_requests_created_at ON state_aid_requests(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_contractor_registrations_created_at ON contractor_registrations(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_contractor_registrations_district ON contractor_registrations(district)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration002Down drops the indexes
func migration002Down(db *gorm.DB) error {
	indexes := []string{
		"DROP INDEX IF EXISTS idx_budget_requests_created_at",
		"DROP INDEX IF EXISTS idx_budget_requests_district",
		"DROP INDEX IF EXISTS idx_insurance_requests_created_at",
		"DROP INDEX IF EXISTS idx_state_aid_requests_created_at",
		"DROP INDEX IF EXISTS idx_contractor_registrations_created_at",
		"DROP INDEX IF EXISTS idx_contractor_registrations_district",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}
