package schema

import (
	"fmt"

	"github.com/jinzhu/gorm"
)

// Columns added after the first deployment. AutoMigrate covers fresh
// databases; this list patches tables created by older revisions of the bot.
var patchColumns = []struct {
	name    string
	sqlType string
}{
	{"photo_url", "varchar(512)"},
	{"photo_path", "varchar(512)"},
	{"location", "varchar(255)"},
	{"exact_coordinates", "varchar(64)"},
	{"username", "varchar(255)"},
	{"first_name", "varchar(255)"},
	{"last_name", "varchar(255)"},
	{"status", "varchar(50)"},
	{"updated_at", "timestamptz"},
}

// EnsureSchema creates or patches the reports table. It is idempotent and
// safe to run on every boot.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&Report{}).Error; err != nil {
		return fmt.Errorf("auto migrate reports: %w", err)
	}

	for _, col := range patchColumns {
		if db.Dialect().HasColumn(Report{}.TableName(), col.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
			Report{}.TableName(), col.name, col.sqlType)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("patch column %s: %w", col.name, err)
		}
	}

	return nil
}
