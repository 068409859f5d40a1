package checks

import (
	"fmt"

	"rom-curator/feature/catalog/models"

	"gorm.io/gorm"
)

// SchemaReport describes how the persisted schema compares to this build.
type SchemaReport struct {
	// Version is the persisted schema version.
	Version int `json:"version"`
	// Supported is the schema version this build understands.
	Supported int `json:"supported"`
	// MissingTables lists expected tables absent from the database.
	MissingTables []string `json:"missing_tables"`
}

// Clean reports whether the schema matches this build exactly.
func (r SchemaReport) Clean() bool {
	return r.Version == r.Supported && len(r.MissingTables) == 0
}

// CheckSchema verifies every catalog table exists and reads the persisted
// schema version.
func CheckSchema(db *gorm.DB) (SchemaReport, error) {
	report := SchemaReport{Supported: models.SchemaVersion}

	migrator := db.Migrator()
	for _, model := range models.AllModels() {
		if !migrator.HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(model); err != nil {
				return report, fmt.Errorf("parse model for schema check: %w", err)
			}
			report.MissingTables = append(report.MissingTables, stmt.Schema.Table)
		}
	}

	var info models.SchemaInfo
	if err := db.First(&info, 1).Error; err != nil {
		return report, fmt.Errorf("read schema version marker: %w", err)
	}
	report.Version = info.Version

	return report, nil
}
