package integrity

import (
	"rom-curator/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CheckReferences scans for rows whose parent row is missing.
func (s *Service) CheckReferences() (checks.ReferenceReport, error) {
	return checks.CheckReferences(s.db)
}

// CheckSchema verifies tables and the persisted schema version.
func (s *Service) CheckSchema() (checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CountUnresolved returns the number of disagreements awaiting curation.
func (s *Service) CountUnresolved() (int64, error) {
	return checks.CountUnresolved(s.db)
}
