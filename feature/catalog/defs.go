package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"rom-curator/feature/catalog/models"

	"go.uber.org/zap"
)

// Definitions is the curated reference data loaded from a definitions file:
// platforms, companies, and overrides. All three are upserted idempotently
// by id, so re-importing the same file is a no-op.
type Definitions struct {
	Platforms []models.Platform `json:"platforms"`
	Companies []models.Company  `json:"companies"`
	Overrides []models.Override `json:"overrides"`
}

// LoadDefinitions reads a curated definitions JSON file.
func LoadDefinitions(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions file: %w", err)
	}
	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse definitions file %s: %w", path, err)
	}
	return &defs, nil
}

// DefinitionCounts reports how many rows an ImportDefinitions call wrote.
type DefinitionCounts struct {
	Platforms int `json:"platforms"`
	Companies int `json:"companies"`
	Overrides int `json:"overrides"`
}

// ImportDefinitions upserts curated definitions into the catalog.
func (s *Store) ImportDefinitions(defs *Definitions) (*DefinitionCounts, error) {
	counts := &DefinitionCounts{}

	for i := range defs.Platforms {
		if err := s.UpsertPlatform(&defs.Platforms[i]); err != nil {
			return counts, err
		}
		counts.Platforms++
	}
	for i := range defs.Companies {
		if err := s.UpsertCompany(&defs.Companies[i]); err != nil {
			return counts, err
		}
		counts.Companies++
	}
	for i := range defs.Overrides {
		if err := s.UpsertOverride(&defs.Overrides[i]); err != nil {
			return counts, err
		}
		counts.Overrides++
	}

	if s.logger != nil {
		s.logger.Info("curated definitions imported",
			zap.Int("platforms", counts.Platforms),
			zap.Int("companies", counts.Companies),
			zap.Int("overrides", counts.Overrides),
		)
	}
	return counts, nil
}
