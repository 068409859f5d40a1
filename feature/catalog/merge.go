package catalog

import (
	"fmt"
	"strconv"
	"time"

	"rom-curator/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckField applies the first-writer-wins conflict policy to one field.
//
// It returns false and writes nothing when the existing value is empty or
// equals the new value. When both values are present and unequal it inserts
// exactly one unresolved Disagreement capturing both sources and values,
// leaves the existing value authoritative, and returns true.
func (s *Store) CheckField(tx *gorm.DB, entityType string, entityID int64, field, sourceA, existing, sourceB, newValue string) (bool, error) {
	if existing == "" || existing == newValue {
		return false, nil
	}

	row := models.Disagreement{
		EntityType: entityType,
		EntityID:   entityID,
		Field:      field,
		SourceA:    sourceA,
		ValueA:     existing,
		SourceB:    sourceB,
		ValueB:     newValue,
		Resolved:   false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.Create(&row).Error; err != nil {
		return false, fmt.Errorf("record disagreement on %s %d field %s: %w", entityType, entityID, field, err)
	}

	if s.logger != nil {
		s.logger.Info("field disagreement recorded",
			zap.String("entity_type", entityType),
			zap.Int64("entity_id", entityID),
			zap.String("field", field),
			zap.String(sourceA, existing),
			zap.String(sourceB, newValue),
		)
	}
	return true, nil
}

// ReleaseFacts is one source's proposed values for a release's mutable
// fields. Empty strings and zero players mean the source has no value.
type ReleaseFacts struct {
	Title       string
	AltTitle    string
	ReleaseDate string
	Serial      string
	Genre       string
	Players     int
	Rating      string
	Description string
	ExternalID  string
}

// MergeReleaseFields merges one source's facts into a release.
//
// Each field is handled independently: an empty existing value is filled in
// from the new source; equal values are left alone; a conflict keeps the
// existing value and records a Disagreement. The whole merge runs in one
// transaction so a mid-merge failure leaves the release untouched. Returns
// the number of fields that produced a disagreement.
func (s *Store) MergeReleaseFields(releaseID int64, existingSource, newSource string, facts ReleaseFacts) (int, error) {
	disagreements := 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var release models.Release
		if err := tx.First(&release, releaseID).Error; err != nil {
			return fmt.Errorf("load release %d: %w", releaseID, err)
		}

		fields := []struct {
			name     string
			existing *string
			proposed string
		}{
			{"title", &release.Title, facts.Title},
			{"alt_title", &release.AltTitle, facts.AltTitle},
			{"release_date", &release.ReleaseDate, facts.ReleaseDate},
			{"serial", &release.Serial, facts.Serial},
			{"genre", &release.Genre, facts.Genre},
			{"rating", &release.Rating, facts.Rating},
			{"description", &release.Description, facts.Description},
			{"external_id", &release.ExternalID, facts.ExternalID},
		}

		for _, f := range fields {
			if f.proposed == "" {
				continue
			}
			if *f.existing == "" {
				*f.existing = f.proposed
				continue
			}
			conflicted, err := s.CheckField(tx, "release", release.ID, f.name, existingSource, *f.existing, newSource, f.proposed)
			if err != nil {
				return err
			}
			if conflicted {
				disagreements++
			}
		}

		// Players is numeric; zero means the source has no value.
		if facts.Players != 0 {
			if release.Players == 0 {
				release.Players = facts.Players
			} else if release.Players != facts.Players {
				conflicted, err := s.CheckField(tx, "release", release.ID, "players",
					existingSource, strconv.Itoa(release.Players), newSource, strconv.Itoa(facts.Players))
				if err != nil {
					return err
				}
				if conflicted {
					disagreements++
				}
			}
		}

		return tx.Save(&release).Error
	})
	if err != nil {
		return 0, err
	}
	return disagreements, nil
}
