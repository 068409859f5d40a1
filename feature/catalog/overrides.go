package catalog

import (
	"fmt"
	"strconv"

	"rom-curator/feature/catalog/models"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OverrideResult summarizes one override application pass.
type OverrideResult struct {
	// Applied is the number of entity rows an override changed.
	Applied int
	// Matched is the number of (override, media) pattern matches.
	Matched int
	// Skipped collects overrides that could not be applied (bad pattern or
	// unknown target field). They never abort the pass.
	Skipped []error
}

// ApplyOverrides matches every stored override's glob pattern against every
// media's recorded dat-name and writes the replacement values. Overrides
// matching no media are silently skipped; the pass runs in one transaction.
func (s *Store) ApplyOverrides() (*OverrideResult, error) {
	result := &OverrideResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var overrides []models.Override
		if err := tx.Order("id").Find(&overrides).Error; err != nil {
			return err
		}

		for _, override := range overrides {
			matcher, err := glob.Compile(override.Pattern)
			if err != nil {
				result.Skipped = append(result.Skipped, fmt.Errorf("override %d: bad pattern %q: %w", override.ID, override.Pattern, err))
				continue
			}

			media, err := loadOverrideCandidates(tx, override)
			if err != nil {
				return err
			}

			for _, m := range media {
				if m.DatName == "" || !matcher.Match(m.DatName) {
					continue
				}
				result.Matched++
				applied, err := applyOverride(tx, override, m)
				if err != nil {
					result.Skipped = append(result.Skipped, err)
					continue
				}
				if applied {
					result.Applied++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("override pass finished",
			zap.Int("applied", result.Applied),
			zap.Int("matched", result.Matched),
			zap.Int("skipped", len(result.Skipped)),
		)
	}
	return result, nil
}

// loadOverrideCandidates returns the media rows an override may apply to,
// honoring its optional platform scope.
func loadOverrideCandidates(tx *gorm.DB, override models.Override) ([]models.Media, error) {
	q := tx.Model(&models.Media{}).Where("dat_name <> ''")
	if override.PlatformID != nil {
		q = q.Joins("JOIN releases ON releases.id = media.release_id").
			Where("releases.platform_id = ?", *override.PlatformID)
	}
	var media []models.Media
	if err := q.Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// applyOverride writes one override's replacement value onto the matched
// media or its owning release.
func applyOverride(tx *gorm.DB, override models.Override, media models.Media) (bool, error) {
	switch override.EntityType {
	case "media":
		column, value, err := mediaOverrideColumn(override.Field, override.Value)
		if err != nil {
			return false, fmt.Errorf("override %d: %w", override.ID, err)
		}
		return true, tx.Model(&models.Media{}).Where("id = ?", media.ID).Update(column, value).Error
	case "release":
		column, value, err := releaseOverrideColumn(override.Field, override.Value)
		if err != nil {
			return false, fmt.Errorf("override %d: %w", override.ID, err)
		}
		return true, tx.Model(&models.Release{}).Where("id = ?", media.ReleaseID).Update(column, value).Error
	default:
		return false, fmt.Errorf("override %d: unknown entity type %q", override.ID, override.EntityType)
	}
}

func mediaOverrideColumn(field, value string) (string, any, error) {
	switch field {
	case "serial", "disc_label", "revision", "dump_status", "dat_source":
		return field, value, nil
	case "disc_number":
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", nil, fmt.Errorf("disc_number value %q is not an integer", value)
		}
		return field, n, nil
	default:
		return "", nil, fmt.Errorf("unknown media field %q", field)
	}
}

func releaseOverrideColumn(field, value string) (string, any, error) {
	switch field {
	case "title", "alt_title", "region", "release_date", "serial", "genre", "rating", "description", "external_id":
		return field, value, nil
	case "players":
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", nil, fmt.Errorf("players value %q is not an integer", value)
		}
		return field, n, nil
	default:
		return "", nil, fmt.Errorf("unknown release field %q", field)
	}
}
