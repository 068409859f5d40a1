package checks

import (
	"gorm.io/gorm"
)

// ReferenceReport lists every row whose parent is missing.
type ReferenceReport struct {
	// ReleasesMissingWork lists release ids pointing at a deleted work.
	ReleasesMissingWork []int64 `json:"releases_missing_work"`
	// ReleasesMissingPlatform lists release ids pointing at an unknown
	// platform.
	ReleasesMissingPlatform []int64 `json:"releases_missing_platform"`
	// MediaMissingRelease lists media ids pointing at a deleted release.
	MediaMissingRelease []int64 `json:"media_missing_release"`
}

// Clean reports whether no dangling reference was found.
func (r ReferenceReport) Clean() bool {
	return len(r.ReleasesMissingWork) == 0 &&
		len(r.ReleasesMissingPlatform) == 0 &&
		len(r.MediaMissingRelease) == 0
}

// CheckReferences scans the catalog for rows whose parent row is gone. The
// store's write paths verify references, so findings here indicate external
// edits or an interrupted migration.
func CheckReferences(db *gorm.DB) (ReferenceReport, error) {
	var report ReferenceReport

	err := db.Table("releases").
		Joins("LEFT JOIN works ON works.id = releases.work_id").
		Where("works.id IS NULL").
		Pluck("releases.id", &report.ReleasesMissingWork).Error
	if err != nil {
		return report, err
	}

	err = db.Table("releases").
		Joins("LEFT JOIN platforms ON platforms.id = releases.platform_id").
		Where("platforms.id IS NULL").
		Pluck("releases.id", &report.ReleasesMissingPlatform).Error
	if err != nil {
		return report, err
	}

	err = db.Table("media").
		Joins("LEFT JOIN releases ON releases.id = media.release_id").
		Where("releases.id IS NULL").
		Pluck("media.id", &report.MediaMissingRelease).Error
	if err != nil {
		return report, err
	}

	return report, nil
}

// CountUnresolved returns the number of disagreements awaiting curation.
func CountUnresolved(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Table("disagreements").Where("resolved = ?", false).Count(&count).Error
	return count, err
}
