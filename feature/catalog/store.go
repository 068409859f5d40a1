package catalog

import (
	"errors"
	"fmt"
	"strings"

	"rom-curator/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMissingReference marks a write that references a nonexistent entity
// (release without its work or platform, media without its release). The
// offending write fails; unrelated rows are never touched.
var ErrMissingReference = errors.New("referenced entity does not exist")

// ErrSchemaVersion marks a catalog persisted with an incompatible schema
// version.
var ErrSchemaVersion = errors.New("incompatible catalog schema version")

// Store provides persistence operations over the catalog entity graph.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore migrates the schema if needed, verifies the schema version
// marker, and returns a ready store.
func NewStore(db *gorm.DB, logger *zap.Logger) (*Store, error) {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}

	var info models.SchemaInfo
	err := db.First(&info, 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		info = models.SchemaInfo{ID: 1, Version: models.SchemaVersion}
		if err := db.Create(&info).Error; err != nil {
			return nil, fmt.Errorf("write schema version marker: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read schema version marker: %w", err)
	case info.Version != models.SchemaVersion:
		return nil, fmt.Errorf("%w: catalog has version %d, this build supports %d",
			ErrSchemaVersion, info.Version, models.SchemaVersion)
	}

	return &Store{db: db, logger: logger}, nil
}

// DB exposes the underlying connection for engines that manage their own
// transactions (reconciliation).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside one database transaction.
func (s *Store) Transaction(fn func(tx *gorm.DB) error) error {
	return s.db.Transaction(fn)
}

// UpsertPlatform writes a curated platform definition, replacing its
// region release dates and relations. Idempotent by id.
func (s *Store) UpsertPlatform(platform *models.Platform) error {
	if platform.ID == 0 {
		return fmt.Errorf("upsert platform: id is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Omit("ReleaseDates", "Relations").Create(platform).Error; err != nil {
			return fmt.Errorf("upsert platform %d: %w", platform.ID, err)
		}
		if err := tx.Where("platform_id = ?", platform.ID).Delete(&models.PlatformReleaseDate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("platform_id = ?", platform.ID).Delete(&models.PlatformRelation{}).Error; err != nil {
			return err
		}
		for i := range platform.ReleaseDates {
			platform.ReleaseDates[i].ID = 0
			platform.ReleaseDates[i].PlatformID = platform.ID
		}
		for i := range platform.Relations {
			platform.Relations[i].ID = 0
			platform.Relations[i].PlatformID = platform.ID
		}
		if len(platform.ReleaseDates) > 0 {
			if err := tx.Create(&platform.ReleaseDates).Error; err != nil {
				return err
			}
		}
		if len(platform.Relations) > 0 {
			if err := tx.Create(&platform.Relations).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertCompany writes a curated company definition, replacing its aliases.
// Idempotent by id.
func (s *Store) UpsertCompany(company *models.Company) error {
	if company.ID == 0 {
		return fmt.Errorf("upsert company: id is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Omit("Aliases").Create(company).Error; err != nil {
			return fmt.Errorf("upsert company %d: %w", company.ID, err)
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.CompanyAlias{}).Error; err != nil {
			return err
		}
		for i := range company.Aliases {
			company.Aliases[i].ID = 0
			company.Aliases[i].CompanyID = company.ID
		}
		if len(company.Aliases) > 0 {
			if err := tx.Create(&company.Aliases).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertOverride writes a curated override. Idempotent by id.
func (s *Store) UpsertOverride(override *models.Override) error {
	if override.ID == 0 {
		return fmt.Errorf("upsert override: id is required")
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(override).Error; err != nil {
		return fmt.Errorf("upsert override %d: %w", override.ID, err)
	}
	return nil
}

// ResolveCompany maps a free-text publisher/developer string to a company
// id through canonical names and aliases.
func (s *Store) ResolveCompany(name string) (*int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}

	var company models.Company
	err := s.db.Where("name = ?", trimmed).First(&company).Error
	if err == nil {
		return &company.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var alias models.CompanyAlias
	err = s.db.Where("alias = ?", trimmed).First(&alias).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alias.CompanyID, nil
}

// CreateWork inserts a new work.
func (s *Store) CreateWork(work *models.Work) error {
	return s.db.Create(work).Error
}

// FindWorkByTitle returns the work with the exact title, or nil.
func (s *Store) FindWorkByTitle(title string) (*models.Work, error) {
	var work models.Work
	err := s.db.Where("title = ?", title).First(&work).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// CreateRelease inserts a release after verifying its work and platform
// exist.
func (s *Store) CreateRelease(release *models.Release) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Work{}, release.WorkID, "work"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.Platform{}, release.PlatformID, "platform"); err != nil {
			return err
		}
		return tx.Create(release).Error
	})
}

// SaveRelease persists changes to an existing release.
func (s *Store) SaveRelease(release *models.Release) error {
	return s.db.Save(release).Error
}

// CreateMedia inserts a media row after verifying its release exists.
func (s *Store) CreateMedia(media *models.Media) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Release{}, media.ReleaseID, "release"); err != nil {
			return err
		}
		return tx.Create(media).Error
	})
}

// FindReleaseByID returns the release with its media preloaded, or nil.
func (s *Store) FindReleaseByID(id int64) (*models.Release, error) {
	var release models.Release
	err := s.db.Preload("Media").First(&release, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &release, nil
}

// FindReleases returns releases matching a work/platform/region triple.
func (s *Store) FindReleases(workID, platformID int64, region string) ([]models.Release, error) {
	var releases []models.Release
	err := s.db.Where("work_id = ? AND platform_id = ? AND region = ?", workID, platformID, region).
		Order("id").Find(&releases).Error
	return releases, err
}

// SearchReleases returns releases whose title contains the substring,
// case-insensitively.
func (s *Store) SearchReleases(titleSubstring string, limit int) ([]models.Release, error) {
	if limit <= 0 {
		limit = 50
	}
	var releases []models.Release
	pattern := "%" + strings.ToLower(strings.TrimSpace(titleSubstring)) + "%"
	err := s.db.Where("LOWER(title) LIKE ?", pattern).Order("id").Limit(limit).Find(&releases).Error
	return releases, err
}

// FindMediaByCRC returns media rows with the given CRC32, case-insensitively.
func (s *Store) FindMediaByCRC(crc string) ([]models.Media, error) {
	var media []models.Media
	err := s.db.Where("LOWER(crc) = ?", strings.ToLower(strings.TrimSpace(crc))).Find(&media).Error
	return media, err
}

// FindMediaBySHA1 returns media rows with the given SHA1, case-insensitively.
func (s *Store) FindMediaBySHA1(sha1 string) ([]models.Media, error) {
	var media []models.Media
	err := s.db.Where("LOWER(sha1) = ?", strings.ToLower(strings.TrimSpace(sha1))).Find(&media).Error
	return media, err
}

// FindMediaBySerial returns media rows carrying the given serial.
func (s *Store) FindMediaBySerial(serial string) ([]models.Media, error) {
	var media []models.Media
	err := s.db.Where("serial = ?", strings.TrimSpace(serial)).Find(&media).Error
	return media, err
}

// ListDisagreements returns disagreement rows, optionally only unresolved
// ones, newest first.
func (s *Store) ListDisagreements(unresolvedOnly bool) ([]models.Disagreement, error) {
	q := s.db.Order("created_at DESC")
	if unresolvedOnly {
		q = q.Where("resolved = ?", false)
	}
	var rows []models.Disagreement
	err := q.Find(&rows).Error
	return rows, err
}

// ResolveDisagreement marks one disagreement resolved. Resolution is the
// only way a disagreement row leaves the unresolved set.
func (s *Store) ResolveDisagreement(id int64) error {
	result := s.db.Model(&models.Disagreement{}).Where("id = ?", id).Update("resolved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resolve disagreement %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// AppendImportLog writes one audit row.
func (s *Store) AppendImportLog(log *models.ImportLog) error {
	return s.db.Create(log).Error
}

// Stats holds per-entity row counts.
type Stats struct {
	Platforms     int64 `json:"platforms"`
	Companies     int64 `json:"companies"`
	Works         int64 `json:"works"`
	Releases      int64 `json:"releases"`
	Media         int64 `json:"media"`
	Overrides     int64 `json:"overrides"`
	Disagreements int64 `json:"disagreements"`
	Unresolved    int64 `json:"unresolved_disagreements"`
	ImportLogs    int64 `json:"import_logs"`
}

// Stats counts rows per entity type.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Platform{}, &stats.Platforms},
		{&models.Company{}, &stats.Companies},
		{&models.Work{}, &stats.Works},
		{&models.Release{}, &stats.Releases},
		{&models.Media{}, &stats.Media},
		{&models.Override{}, &stats.Overrides},
		{&models.Disagreement{}, &stats.Disagreements},
		{&models.ImportLog{}, &stats.ImportLogs},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.Model(&models.Disagreement{}).Where("resolved = ?", false).Count(&stats.Unresolved).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// requireExists verifies a referenced row exists inside the current
// transaction.
func requireExists(tx *gorm.DB, model any, id int64, kind string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrMissingReference)
	}
	return nil
}
