package importer

import (
	"fmt"
	"strings"
	"time"

	"rom-curator/core/nametag"
	"rom-curator/feature/catalog"
	"rom-curator/feature/catalog/models"
	"rom-curator/feature/dat"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Importer writes reference records into the catalog.
type Importer struct {
	store  *catalog.Store
	logger *zap.Logger
}

// NewImporter creates a new importer over the given catalog store.
func NewImporter(store *catalog.Store, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// Result summarizes one import batch.
type Result struct {
	// LogID is the audit row written for this batch.
	LogID string `json:"log_id"`
	// Source is the reference list tag the media rows carry.
	Source string `json:"source"`
	// Works is the number of works created.
	Works int `json:"works"`
	// Releases is the number of releases created.
	Releases int `json:"releases"`
	// Media is the number of media rows created.
	Media int `json:"media"`
	// Disagreements is the number of field conflicts recorded during merging.
	Disagreements int `json:"disagreements"`
	// Skipped is the number of records dropped for unparseable names or
	// failed writes.
	Skipped int `json:"skipped"`
}

// ImportRecords loads one source's records for one platform. Bad records are
// skipped and counted; the batch itself only fails on storage errors that
// indicate the catalog is unusable.
func (i *Importer) ImportRecords(platformID int64, source string, records []dat.ReferenceRecord) (*Result, error) {
	result := &Result{LogID: uuid.NewString(), Source: source}

	for _, record := range records {
		if err := i.importRecord(platformID, source, record, result); err != nil {
			result.Skipped++
			if i.logger != nil {
				i.logger.Warn("record skipped",
					zap.String("source", source),
					zap.String("name", record.Title),
					zap.Error(err),
				)
			}
		}
	}

	logRow := models.ImportLog{
		ID:            result.LogID,
		Source:        source,
		CreatedAt:     time.Now().UTC(),
		Works:         result.Works,
		Releases:      result.Releases,
		Media:         result.Media,
		Disagreements: result.Disagreements,
		Skipped:       result.Skipped,
	}
	if err := i.store.AppendImportLog(&logRow); err != nil {
		return result, fmt.Errorf("append import log: %w", err)
	}

	if i.logger != nil {
		i.logger.Info("import batch finished",
			zap.String("source", source),
			zap.Int64("platform_id", platformID),
			zap.Int("works", result.Works),
			zap.Int("releases", result.Releases),
			zap.Int("media", result.Media),
			zap.Int("disagreements", result.Disagreements),
			zap.Int("skipped", result.Skipped),
		)
	}
	return result, nil
}

func (i *Importer) importRecord(platformID int64, source string, record dat.ReferenceRecord, result *Result) error {
	parsed, err := nametag.Parse(record.Title)
	if err != nil {
		return err
	}

	work, err := i.findOrCreateWork(parsed.Title, result)
	if err != nil {
		return err
	}

	region := strings.Join(parsed.Regions, ", ")
	release, err := i.findOrCreateRelease(work.ID, platformID, region, parsed, record, result)
	if err != nil {
		return err
	}

	conflicts, err := i.mergeSerial(release, source, record.Serial)
	if err != nil {
		return err
	}
	result.Disagreements += conflicts

	return i.createMedia(release.ID, source, parsed, record, result)
}

// findOrCreateWork resolves the work for a parsed title.
func (i *Importer) findOrCreateWork(title string, result *Result) (*models.Work, error) {
	work, err := i.store.FindWorkByTitle(title)
	if err != nil {
		return nil, err
	}
	if work != nil {
		return work, nil
	}
	work = &models.Work{Title: title}
	if err := i.store.CreateWork(work); err != nil {
		return nil, err
	}
	result.Works++
	return work, nil
}

// findOrCreateRelease resolves the release for a (work, platform, region)
// triple, creating it from the parsed name when absent.
func (i *Importer) findOrCreateRelease(workID, platformID int64, region string, parsed nametag.Parsed, record dat.ReferenceRecord, result *Result) (*models.Release, error) {
	existing, err := i.store.FindReleases(workID, platformID, region)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	release := &models.Release{
		WorkID:     workID,
		PlatformID: platformID,
		Region:     region,
		Title:      parsed.Title,
		Serial:     record.Serial,
	}
	if err := i.store.CreateRelease(release); err != nil {
		return nil, err
	}
	result.Releases++
	return release, nil
}

// mergeSerial applies the first-writer-wins policy to the release serial.
// The catalog does not track which source wrote each field, so the existing
// side is attributed to the catalog itself.
func (i *Importer) mergeSerial(release *models.Release, source, serial string) (int, error) {
	return i.store.MergeReleaseFields(release.ID, "catalog", source, catalog.ReleaseFacts{
		Serial: serial,
	})
}

// createMedia writes the record's media row, skipping exact re-imports of
// the same name from the same source list.
func (i *Importer) createMedia(releaseID int64, source string, parsed nametag.Parsed, record dat.ReferenceRecord, result *Result) error {
	var count int64
	err := i.store.DB().Model(&models.Media{}).
		Where("release_id = ? AND dat_name = ? AND dat_source = ?", releaseID, record.Title, source).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	media := models.Media{
		ReleaseID:  releaseID,
		Serial:     record.Serial,
		DiscNumber: parsed.DiscNumber,
		DiscLabel:  parsed.DiscLabel,
		Revision:   parsed.Revision,
		DumpStatus: string(parsed.DumpStatus),
		DatName:    record.Title,
		DatSource:  source,
		Size:       record.Size,
		CRC:        record.CRC,
		SHA1:       record.SHA1,
		MD5:        record.MD5,
	}
	if err := i.store.CreateMedia(&media); err != nil {
		return err
	}
	result.Media++
	return nil
}
