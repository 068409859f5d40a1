package checks

import (
	"path/filepath"
	"testing"

	"rom-curator/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	require.NoError(t, db.Create(&models.SchemaInfo{ID: 1, Version: models.SchemaVersion}).Error)
	return db
}

func TestCheckReferencesClean(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Platform{ID: 1, Name: "NES", MediaType: "cartridge"}).Error)
	work := models.Work{Title: "Super Mario Bros."}
	require.NoError(t, db.Create(&work).Error)
	release := models.Release{WorkID: work.ID, PlatformID: 1, Region: "USA", Title: work.Title}
	require.NoError(t, db.Create(&release).Error)
	require.NoError(t, db.Create(&models.Media{ReleaseID: release.ID, DumpStatus: "verified"}).Error)

	report, err := CheckReferences(db)
	require.NoError(t, err)
	assert.True(t, report.Clean())
}

func TestCheckReferencesFindsDanglingRows(t *testing.T) {
	db := testDB(t)
	// Release 1 points at a work and platform that were never created;
	// media 1 points at a release that does not exist.
	require.NoError(t, db.Create(&models.Release{ID: 1, WorkID: 77, PlatformID: 88, Region: "USA", Title: "Ghost"}).Error)
	require.NoError(t, db.Create(&models.Media{ID: 1, ReleaseID: 99, DumpStatus: "verified"}).Error)

	report, err := CheckReferences(db)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []int64{1}, report.ReleasesMissingWork)
	assert.Equal(t, []int64{1}, report.ReleasesMissingPlatform)
	assert.Equal(t, []int64{1}, report.MediaMissingRelease)
}

func TestCountUnresolved(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Disagreement{
		EntityType: "release", EntityID: 1, Field: "genre",
		SourceA: "dat", ValueA: "Action", SourceB: "gamesdb", ValueB: "Platformer",
	}).Error)
	require.NoError(t, db.Create(&models.Disagreement{
		EntityType: "release", EntityID: 2, Field: "serial",
		SourceA: "dat", ValueA: "a", SourceB: "redump", ValueB: "b",
		Resolved: true,
	}).Error)

	count, err := CountUnresolved(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCheckSchemaClean(t *testing.T) {
	db := testDB(t)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, models.SchemaVersion, report.Version)
	assert.Empty(t, report.MissingTables)
}

func TestCheckSchemaDetectsMissingTable(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Override{}))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Contains(t, report.MissingTables, "overrides")
}

func TestCheckSchemaDetectsVersionDrift(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Model(&models.SchemaInfo{}).Where("id = ?", 1).
		Update("version", models.SchemaVersion+1).Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, models.SchemaVersion+1, report.Version)
}
