package catalog

import (
	"testing"

	"rom-curator/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMedia(t *testing.T, store *Store, releaseID int64, datName string) int64 {
	t.Helper()
	media := models.Media{ReleaseID: releaseID, DumpStatus: "verified", DatName: datName}
	require.NoError(t, store.CreateMedia(&media))
	return media.ID
}

func TestApplyOverridesGlobMatch(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)
	matched := seedMedia(t, store, releaseID, "Super Mario Bros. (USA)")
	unmatched := seedMedia(t, store, releaseID, "Duck Hunt (USA)")

	require.NoError(t, store.UpsertOverride(&models.Override{
		ID: 1, EntityType: "media", Pattern: "Super Mario*", Field: "serial", Value: "NES-SM-USA",
	}))

	result, err := store.ApplyOverrides()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Applied)
	assert.Empty(t, result.Skipped)

	var m models.Media
	require.NoError(t, store.DB().First(&m, matched).Error)
	assert.Equal(t, "NES-SM-USA", m.Serial)

	var m2 models.Media
	require.NoError(t, store.DB().First(&m2, unmatched).Error)
	assert.Empty(t, m2.Serial)
}

func TestApplyOverridesNoMatchIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)
	seedMedia(t, store, releaseID, "Super Mario Bros. (USA)")

	require.NoError(t, store.UpsertOverride(&models.Override{
		ID: 1, EntityType: "media", Pattern: "Sonic*", Field: "serial", Value: "MK-1001",
	}))

	result, err := store.ApplyOverrides()
	require.NoError(t, err)
	assert.Zero(t, result.Matched)
	assert.Zero(t, result.Applied)
	assert.Empty(t, result.Skipped)
}

func TestApplyOverridesBadPatternIsSkipped(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)
	seedMedia(t, store, releaseID, "Super Mario Bros. (USA)")

	require.NoError(t, store.UpsertOverride(&models.Override{
		ID: 1, EntityType: "media", Pattern: "[", Field: "serial", Value: "x",
	}))

	result, err := store.ApplyOverrides()
	require.NoError(t, err)
	assert.Len(t, result.Skipped, 1)
	assert.Zero(t, result.Applied)
}

func TestApplyOverridesUnknownFieldIsSkipped(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)
	seedMedia(t, store, releaseID, "Super Mario Bros. (USA)")

	require.NoError(t, store.UpsertOverride(&models.Override{
		ID: 1, EntityType: "media", Pattern: "*", Field: "crc", Value: "00000000",
	}))

	result, err := store.ApplyOverrides()
	require.NoError(t, err)
	assert.Len(t, result.Skipped, 1)
	assert.Zero(t, result.Applied)
}

func TestApplyOverridesReleaseTarget(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)
	seedMedia(t, store, releaseID, "Super Mario Bros. (USA)")

	require.NoError(t, store.UpsertOverride(&models.Override{
		ID: 1, EntityType: "release", Pattern: "Super Mario*", Field: "players", Value: "2",
	}))

	result, err := store.ApplyOverrides()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	release, err := store.FindReleaseByID(releaseID)
	require.NoError(t, err)
	assert.Equal(t, 2, release.Players)
}

func TestApplyOverridesPlatformScope(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)
	seedMedia(t, store, releaseID, "Super Mario Bros. (USA)")

	otherPlatform := int64(2)
	require.NoError(t, store.UpsertOverride(&models.Override{
		ID: 1, EntityType: "media", PlatformID: &otherPlatform,
		Pattern: "Super Mario*", Field: "serial", Value: "x",
	}))

	result, err := store.ApplyOverrides()
	require.NoError(t, err)
	assert.Zero(t, result.Matched, "override scoped to another platform must not match")
}
