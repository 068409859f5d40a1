package catalog

import (
	"testing"

	"rom-curator/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFieldFillsNothingWhenExistingEmpty(t *testing.T) {
	store := newTestStore(t)

	conflicted, err := store.CheckField(store.DB(), "release", 1, "genre", "dat", "", "gamesdb", "Platformer")
	require.NoError(t, err)
	assert.False(t, conflicted)

	var count int64
	require.NoError(t, store.DB().Model(&models.Disagreement{}).Count(&count).Error)
	assert.Zero(t, count, "empty existing value is a fill, not a conflict")
}

func TestCheckFieldEqualValuesAgree(t *testing.T) {
	store := newTestStore(t)

	conflicted, err := store.CheckField(store.DB(), "release", 1, "genre", "dat", "Platformer", "gamesdb", "Platformer")
	require.NoError(t, err)
	assert.False(t, conflicted)
}

func TestCheckFieldRecordsConflict(t *testing.T) {
	store := newTestStore(t)

	conflicted, err := store.CheckField(store.DB(), "release", 5, "release_date",
		"dat", "1985-10-18", "gamesdb", "1985-09-13")
	require.NoError(t, err)
	assert.True(t, conflicted)

	var rows []models.Disagreement
	require.NoError(t, store.DB().Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "release", rows[0].EntityType)
	assert.Equal(t, int64(5), rows[0].EntityID)
	assert.Equal(t, "release_date", rows[0].Field)
	assert.Equal(t, "1985-10-18", rows[0].ValueA)
	assert.Equal(t, "1985-09-13", rows[0].ValueB)
	assert.False(t, rows[0].Resolved)
}

func TestMergeReleaseFieldsFillsEmptyFields(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)

	disagreements, err := store.MergeReleaseFields(releaseID, "dat", "gamesdb", ReleaseFacts{
		ReleaseDate: "1985-09-13",
		Genre:       "Platformer",
		Players:     2,
	})
	require.NoError(t, err)
	assert.Zero(t, disagreements)

	release, err := store.FindReleaseByID(releaseID)
	require.NoError(t, err)
	assert.Equal(t, "1985-09-13", release.ReleaseDate)
	assert.Equal(t, "Platformer", release.Genre)
	assert.Equal(t, 2, release.Players)
}

func TestMergeReleaseFieldsKeepsFirstWriter(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)

	_, err := store.MergeReleaseFields(releaseID, "", "dat", ReleaseFacts{ReleaseDate: "1985-10-18"})
	require.NoError(t, err)

	disagreements, err := store.MergeReleaseFields(releaseID, "dat", "gamesdb", ReleaseFacts{ReleaseDate: "1985-09-13"})
	require.NoError(t, err)
	assert.Equal(t, 1, disagreements)

	// The first source's value stays authoritative.
	release, err := store.FindReleaseByID(releaseID)
	require.NoError(t, err)
	assert.Equal(t, "1985-10-18", release.ReleaseDate)

	rows, err := store.ListDisagreements(true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1985-10-18", rows[0].ValueA)
	assert.Equal(t, "1985-09-13", rows[0].ValueB)
}

func TestMergeReleaseFieldsIgnoresAbsentValues(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)

	_, err := store.MergeReleaseFields(releaseID, "", "dat", ReleaseFacts{Genre: "Platformer", Players: 2})
	require.NoError(t, err)

	// An empty string and zero players mean the source has no value, so
	// nothing conflicts and nothing is overwritten.
	disagreements, err := store.MergeReleaseFields(releaseID, "dat", "gamesdb", ReleaseFacts{})
	require.NoError(t, err)
	assert.Zero(t, disagreements)

	release, err := store.FindReleaseByID(releaseID)
	require.NoError(t, err)
	assert.Equal(t, "Platformer", release.Genre)
	assert.Equal(t, 2, release.Players)
}

func TestMergeReleaseFieldsPlayersConflict(t *testing.T) {
	store := newTestStore(t)
	releaseID := seedReleaseGraph(t, store)

	_, err := store.MergeReleaseFields(releaseID, "", "dat", ReleaseFacts{Players: 1})
	require.NoError(t, err)

	disagreements, err := store.MergeReleaseFields(releaseID, "dat", "gamesdb", ReleaseFacts{Players: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, disagreements)

	rows, err := store.ListDisagreements(true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "players", rows[0].Field)
	assert.Equal(t, "1", rows[0].ValueA)
	assert.Equal(t, "2", rows[0].ValueB)
}
