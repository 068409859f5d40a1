package repair

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"rom-curator/feature/dat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPaddedIndex returns an index whose single record carries the hashes
// of content padded per the given strategy.
func buildPaddedIndex(t *testing.T, content []byte, strategy Strategy) *dat.Index {
	t.Helper()
	digest, err := HashPadded(bytes.NewReader(content), strategy)
	require.NoError(t, err)
	return dat.BuildIndex([]dat.ReferenceRecord{{
		Title: "Padded Game (USA)",
		CRC:   digest.CRC,
		SHA1:  digest.SHA1,
		Size:  digest.Size,
		Kind:  dat.KindCartridge,
	}})
}

func TestMatchReaderFindsSecondHypothesis(t *testing.T) {
	content := []byte("short cartridge dump")
	winning := Strategy{Append: 1024, Fill: 0xFF}
	index := buildPaddedIndex(t, content, winning)

	strategies := []Strategy{
		{Append: 1024, Fill: 0x00},
		winning,
	}

	match, err := MatchReader(bytes.NewReader(content), index, strategies)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Padded Game (USA)", match.Record.Title)
	assert.Equal(t, "append 1 KB of 0xFF", match.Method)
	assert.Equal(t, int64(1024), match.BytesAdded)
}

func TestMatchReaderNoHypothesisMatches(t *testing.T) {
	index := dat.BuildIndex([]dat.ReferenceRecord{{Title: "Other", CRC: "12345678"}})

	match, err := MatchReader(bytes.NewReader([]byte("unknown dump")), index, []Strategy{
		{Append: 16, Fill: 0x00},
		{Append: 16, Fill: 0xFF},
	})
	require.NoError(t, err)
	assert.Nil(t, match, "no match is an expected outcome, not an error")
}

func TestMatchFile(t *testing.T) {
	content := []byte("disc image missing pregap")
	winning := Strategy{Prepend: PregapBytes, Fill: 0x00}
	index := buildPaddedIndex(t, content, winning)

	path := filepath.Join(t.TempDir(), "dump.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	match, err := MatchFile(path, index, BuildStrategies(int64(len(content)), 0, dat.KindOpticalDisc))
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, int64(PregapBytes), match.BytesAdded)
}

func TestMatchFileEmptyStrategies(t *testing.T) {
	match, err := MatchFile("does-not-matter", dat.BuildIndex(nil), nil)
	require.NoError(t, err)
	assert.Nil(t, match)
}
