package dat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDAT = `<?xml version="1.0"?>
<datafile>
  <header>
    <name>Test System</name>
    <description>Test System reference list</description>
    <version>20240101</version>
  </header>
  <game name="Alpha (USA)">
    <description>Alpha (USA)</description>
    <rom name="Alpha (USA).bin" size="131072" crc="337BD6F1" md5="d41d8cd98f00b204e9800998ecf8427e" sha1="aabb"/>
  </game>
  <game name="Beta (Europe) (Rev A)">
    <serial>SLES-12345</serial>
    <rom name="Beta (Europe) (Rev A).bin" size="262144" crc="DEADBEEF" sha1="ccdd"/>
  </game>
  <game name="Broken Size">
    <rom name="broken.bin" size="not-a-number" crc="00000001"/>
  </game>
  <game name="">
    <rom name="anon.bin" size="1" crc="00000002"/>
  </game>
</datafile>`

func TestParse(t *testing.T) {
	result, err := Parse(strings.NewReader(sampleDAT), KindCartridge)
	require.NoError(t, err)

	assert.Equal(t, "Test System", result.Header.Name)
	assert.Equal(t, "20240101", result.Header.Version)

	require.Len(t, result.Records, 2)
	assert.Equal(t, ReferenceRecord{
		Title: "Alpha (USA)",
		CRC:   "337BD6F1",
		SHA1:  "aabb",
		MD5:   "d41d8cd98f00b204e9800998ecf8427e",
		Size:  131072,
		Kind:  KindCartridge,
	}, result.Records[0])

	// Game-level serial propagates to the rom record.
	assert.Equal(t, "SLES-12345", result.Records[1].Serial)

	// The invalid size and the nameless game are skipped, not fatal.
	assert.Len(t, result.Skipped, 2)
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse(strings.NewReader(sampleDAT), SourceKind("tape"))
	assert.Error(t, err)
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse(strings.NewReader("<datafile><game name="), KindCartridge)
	assert.Error(t, err)
}

func TestLoaderCachesByModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dat")
	require.NoError(t, os.WriteFile(path, []byte(sampleDAT), 0o644))

	loader := NewLoader()
	idx1, result, err := loader.Load(path, KindCartridge)
	require.NoError(t, err)
	assert.Equal(t, 2, idx1.Counts().Records)
	assert.Equal(t, "Test System", result.Header.Name)

	// Same file state returns the same built index.
	idx2, _, err := loader.Load(path, KindCartridge)
	require.NoError(t, err)
	assert.Same(t, idx1, idx2)

	loader.Invalidate(path)
	idx3, _, err := loader.Load(path, KindCartridge)
	require.NoError(t, err)
	assert.Equal(t, 2, idx3.Counts().Records)
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader()
	_, _, err := loader.Load(filepath.Join(t.TempDir(), "absent.dat"), KindCartridge)
	assert.Error(t, err)
}

func TestHeaderSkip(t *testing.T) {
	ines := append([]byte{'N', 'E', 'S', 0x1a}, make([]byte, 32)...)
	assert.Equal(t, 16, HeaderINES.HeaderSkip(ines))
	assert.Equal(t, 0, HeaderINES.HeaderSkip([]byte("plain rom data here")))

	lynx := append([]byte("LYNX"), make([]byte, 128)...)
	assert.Equal(t, 64, HeaderLynx.HeaderSkip(lynx))

	a78 := append([]byte{0x01}, []byte("ATARI7800")...)
	a78 = append(a78, make([]byte, 256)...)
	assert.Equal(t, 128, HeaderA78.HeaderSkip(a78))

	assert.Equal(t, 0, HeaderNone.HeaderSkip(ines))
}
