package scan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"rom-curator/feature/dat"
	"rom-curator/feature/repair"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func digestOf(t *testing.T, data []byte) repair.Digest {
	t.Helper()
	d, err := repair.HashReader(bytes.NewReader(data))
	require.NoError(t, err)
	return d
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func repeatByte(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

type recordingListener struct {
	results []FileResult
}

func (l *recordingListener) OnFile(result FileResult) {
	l.results = append(l.results, result)
}

func TestScanClassifiesFiles(t *testing.T) {
	dir := t.TempDir()

	good := repeatByte(0x11, 2048)
	writeFile(t, dir, "good.bin", good)

	// 1000 bytes pads to 1024 with 0x00 under the power-of-two hypothesis.
	short := repeatByte(0x22, 1000)
	writeFile(t, dir, "short.bin", short)
	padded := append(append([]byte{}, short...), repeatByte(0x00, 24)...)

	writeFile(t, dir, "unknown.bin", repeatByte(0x33, 2048))

	index := dat.BuildIndex([]dat.ReferenceRecord{
		{Title: "Good Game (USA)", CRC: digestOf(t, good).CRC, Size: 2048, Kind: dat.KindCartridge},
		{Title: "Short Game (USA)", CRC: digestOf(t, padded).CRC, Size: 1024, Kind: dat.KindCartridge},
	})

	listener := &recordingListener{}
	scanner := NewScanner(index, zap.NewNop())
	report, err := scanner.Scan(context.Background(), Options{
		Root:     dir,
		Workers:  2,
		Kind:     dat.KindCartridge,
		Listener: listener,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.Scanned)
	assert.Equal(t, 1, report.Summary.Matched)
	assert.Equal(t, 1, report.Summary.NeedsRepair)
	assert.Equal(t, 1, report.Summary.Unmatched)
	assert.Zero(t, report.Summary.Errors)
	assert.Len(t, listener.results, 3)

	byPath := make(map[string]FileResult)
	for _, f := range report.Files {
		byPath[f.Path] = f
	}

	assert.Equal(t, StatusMatched, byPath["good.bin"].Status)
	assert.Equal(t, "Good Game (USA)", byPath["good.bin"].Name)

	needsRepair := byPath["short.bin"]
	assert.Equal(t, StatusNeedsRepair, needsRepair.Status)
	assert.Equal(t, "Short Game (USA)", needsRepair.Name)
	assert.Equal(t, "append 24 bytes of 0x00", needsRepair.Method)
	assert.Equal(t, int64(24), needsRepair.BytesAdded)

	assert.Equal(t, StatusUnmatched, byPath["unknown.bin"].Status)
}

func TestScanSkipsDumpHeader(t *testing.T) {
	dir := t.TempDir()

	body := repeatByte(0x44, 1024)
	header := append([]byte("NES\x1a"), repeatByte(0x00, 12)...)
	writeFile(t, dir, "headered.nes", append(header, body...))

	index := dat.BuildIndex([]dat.ReferenceRecord{
		{Title: "Headered Game (USA)", CRC: digestOf(t, body).CRC, Size: 1024, Kind: dat.KindCartridge},
	})

	report, err := NewScanner(index, zap.NewNop()).Scan(context.Background(), Options{
		Root:       dir,
		Kind:       dat.KindCartridge,
		HeaderRule: dat.HeaderINES,
	})
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, StatusMatched, report.Files[0].Status)
	assert.Equal(t, 16, report.Files[0].HeaderSkipped)
}

func TestScanHeaderRuleLeavesUnheaderedFilesWhole(t *testing.T) {
	dir := t.TempDir()

	body := repeatByte(0x55, 512)
	writeFile(t, dir, "plain.nes", body)

	index := dat.BuildIndex([]dat.ReferenceRecord{
		{Title: "Plain Game (USA)", CRC: digestOf(t, body).CRC, Size: 512, Kind: dat.KindCartridge},
	})

	report, err := NewScanner(index, zap.NewNop()).Scan(context.Background(), Options{
		Root:       dir,
		Kind:       dat.KindCartridge,
		HeaderRule: dat.HeaderINES,
	})
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, StatusMatched, report.Files[0].Status)
	assert.Zero(t, report.Files[0].HeaderSkipped)
}

func TestScanPatternFiltersFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.nes", repeatByte(0x01, 16))
	writeFile(t, dir, "drop.txt", []byte("notes"))

	index := dat.BuildIndex(nil)
	report, err := NewScanner(index, zap.NewNop()).Scan(context.Background(), Options{
		Root:    dir,
		Pattern: "*.nes",
		Kind:    dat.KindCartridge,
	})
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, "keep.nes", report.Files[0].Path)
}

func TestScanWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "usa")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, sub, "nested.bin", repeatByte(0x66, 64))

	index := dat.BuildIndex(nil)
	report, err := NewScanner(index, zap.NewNop()).Scan(context.Background(), Options{
		Root: dir,
		Kind: dat.KindCartridge,
	})
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, "usa/nested.bin", report.Files[0].Path)
	assert.Equal(t, StatusUnmatched, report.Files[0].Status)
}

func TestScanMissingRootFails(t *testing.T) {
	index := dat.BuildIndex(nil)
	_, err := NewScanner(index, zap.NewNop()).Scan(context.Background(), Options{
		Root: filepath.Join(t.TempDir(), "missing"),
		Kind: dat.KindCartridge,
	})
	assert.Error(t, err)
}
