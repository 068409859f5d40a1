package repair

import (
	"fmt"
	"io"
	"os"

	"rom-curator/feature/dat"
)

// Match is a successful repair detection: the reference record the padded
// dump hashes to, the padding method, and the total bytes the hypothesis
// added.
type Match struct {
	// Record is the reference record the padded dump matches.
	Record dat.ReferenceRecord
	// Method describes the winning hypothesis, e.g. "append 2 MB of 0x00".
	Method string
	// BytesAdded is the total padding size of the winning hypothesis.
	BytesAdded int64
	// Digest holds the checksums of the padded stream.
	Digest Digest
}

// MatchFile tries each strategy in order against the index and returns the
// first hypothesis whose padded hash matches a reference record. A nil
// match with a nil error means no hypothesis matched, which is an expected
// outcome for genuinely unknown dumps.
func MatchFile(path string, index *dat.Index, strategies []Strategy) (*Match, error) {
	if len(strategies) == 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file for repair matching: %w", err)
	}
	defer f.Close()

	for _, strategy := range strategies {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind file for repair matching: %w", err)
		}
		match, err := tryStrategy(f, index, strategy)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, nil
}

// MatchReader is MatchFile for a seekable stream.
func MatchReader(r io.ReadSeeker, index *dat.Index, strategies []Strategy) (*Match, error) {
	for _, strategy := range strategies {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind stream for repair matching: %w", err)
		}
		match, err := tryStrategy(r, index, strategy)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, nil
}

func tryStrategy(r io.Reader, index *dat.Index, strategy Strategy) (*Match, error) {
	digest, err := HashPadded(r, strategy)
	if err != nil {
		return nil, fmt.Errorf("hash padded stream: %w", err)
	}

	record, ok := index.LookupPrimary(digest.CRC)
	if !ok {
		record, ok = index.LookupSecondary(digest.SHA1)
	}
	if !ok {
		return nil, nil
	}

	return &Match{
		Record:     record,
		Method:     strategy.Describe(),
		BytesAdded: strategy.BytesAdded(),
		Digest:     digest,
	}, nil
}
