package dat

import "strings"

// Index is the queryable hash index built from one reference list.
//
// The index is immutable after construction: BuildIndex populates the
// lookup maps once and nothing mutates them afterwards, so any number of
// goroutines may query concurrently without synchronization.
type Index struct {
	records     []ReferenceRecord
	byPrimary   map[string]int
	bySecondary map[string]int
	bySerial    map[string]int
}

// IndexCounts carries diagnostic sizes for a built index.
type IndexCounts struct {
	// Records is the total number of reference records ingested.
	Records int `json:"records"`
	// PrimaryHashes is the number of distinct primary-hash entries.
	PrimaryHashes int `json:"primary_hashes"`
	// SecondaryHashes is the number of distinct secondary-hash entries.
	SecondaryHashes int `json:"secondary_hashes"`
	// Serials is the number of distinct serial entries.
	Serials int `json:"serials"`
}

// BuildIndex constructs an index from a batch of reference records.
//
// Hash keys are compared case-insensitively. On duplicate keys the first
// inserted record wins; later duplicates are discarded.
func BuildIndex(records []ReferenceRecord) *Index {
	idx := &Index{
		records:     records,
		byPrimary:   make(map[string]int, len(records)),
		bySecondary: make(map[string]int, len(records)),
		bySerial:    make(map[string]int),
	}
	for i, rec := range records {
		if key := hashKey(rec.CRC); key != "" {
			if _, exists := idx.byPrimary[key]; !exists {
				idx.byPrimary[key] = i
			}
		}
		if key := hashKey(rec.SHA1); key != "" {
			if _, exists := idx.bySecondary[key]; !exists {
				idx.bySecondary[key] = i
			}
		}
		if key := strings.ToUpper(strings.TrimSpace(rec.Serial)); key != "" {
			if _, exists := idx.bySerial[key]; !exists {
				idx.bySerial[key] = i
			}
		}
	}
	return idx
}

// LookupPrimary returns the record matching the given primary hash (CRC32).
func (idx *Index) LookupPrimary(hash string) (ReferenceRecord, bool) {
	return idx.lookup(idx.byPrimary, hashKey(hash))
}

// LookupSecondary returns the record matching the given secondary hash (SHA1).
func (idx *Index) LookupSecondary(hash string) (ReferenceRecord, bool) {
	return idx.lookup(idx.bySecondary, hashKey(hash))
}

// LookupSerial returns the record matching the given catalog serial.
func (idx *Index) LookupSerial(serial string) (ReferenceRecord, bool) {
	return idx.lookup(idx.bySerial, strings.ToUpper(strings.TrimSpace(serial)))
}

func (idx *Index) lookup(m map[string]int, key string) (ReferenceRecord, bool) {
	if key == "" {
		return ReferenceRecord{}, false
	}
	i, ok := m[key]
	if !ok {
		return ReferenceRecord{}, false
	}
	return idx.records[i], true
}

// Counts returns diagnostic sizes for the index.
func (idx *Index) Counts() IndexCounts {
	return IndexCounts{
		Records:         len(idx.records),
		PrimaryHashes:   len(idx.byPrimary),
		SecondaryHashes: len(idx.bySecondary),
		Serials:         len(idx.bySerial),
	}
}

// hashKey normalizes a hash string for case-insensitive comparison.
func hashKey(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}
