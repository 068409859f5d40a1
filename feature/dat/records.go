package dat

import "bytes"

// SourceKind distinguishes the physical media family a reference list
// describes. The repair engine generates different padding hypotheses for
// each kind.
type SourceKind string

const (
	// KindCartridge covers ROM chips dumped from cartridges; sizes are
	// normally powers of two.
	KindCartridge SourceKind = "cartridge"
	// KindOpticalDisc covers CD/DVD images, which may be missing the
	// standard lead-in pregap.
	KindOpticalDisc SourceKind = "optical"
)

// IsValid reports whether the source kind is one of the known variants.
func (k SourceKind) IsValid() bool {
	switch k {
	case KindCartridge, KindOpticalDisc:
		return true
	default:
		return false
	}
}

// ReferenceRecord is one known-good dump from a reference list.
type ReferenceRecord struct {
	// Title is the full release name, including No-Intro tags.
	Title string
	// CRC is the primary hash (CRC32, hex). May be empty.
	CRC string
	// SHA1 is the secondary hash (hex). May be empty.
	SHA1 string
	// MD5 is stored for completeness but never indexed.
	MD5 string
	// Size is the expected byte length, zero when unknown.
	Size int64
	// Serial is the publisher catalog serial, when the list carries one.
	Serial string
	// Kind is the media family of the source list.
	Kind SourceKind
}

// HeaderRule identifies the per-platform dump header convention. Some
// cartridge dumps carry a dumper-added header that must be skipped before
// hashing; the rule set is closed, one variant per known convention.
type HeaderRule string

const (
	// HeaderNone applies to platforms whose dumps carry no extra header.
	HeaderNone HeaderRule = "none"
	// HeaderINES skips the 16-byte iNES header on NES dumps.
	HeaderINES HeaderRule = "ines"
	// HeaderLynx skips the 64-byte LYNX header on Atari Lynx dumps.
	HeaderLynx HeaderRule = "lynx"
	// HeaderA78 skips the 128-byte header on Atari 7800 dumps.
	HeaderA78 HeaderRule = "a78"
)

// IsValid reports whether the header rule is one of the known variants.
func (r HeaderRule) IsValid() bool {
	switch r {
	case HeaderNone, HeaderINES, HeaderLynx, HeaderA78:
		return true
	default:
		return false
	}
}

var (
	inesMagic = []byte{'N', 'E', 'S', 0x1a}
	lynxMagic = []byte{'L', 'Y', 'N', 'X'}
)

// HeaderSkip returns the number of leading bytes to skip before hashing the
// dump, based on the rule and the dump's first bytes. Dumps without the
// expected magic are hashed whole.
func (r HeaderRule) HeaderSkip(data []byte) int {
	switch r {
	case HeaderINES:
		if len(data) >= 16 && bytes.HasPrefix(data, inesMagic) {
			return 16
		}
	case HeaderLynx:
		if len(data) >= 64 && bytes.HasPrefix(data, lynxMagic) {
			return 64
		}
	case HeaderA78:
		// The A78 header stores "ATARI7800" at offset 1.
		if len(data) >= 128 && bytes.Contains(data[:16], []byte("ATARI7800")) {
			return 128
		}
	}
	return 0
}
