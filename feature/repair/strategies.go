package repair

import (
	"fmt"

	"rom-curator/feature/dat"
)

// PregapBytes is the standard CD lead-in gap: 2 seconds of 75 sectors at
// 2352 bytes each. Disc images ripped without the pregap are short by
// exactly this amount.
const PregapBytes = 2 * 75 * 2352

// Strategy is one padding hypothesis: bytes logically prepended and/or
// appended to the dump, filled with a constant byte.
type Strategy struct {
	// Prepend is the number of fill bytes before the file content.
	Prepend int64
	// Append is the number of fill bytes after the file content.
	Append int64
	// Fill is the padding byte value.
	Fill byte
}

// BytesAdded returns the total padding size for the hypothesis.
func (s Strategy) BytesAdded() int64 {
	return s.Prepend + s.Append
}

// Describe renders the hypothesis as a human-readable method description,
// e.g. "append 2 MB of 0x00".
func (s Strategy) Describe() string {
	switch {
	case s.Prepend > 0 && s.Append > 0:
		return fmt.Sprintf("prepend %s and append %s of 0x%02X", formatBytes(s.Prepend), formatBytes(s.Append), s.Fill)
	case s.Prepend > 0:
		return fmt.Sprintf("prepend %s of 0x%02X", formatBytes(s.Prepend), s.Fill)
	default:
		return fmt.Sprintf("append %s of 0x%02X", formatBytes(s.Append), s.Fill)
	}
}

// BuildStrategies generates the ordered hypothesis list for a dump.
//
// actual is the dump's byte length; expected is the reference length, zero
// when unknown. Hypotheses accumulate additively, in this order:
//
//  1. expected known and actual short: append the deficit as 0x00, then 0xFF.
//  2. optical-disc sources: prepend the standard pregap as 0x00.
//  3. cartridge sources with no expected length and a non-power-of-two
//     actual length: append up to the next power of two as 0x00, then 0xFF.
//
// A cartridge dump with no expected length that is already a power of two
// yields no hypotheses.
func BuildStrategies(actual, expected int64, kind dat.SourceKind) []Strategy {
	var strategies []Strategy

	if expected > 0 && actual < expected {
		deficit := expected - actual
		strategies = append(strategies,
			Strategy{Append: deficit, Fill: 0x00},
			Strategy{Append: deficit, Fill: 0xFF},
		)
	}

	if kind == dat.KindOpticalDisc {
		strategies = append(strategies, Strategy{Prepend: PregapBytes, Fill: 0x00})
	}

	if expected == 0 && kind == dat.KindCartridge && actual > 0 && !isPowerOfTwo(actual) {
		deficit := nextPowerOfTwo(actual) - actual
		strategies = append(strategies,
			Strategy{Append: deficit, Fill: 0x00},
			Strategy{Append: deficit, Fill: 0xFF},
		)
	}

	return strategies
}

func isPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int64) int64 {
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// formatBytes renders a byte count compactly: whole megabytes and kilobytes
// use their unit, everything else is a plain byte count.
func formatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case n >= mb && n%mb == 0:
		return fmt.Sprintf("%d MB", n/mb)
	case n >= kb && n%kb == 0:
		return fmt.Sprintf("%d KB", n/kb)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
