// Package repair tests byte-padding hypotheses against the reference hash
// index when a dump's exact hash has no match.
//
// Imperfect dumps are commonly short by a predictable amount: cartridge
// dumps trimmed below their power-of-two chip size, disc images missing the
// standard lead-in pregap. BuildStrategies turns the dump's byte length, the
// expected length (when a candidate reference record is known), and the
// media kind into an ordered list of padding hypotheses. Match then streams
// the file through the hash functions together with synthetic fill bytes,
// chunked so that arbitrarily large padding never materializes in memory,
// and returns the first hypothesis whose resulting hash exists in the index.
//
// A dump with no matching hypothesis is a normal outcome, not an error; the
// package reports it as a nil match. Nothing here mutates the source file:
// the engine only detects the repair, applying it is the caller's decision.
package repair
