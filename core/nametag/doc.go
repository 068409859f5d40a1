// Package nametag parses No-Intro style release names into structured tags.
//
// Release names in reference DAT files follow a bracket/paren convention,
// e.g. "The Legend of Zelda (USA) (Rev A)". The title is the text before the
// first parenthesised group; every parenthesised group after it is classified
// independently as a region list, revision, version, disc spec, language list,
// or bare flag. A trailing square-bracket group encodes the dump status.
//
// # Usage
//
//	parsed, err := nametag.Parse("Resident Evil 2 (USA) (Disc 1 - Leon)")
//	// parsed.Title == "Resident Evil 2"
//	// parsed.Regions == []string{"USA"}
//	// parsed.DiscNumber == 1, parsed.DiscLabel == "Leon"
//
// The parser is deterministic and performs no I/O. Names without any tag
// groups are valid: the whole string becomes the title.
package nametag
