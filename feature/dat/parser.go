package dat

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header carries the metadata block of a parsed DAT file.
type Header struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Version     string `xml:"version"`
	Homepage    string `xml:"homepage"`
}

// ParseResult is the outcome of parsing one DAT file. Skipped collects
// per-entry errors; a malformed entry never aborts the batch.
type ParseResult struct {
	Header  Header
	Records []ReferenceRecord
	Skipped []error
}

// xmlGame mirrors the <game> element of a Logiqx DAT document.
type xmlGame struct {
	Name   string   `xml:"name,attr"`
	Serial string   `xml:"serial"`
	ROMs   []xmlROM `xml:"rom"`
}

type xmlROM struct {
	Name   string `xml:"name,attr"`
	Size   string `xml:"size,attr"`
	CRC    string `xml:"crc,attr"`
	MD5    string `xml:"md5,attr"`
	SHA1   string `xml:"sha1,attr"`
	Serial string `xml:"serial,attr"`
}

// ParseFile parses a DAT file from disk. See Parse.
func ParseFile(path string, kind SourceKind) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dat file: %w", err)
	}
	defer f.Close()
	return Parse(f, kind)
}

// Parse streams a Logiqx-style DAT document into reference records, one per
// <rom> element. The document is decoded element by element so arbitrarily
// large lists never require the full file in memory.
func Parse(r io.Reader, kind SourceKind) (*ParseResult, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("parse dat: unknown source kind %q", kind)
	}

	result := &ParseResult{}
	decoder := xml.NewDecoder(r)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse dat: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "header":
			if err := decoder.DecodeElement(&result.Header, &start); err != nil {
				return nil, fmt.Errorf("parse dat header: %w", err)
			}
		case "game", "machine":
			var game xmlGame
			if err := decoder.DecodeElement(&game, &start); err != nil {
				// The decoder stays positioned after the broken element,
				// so we record the failure and continue with the next one.
				result.Skipped = append(result.Skipped, fmt.Errorf("malformed game element: %w", err))
				continue
			}
			records, skipped := convertGame(game, kind)
			result.Records = append(result.Records, records...)
			result.Skipped = append(result.Skipped, skipped...)
		}
	}

	return result, nil
}

// convertGame turns one <game> element into reference records.
func convertGame(game xmlGame, kind SourceKind) ([]ReferenceRecord, []error) {
	name := strings.TrimSpace(game.Name)
	if name == "" {
		return nil, []error{fmt.Errorf("game element missing name attribute")}
	}

	var records []ReferenceRecord
	var skipped []error
	for _, rom := range game.ROMs {
		var size int64
		if s := strings.TrimSpace(rom.Size); s != "" {
			parsed, err := strconv.ParseInt(s, 10, 64)
			if err != nil || parsed < 0 {
				skipped = append(skipped, fmt.Errorf("game %q: rom %q has invalid size %q", name, rom.Name, rom.Size))
				continue
			}
			size = parsed
		}

		serial := strings.TrimSpace(rom.Serial)
		if serial == "" {
			serial = strings.TrimSpace(game.Serial)
		}

		records = append(records, ReferenceRecord{
			Title:  name,
			CRC:    strings.TrimSpace(rom.CRC),
			SHA1:   strings.TrimSpace(rom.SHA1),
			MD5:    strings.TrimSpace(rom.MD5),
			Size:   size,
			Serial: serial,
			Kind:   kind,
		})
	}
	return records, skipped
}
