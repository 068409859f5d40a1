package nametag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DumpStatus classifies a dump's fidelity relative to its reference.
type DumpStatus string

const (
	// DumpVerified marks a dump matching the reference exactly ([!] or no bracket).
	DumpVerified DumpStatus = "verified"
	// DumpBad marks a known-bad dump ([b]).
	DumpBad DumpStatus = "baddump"
	// DumpOverdump marks a dump with trailing excess data ([o]).
	DumpOverdump DumpStatus = "overdump"
)

// Parsed holds the structured fields extracted from a release name.
type Parsed struct {
	// Title is the text before the first parenthesised group.
	Title string
	// Regions lists the canonical region names, in tag order.
	Regions []string
	// Revision holds the full revision tag, e.g. "Rev A". Empty when absent.
	Revision string
	// Version holds the version tag, e.g. "v1.02". Empty when absent.
	Version string
	// Languages lists two-letter language codes, in tag order.
	Languages []string
	// DiscNumber is the disc ordinal from a "Disc N" tag, zero when absent.
	DiscNumber int
	// DiscLabel is the optional label following "Disc N - ", e.g. "Leon".
	DiscLabel string
	// Flags lists every parenthesised group not recognised as one of the
	// structured tags, in tag order.
	Flags []string
	// DumpStatus is the bracketed dump classification, verified by default.
	DumpStatus DumpStatus
}

var (
	revisionPattern = regexp.MustCompile(`^Rev[ .]?([0-9A-Za-z]+)$`)
	versionPattern  = regexp.MustCompile(`^v[0-9]+(\.[0-9]+)*$`)
	discPattern     = regexp.MustCompile(`^Disc ([0-9]+)(?: - (.+))?$`)
	languagePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// Parse splits a free-text release name into its structured tags.
//
// The title is everything before the first parenthesised group. Each group
// after it is classified independently, in no fixed positional order: the
// first group that parses as a comma-separated list of known regions becomes
// the region list; later groups are matched against the revision, version,
// disc and language patterns; anything unrecognised (including groups that
// merely look like a sub-title, such as "Part 1") becomes a flag. A trailing
// square-bracket group sets the dump status.
//
// Names with zero tag groups are valid: the whole string is the title.
func Parse(name string) (Parsed, error) {
	parsed := Parsed{DumpStatus: DumpVerified}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return parsed, fmt.Errorf("nametag: empty release name")
	}

	titleEnd := len(trimmed)
	if idx := strings.IndexByte(trimmed, '('); idx >= 0 {
		titleEnd = idx
	}
	parsed.Title = strings.TrimSpace(trimmed[:titleEnd])
	if parsed.Title == "" {
		return parsed, fmt.Errorf("nametag: release name %q has no title before tags", name)
	}

	groups, err := splitGroups(trimmed[titleEnd:])
	if err != nil {
		return parsed, fmt.Errorf("nametag: release name %q: %w", name, err)
	}

	regionsSeen := false
	for _, g := range groups {
		if g.bracketed {
			parsed.DumpStatus = classifyDumpStatus(g.body)
			continue
		}
		classifyGroup(&parsed, g.body, &regionsSeen)
	}

	return parsed, nil
}

// group is a single parenthesised or bracketed tag body.
type group struct {
	body      string
	bracketed bool
}

// splitGroups scans the tag portion of a name into its groups. Nesting is
// not part of the convention; an unterminated group is a parse error.
func splitGroups(tags string) ([]group, error) {
	var groups []group
	rest := tags
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return groups, nil
		}
		var closer byte
		switch rest[0] {
		case '(':
			closer = ')'
		case '[':
			closer = ']'
		default:
			return nil, fmt.Errorf("unexpected text %q between tag groups", rest)
		}
		end := strings.IndexByte(rest, closer)
		if end < 0 {
			return nil, fmt.Errorf("unterminated tag group %q", rest)
		}
		groups = append(groups, group{
			body:      strings.TrimSpace(rest[1:end]),
			bracketed: closer == ']',
		})
		rest = rest[end+1:]
	}
}

func classifyGroup(parsed *Parsed, body string, regionsSeen *bool) {
	if !*regionsSeen {
		if regions, ok := parseRegionList(body); ok {
			parsed.Regions = regions
			*regionsSeen = true
			return
		}
	}

	if revisionPattern.MatchString(body) {
		parsed.Revision = body
		return
	}

	if versionPattern.MatchString(body) {
		parsed.Version = body
		return
	}

	if m := discPattern.FindStringSubmatch(body); m != nil {
		number, err := strconv.Atoi(m[1])
		if err == nil {
			parsed.DiscNumber = number
			parsed.DiscLabel = m[2]
			return
		}
	}

	if languages, ok := parseLanguageList(body); ok {
		parsed.Languages = languages
		return
	}

	// Unrecognised paren groups are always flags, even when they look like
	// part of the title.
	parsed.Flags = append(parsed.Flags, body)
}

// parseLanguageList interprets a group body as a comma-separated list of
// two-letter language codes. Single two-letter tokens are ambiguous with
// flags, so at least two codes are required.
func parseLanguageList(body string) ([]string, bool) {
	parts := strings.Split(body, ",")
	if len(parts) < 2 {
		return nil, false
	}
	languages := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.TrimSpace(part)
		if !languagePattern.MatchString(code) {
			return nil, false
		}
		languages = append(languages, code)
	}
	return languages, true
}

func classifyDumpStatus(body string) DumpStatus {
	switch body {
	case "b":
		return DumpBad
	case "o":
		return DumpOverdump
	default:
		// "!" and anything unrecognised default to verified.
		return DumpVerified
	}
}
