package nametag

import "strings"

// knownRegions is the closed set of region display names recognised inside
// parenthesised groups. Lookup is case-insensitive; the canonical casing
// stored here is what Parse returns.
var knownRegions = []string{
	"USA",
	"Europe",
	"Japan",
	"World",
	"Asia",
	"Australia",
	"Brazil",
	"Canada",
	"China",
	"France",
	"Germany",
	"Hong Kong",
	"Italy",
	"Korea",
	"Mexico",
	"Netherlands",
	"Poland",
	"Russia",
	"Scandinavia",
	"Spain",
	"Sweden",
	"Taiwan",
	"United Kingdom",
	"Unknown",
}

var regionLookup = buildRegionLookup()

func buildRegionLookup() map[string]string {
	m := make(map[string]string, len(knownRegions))
	for _, r := range knownRegions {
		m[strings.ToLower(r)] = r
	}
	return m
}

// CanonicalRegion resolves a region display name to its canonical casing.
// Returns ok=false when the name is not a known region.
func CanonicalRegion(name string) (string, bool) {
	canonical, ok := regionLookup[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// RegionSlug converts a region display name to a lowercase hyphenated slug
// suitable as a lookup or configuration key, e.g. "United Kingdom" becomes
// "united-kingdom".
func RegionSlug(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}

// parseRegionList interprets a group body as a comma-separated list of known
// regions. Every element must be a known region for the group to qualify.
func parseRegionList(body string) ([]string, bool) {
	parts := strings.Split(body, ",")
	regions := make([]string, 0, len(parts))
	for _, part := range parts {
		canonical, ok := CanonicalRegion(part)
		if !ok {
			return nil, false
		}
		regions = append(regions, canonical)
	}
	return regions, true
}
