package nametag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Parsed
	}{
		{
			name:  "title with region and revision",
			input: "The Legend of Zelda (USA) (Rev A)",
			expected: Parsed{
				Title:      "The Legend of Zelda",
				Regions:    []string{"USA"},
				Revision:   "Rev A",
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "disc number with label",
			input: "Resident Evil 2 (USA) (Disc 1 - Leon)",
			expected: Parsed{
				Title:      "Resident Evil 2",
				Regions:    []string{"USA"},
				DiscNumber: 1,
				DiscLabel:  "Leon",
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "disc number without label",
			input: "Final Fantasy VII (Europe) (Disc 3)",
			expected: Parsed{
				Title:      "Final Fantasy VII",
				Regions:    []string{"Europe"},
				DiscNumber: 3,
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "unrecognised group before region becomes flag",
			input: "Game (Part 1) (USA)",
			expected: Parsed{
				Title:      "Game",
				Regions:    []string{"USA"},
				Flags:      []string{"Part 1"},
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "multi region with languages and version",
			input: "Wario Land II (Europe, USA) (En,Fr,De) (v1.1)",
			expected: Parsed{
				Title:      "Wario Land II",
				Regions:    []string{"Europe", "USA"},
				Languages:  []string{"En", "Fr", "De"},
				Version:    "v1.1",
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "flags and bad dump marker",
			input: "Sonic the Hedgehog (Japan) (Proto) [b]",
			expected: Parsed{
				Title:      "Sonic the Hedgehog",
				Regions:    []string{"Japan"},
				Flags:      []string{"Proto"},
				DumpStatus: DumpBad,
			},
		},
		{
			name:  "overdump marker",
			input: "Columns (World) [o]",
			expected: Parsed{
				Title:      "Columns",
				Regions:    []string{"World"},
				DumpStatus: DumpOverdump,
			},
		},
		{
			name:  "verified marker",
			input: "Tetris (World) [!]",
			expected: Parsed{
				Title:      "Tetris",
				Regions:    []string{"World"},
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "no tag groups at all",
			input: "Pinball Fantasies",
			expected: Parsed{
				Title:      "Pinball Fantasies",
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "second region-looking group stays a flag",
			input: "Ridge Racer (USA) (Japan)",
			expected: Parsed{
				Title:      "Ridge Racer",
				Regions:    []string{"USA"},
				Flags:      []string{"Japan"},
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "region names are case-insensitive",
			input: "Lemmings (europe)",
			expected: Parsed{
				Title:      "Lemmings",
				Regions:    []string{"Europe"},
				DumpStatus: DumpVerified,
			},
		},
		{
			name:  "unl and demo flags",
			input: "Whac-a-Critter (USA) (Unl) (Demo)",
			expected: Parsed{
				Title:      "Whac-a-Critter",
				Regions:    []string{"USA"},
				Flags:      []string{"Unl", "Demo"},
				DumpStatus: DumpVerified,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := Parse("   ")
		assert.Error(t, err)
	})

	t.Run("no title before tags", func(t *testing.T) {
		_, err := Parse("(USA) (Rev A)")
		assert.Error(t, err)
	})

	t.Run("unterminated group", func(t *testing.T) {
		_, err := Parse("Game (USA) (Rev A")
		assert.Error(t, err)
	})
}

func TestRegionSlug(t *testing.T) {
	assert.Equal(t, "united-kingdom", RegionSlug("United Kingdom"))
	assert.Equal(t, "usa", RegionSlug("USA"))
	assert.Equal(t, "hong-kong", RegionSlug(" Hong Kong "))
	assert.Equal(t, "", RegionSlug(""))
}

func TestCanonicalRegion(t *testing.T) {
	canonical, ok := CanonicalRegion("united kingdom")
	assert.True(t, ok)
	assert.Equal(t, "United Kingdom", canonical)

	_, ok = CanonicalRegion("Atlantis")
	assert.False(t, ok)
}
