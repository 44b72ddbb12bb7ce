package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	names := map[string]EntityName{
		"DEU": {Name: "Germany", Region: "Europe"},
		"XXX": {Name: "  ", Region: "Europe"},
	}

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"known id", "DEU", "Germany"},
		{"unknown id falls back", "FRA", "FRA"},
		{"blank name falls back", "XXX", "XXX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.id, names))
		})
	}
}

func TestRegionOf(t *testing.T) {
	names := map[string]EntityName{
		"DEU": {Name: "Germany", Region: "Europe"},
		"AUS": {Name: "Australia"},
	}

	assert.Equal(t, "Europe", RegionOf("DEU", names))
	assert.Equal(t, FallbackRegion, RegionOf("AUS", names)) // blank region
	assert.Equal(t, FallbackRegion, RegionOf("ZZZ", names)) // unknown id
}

func TestGroupByRegion(t *testing.T) {
	names := map[string]EntityName{
		"DEU": {Name: "Germany", Region: "Europe"},
		"FRA": {Name: "France", Region: "Europe"},
		"JPN": {Name: "Japan", Region: "Asia"},
		"ATA": {Name: "Antarctica"},
	}

	regions, groups := GroupByRegion([]string{"DEU", "JPN", "ATA", "FRA"}, names)

	// Other is always last.
	assert.Equal(t, []string{"Asia", "Europe", FallbackRegion}, regions)

	// Members sorted by display name within a region.
	assert.Equal(t, []string{"FRA", "DEU"}, groups["Europe"])
	assert.Equal(t, []string{"JPN"}, groups["Asia"])
	assert.Equal(t, []string{"ATA"}, groups[FallbackRegion])
}

func TestGroupByRegionEmpty(t *testing.T) {
	regions, groups := GroupByRegion(nil, nil)
	assert.Empty(t, regions)
	assert.Empty(t, groups)
}
