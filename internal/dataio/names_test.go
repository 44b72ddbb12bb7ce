package dataio

import (
	"path/filepath"
	"testing"

	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNames(t *testing.T) {
	path := writeTempFile(t, "countries.json", `[
		{"code": "DEU", "name": "Germany", "region": "Europe"},
		{"code": "JPN", "name": "Japan"},
		{"code": "XYZ", "region": "Elsewhere"},
		{"code": "", "name": "Nowhere"}
	]`)

	names, err := LoadNames(path)
	require.NoError(t, err)
	require.Len(t, names, 3, "entries without a code are dropped")

	assert.Equal(t, schema.EntityName{Name: "Germany", Region: "Europe"}, names["DEU"])
	assert.Equal(t, schema.EntityName{Name: "Japan"}, names["JPN"])
	assert.Equal(t, schema.EntityName{Region: "Elsewhere"}, names["XYZ"])

	// Fallbacks happen at display time, not at load time.
	assert.Equal(t, "XYZ", schema.DisplayName("XYZ", names))
	assert.Equal(t, schema.FallbackRegion, schema.RegionOf("JPN", names))
}

func TestLoadNamesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadNames(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("not an array", func(t *testing.T) {
		path := writeTempFile(t, "countries.json", `{"DEU": "Germany"}`)
		_, err := LoadNames(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse name lookup")
	})
}
