// pkg/areas/areas_test.go
package areas

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	assert.True(t, reg.Contains("Camden"))
	assert.True(t, reg.Contains("Glasgow"))
	assert.False(t, reg.Contains("camden"), "lookup is case sensitive")
	assert.False(t, reg.Contains("Atlantis"))

	for _, area := range reg.Areas {
		assert.NotEmpty(t, area.Region, "area %s has no region", area.Name)
		assert.Greater(t, area.MaxPrice, area.MinPrice, "area %s has an inverted price band", area.Name)
		assert.NotEmpty(t, area.Streets, "area %s has no streets for fallback data", area.Name)
	}
}

func TestRegistryGet(t *testing.T) {
	reg := Default()

	area, ok := reg.Get("Edinburgh")
	require.True(t, ok)
	assert.Equal(t, "Scotland", area.Region)
	assert.Contains(t, area.Streets, "Royal Mile")

	_, ok = reg.Get("Atlantis")
	assert.False(t, ok)
}

func TestRegistryNames_Sorted(t *testing.T) {
	names := Default().Names()
	require.Len(t, names, 14)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "areas.json")
	payload := `{
		"version": "2",
		"areas": [
			{"name": "Oxford", "region": "South East", "minPrice": 300000, "maxPrice": 900000, "streets": ["High Street"]}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)
	assert.True(t, reg.Contains("Oxford"))
	assert.Equal(t, []string{"Oxford"}, reg.Names())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
