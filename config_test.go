package ridership

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.InDelta(t, 41.6, cfg.ServiceArea.MinLat, 1e-9)
	assert.InDelta(t, 42.1, cfg.ServiceArea.MaxLat, 1e-9)
	assert.InDelta(t, -87.9, cfg.ServiceArea.MinLng, 1e-9)
	assert.InDelta(t, -87.5, cfg.ServiceArea.MaxLng, 1e-9)
	assert.InDelta(t, 35, cfg.MaxSpeedKPH, 1e-9)
	assert.InDelta(t, 15, cfg.MaxDistanceKM, 1e-9)
	assert.InDelta(t, 1, cfg.MinDurationMins, 1e-9)
	assert.InDelta(t, 24, cfg.MaxDurationHrs, 1e-9)
	assert.Equal(t, 20, cfg.TopN)
}

// Options absent from the file keep their defaults.
func TestLoadConfigPartialOverride(t *testing.T) {
	path := writeConfigFile(t, "max_speed_kph: 40\ntop_n: 10\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 40, cfg.MaxSpeedKPH, 1e-9)
	assert.Equal(t, 10, cfg.TopN)
	assert.InDelta(t, 15, cfg.MaxDistanceKM, 1e-9)
	assert.InDelta(t, 41.6, cfg.ServiceArea.MinLat, 1e-9)
}

func TestLoadConfigServiceArea(t *testing.T) {
	path := writeConfigFile(t, `
service_area:
  lat_min: 40.5
  lat_max: 40.9
  lng_min: -74.1
  lng_max: -73.7
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 40.5, cfg.ServiceArea.MinLat, 1e-9)
	assert.InDelta(t, -73.7, cfg.ServiceArea.MaxLng, 1e-9)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := writeConfigFile(t, "max_speed_kph: -5\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigOutOfRangeBox(t *testing.T) {
	path := writeConfigFile(t, `
service_area:
  lat_min: 41.6
  lat_max: 99.0
  lng_min: -87.9
  lng_max: -87.5
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "max_speed_kph: [oops\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
