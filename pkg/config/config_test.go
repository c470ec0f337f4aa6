package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-retrofit/pkg/constraints"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/validation"
)

func TestDefaultIsClean(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Check())
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, constraints.DefaultBattery(), cfg.BatteryModel())
}

func TestDecodeOverridesDefaults(t *testing.T) {
	doc := `
agv:
  count: 4
  cruise_speed: 2.0
traffic:
  bidirectional: true
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.AGV.Count)
	assert.Equal(t, 2.0, cfg.AGV.CruiseSpeed)
	assert.True(t, cfg.Traffic.Bidirectional)
	// untouched keys keep defaults
	assert.Equal(t, 0.5, cfg.AGV.Acceleration)
	assert.Equal(t, 95.0, cfg.Battery.HighThreshold)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("traffic:\n  badirectional: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badirectional")
}

func TestDecodeRejectsInvalidValues(t *testing.T) {
	_, err := Decode(strings.NewReader("agv:\n  count: 0\n  cruise_speed: -1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalid))
	assert.Contains(t, err.Error(), "agv.count")
	assert.Contains(t, err.Error(), "agv.cruise_speed")
	assert.Equal(t, []string{"agv.count", "agv.cruise_speed"}, validation.BadFields(err))
}

func TestValidateWarnings(t *testing.T) {
	cfg := Default()
	cfg.AGV.CruiseSpeed = 3.5
	cfg.AGV.Width = 2.0
	cfg.Battery.LowThreshold = 96
	cfg.AGV.Count = 2

	assert.Equal(t, []string{
		"AGV cruise speed exceeds safe limit (3.0 m/s)",
		"AGV width too large for aisle with safety buffer",
		"Battery low threshold must be < high threshold",
		"Max AGVs per aisle exceeds fleet size",
	}, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("legacy:\n  floor_load_capacity: 7500\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7500.0, cfg.Legacy.FloorLoadCapacity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSiteAndForWarehouse(t *testing.T) {
	w, err := navgraph.BuildReference(navgraph.DefaultReferenceConfig())
	require.NoError(t, err)

	cfg := Default().ForWarehouse(w)
	assert.Equal(t, 3.0, cfg.Layout.AisleWidth)
	assert.Equal(t, 50.0, cfg.Layout.AisleLength)

	site := cfg.Site(w)
	assert.Same(t, w, site.Warehouse)
	assert.Equal(t, 10, site.FleetSize)
	assert.Equal(t, 3, site.MaxPerAisle)
	assert.Equal(t, 800.0, site.AGV.Mass+site.AGV.Payload)

	result, err := constraints.DefaultChecker().Check(site)
	require.NoError(t, err)
	assert.True(t, result.Valid, result.Messages())

	model := cfg.TravelModel()
	assert.Equal(t, 1.5, model.CruiseSpeed)
	assert.Equal(t, 2.0, model.TurnDelay)
}
