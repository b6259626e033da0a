package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engerr "github.com/chaos-world/status-core/internal/errors"
)

const sampleCatalog = `
non_concurrent_categories:
  - control

effects:
  - id: fire_burning
    name: Burning
    kind: damage_over_time
    categories: [damage]
    magnitude:
      base: 15.0
      scaling_factor: 0.1
      scaling_stat: intelligence
      min: 0
      max: 100
    duration:
      base: 10.0
      scaling_factor: 0.05
      scaling_stat: wisdom
      min: 0
      max: 60
    priority: 10
  - id: shock_stun
    name: Stun
    kind: control
    categories: [control]
    magnitude:
      base: 1.0
      max: 1
    duration:
      base: 3.0
      max: 10
    priority: 20
    conditions:
      - type: min_stat
        key: level
        threshold: 5

immunities:
  - id: stun_ward
    name: Stun Ward
    targets: [shock_stun]
    magnitude:
      base: 1.0
      max: 1
    duration:
      base: 30.0
      max: 120
    break_conditions:
      - type: has_property
        key: low_health
`

func TestLoad(t *testing.T) {
	snap, err := Load([]byte(sampleCatalog))
	require.NoError(t, err)

	burning, ok := snap.Effect("fire_burning")
	require.True(t, ok)
	assert.Equal(t, KindDamageOverTime, burning.Kind)
	assert.InDelta(t, 15.0, burning.Magnitude.Base, 1e-9)
	assert.Equal(t, "intelligence", burning.Magnitude.ScalingStat)
	assert.InDelta(t, 0.05, burning.Duration.ScalingFactor, 1e-9)
	assert.Equal(t, 10, burning.Priority)

	stun, ok := snap.Effect("shock_stun")
	require.True(t, ok)
	require.Len(t, stun.Conditions, 1)
	assert.Equal(t, "min_stat", stun.Conditions[0].Type)
	assert.InDelta(t, 5.0, stun.Conditions[0].Threshold, 1e-9)

	ward, ok := snap.Immunity("stun_ward")
	require.True(t, ok)
	assert.True(t, ward.Blocks("shock_stun"))
	require.Len(t, ward.BreakConditions, 1)
	assert.Equal(t, "low_health", ward.BreakConditions[0].Key)

	assert.True(t, snap.NonConcurrent("control"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load([]byte("effects:\n  - id: [broken"))
	require.Error(t, err)
	assert.True(t, engerr.IsValidation(err))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	snap, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.EffectCount())

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
