package stats

//go:generate mockgen -destination=mock/mock_provider.go -package=mockstats -source=provider.go

import "context"

// Provider resolves actor stat values from an external stats system.
// Lookups may hit I/O; the engine never holds a per-actor lock across a
// Provider call.
type Provider interface {
	GetStatValue(ctx context.Context, actorID, statName string) (float64, error)
}

// MapProvider serves stats from a static map, for wiring the engine without
// a live stats service and for tests.
type MapProvider struct {
	values map[string]map[string]float64 // actorID -> stat -> value
}

// NewMapProvider creates a provider over the given values
func NewMapProvider(values map[string]map[string]float64) *MapProvider {
	if values == nil {
		values = make(map[string]map[string]float64)
	}
	return &MapProvider{values: values}
}

// GetStatValue implements Provider. Missing actors or stats resolve to 0.
func (p *MapProvider) GetStatValue(_ context.Context, actorID, statName string) (float64, error) {
	return p.values[actorID][statName], nil
}
