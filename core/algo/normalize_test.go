package algo

import (
	"math"
	"testing"

	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/assert"
)

// TestNormalize tests proportional weight normalization.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		items    []schema.WeightItem
		expected map[string]float64
	}{
		{
			name: "proportional split",
			items: []schema.WeightItem{
				{Key: "env", Raw: 2.0},
				{Key: "econ", Raw: 1.0},
				{Key: "social", Raw: 1.0},
			},
			expected: map[string]float64{"env": 0.5, "econ": 0.25, "social": 0.25},
		},
		{
			name:     "single item",
			items:    []schema.WeightItem{{Key: "env", Raw: 0.4}},
			expected: map[string]float64{"env": 1.0},
		},
		{
			name: "zero total splits equally",
			items: []schema.WeightItem{
				{Key: "a", Raw: 0},
				{Key: "b", Raw: 0},
				{Key: "c", Raw: 0},
				{Key: "d", Raw: 0},
			},
			expected: map[string]float64{"a": 0.25, "b": 0.25, "c": 0.25, "d": 0.25},
		},
		{
			name:     "empty scope",
			items:    nil,
			expected: map[string]float64{},
		},
		{
			name: "stray negative floored at zero",
			items: []schema.WeightItem{
				{Key: "a", Raw: -1.0},
				{Key: "b", Raw: 1.0},
			},
			expected: map[string]float64{"a": 0.0, "b": 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &schema.EventLog{}
			result := Normalize(schema.WeightScope{Name: "test", Items: tt.items}, events)

			assert.Len(t, result, len(tt.expected))
			for key, want := range tt.expected {
				assert.InDelta(t, want, result[key], 1e-9, key)
			}
		})
	}
}

// TestNormalizeSumsToOne ensures every non-empty scope sums to one.
func TestNormalizeSumsToOne(t *testing.T) {
	scopes := [][]schema.WeightItem{
		{{Key: "a", Raw: 0.1}, {Key: "b", Raw: 0.9}},
		{{Key: "a", Raw: 3}, {Key: "b", Raw: 7}, {Key: "c", Raw: 11}},
		{{Key: "a", Raw: 0}, {Key: "b", Raw: 0}},
		{{Key: "a", Raw: 1e-12}, {Key: "b", Raw: 1e-12}},
	}

	for _, items := range scopes {
		result := Normalize(schema.WeightScope{Name: "test", Items: items}, nil)

		var sum float64
		for _, w := range result {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

// TestNormalizeZeroWeightEvent ensures the equal split is reported as a
// fallback event, and proportional splits are not.
func TestNormalizeZeroWeightEvent(t *testing.T) {
	events := &schema.EventLog{}

	Normalize(schema.WeightScope{Name: schema.PillarScope, Items: []schema.WeightItem{
		{Key: "a", Raw: 0}, {Key: "b", Raw: 0},
	}}, events)
	assert.True(t, events.Has(schema.ZeroWeightFallback))
	assert.Equal(t, schema.PillarScope, events.Events()[0].Scope)

	events = &schema.EventLog{}
	Normalize(schema.WeightScope{Name: schema.PillarScope, Items: []schema.WeightItem{
		{Key: "a", Raw: 1}, {Key: "b", Raw: 2},
	}}, events)
	assert.False(t, events.Has(schema.ZeroWeightFallback))

	// Empty scopes yield no event either.
	events = &schema.EventLog{}
	Normalize(schema.WeightScope{Name: schema.PillarScope}, events)
	assert.Equal(t, 0, events.Len())
}

// TestNormalizeNilEventLog ensures normalization works without a log.
func TestNormalizeNilEventLog(t *testing.T) {
	result := Normalize(schema.WeightScope{Name: "test", Items: []schema.WeightItem{
		{Key: "a", Raw: 0}, {Key: "b", Raw: 0},
	}}, nil)
	assert.InDelta(t, 0.5, result["a"], 1e-9)
}

// BenchmarkNormalize benchmarks weight normalization.
func BenchmarkNormalize(b *testing.B) {
	items := make([]schema.WeightItem, 20)
	for i := range items {
		items[i] = schema.WeightItem{Key: string(rune('a' + i)), Raw: float64(i)}
	}
	scope := schema.WeightScope{Name: "bench", Items: items}

	for b.Loop() {
		Normalize(scope, nil)
	}
}

// FuzzNormalize fuzzes normalization with random raw weights and checks
// that results always sum to one and stay within [0, 1].
func FuzzNormalize(f *testing.F) {
	f.Add(1.0, 2.0, 3.0)
	f.Add(0.0, 0.0, 0.0)
	f.Add(0.5, 0.0, 0.5)
	f.Add(1e-15, 1e11, 1.0)

	f.Fuzz(func(t *testing.T, a, b, c float64) {
		// Raw weights arrive bounded from the input layer, so keep the fuzz
		// domain finite enough that the scope total cannot overflow.
		for _, v := range []float64{a, b, c} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v > 1e12 {
				t.Skip()
			}
		}

		result := Normalize(schema.WeightScope{Name: "fuzz", Items: []schema.WeightItem{
			{Key: "a", Raw: a}, {Key: "b", Raw: b}, {Key: "c", Raw: c},
		}}, nil)

		var sum float64
		for key, w := range result {
			if w < 0 || w > 1+1e-9 {
				t.Errorf("weight %s=%v outside [0,1]", key, w)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("weights sum to %v, want 1", sum)
		}
	})
}
