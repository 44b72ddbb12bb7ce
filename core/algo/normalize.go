// Package algo has pure scoring primitives shared by all comparison flows.
package algo

import (
	"github.com/locusproject/locus/schema"
)

// Normalize converts the raw weights of one scope into relative weights
// that sum to one. A scope whose raw weights all sum to zero gets an equal
// split of 1/N and a ZeroWeightFallback event; an empty scope yields an
// empty map with no event. Negative raw weights are rejected before they
// reach this point, so any stray negative is floored at zero here.
func Normalize(scope schema.WeightScope, events *schema.EventLog) map[string]float64 {
	weights := make(map[string]float64, len(scope.Items))
	if len(scope.Items) == 0 {
		return weights
	}

	var total float64
	for _, item := range scope.Items {
		total += max(item.Raw, 0)
	}

	if total == 0 {
		equal := 1.0 / float64(len(scope.Items))
		for _, item := range scope.Items {
			weights[item.Key] = equal
		}
		events.Addf(schema.ZeroWeightFallback, scope.Name,
			"all %d raw weights are zero, splitting equally", len(scope.Items))
		return weights
	}

	for _, item := range scope.Items {
		weights[item.Key] = max(item.Raw, 0) / total
	}
	return weights
}
