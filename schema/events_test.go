package schema_test

import (
	"testing"

	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/assert"
)

func TestEventLogAdd(t *testing.T) {
	log := &schema.EventLog{}
	log.Add(schema.ZeroWeightFallback, schema.PillarScope, "all raw weights are zero")
	log.Addf(schema.SkippedEntry, "level env", "criterion %d has no code", 2)

	events := log.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, schema.ZeroWeightFallback, events[0].Kind)
	assert.Equal(t, schema.PillarScope, events[0].Scope)
	assert.Equal(t, "criterion 2 has no code", events[1].Detail)

	assert.True(t, log.Has(schema.ZeroWeightFallback))
	assert.False(t, log.Has(schema.EmptySelectionFallback))
	assert.Equal(t, 2, log.Len())
}

func TestEventLogNilSafe(t *testing.T) {
	var log *schema.EventLog

	// Nil logs swallow writes so pure helpers can skip diagnostics.
	log.Add(schema.ZeroWeightFallback, "scope", "detail")
	assert.Nil(t, log.Events())
	assert.False(t, log.Has(schema.ZeroWeightFallback))
	assert.Equal(t, 0, log.Len())
}

func TestEventLogEventsCopy(t *testing.T) {
	log := &schema.EventLog{}
	log.Add(schema.EmptySelectionFallback, string(schema.CriteriaAxis), "reverted to all")

	events := log.Events()
	events[0].Detail = "mutated"

	assert.Equal(t, "reverted to all", log.Events()[0].Detail)
}

func TestEventString(t *testing.T) {
	e := schema.Event{Kind: schema.ZeroWeightFallback, Scope: "pillars", Detail: "equal weights applied"}
	assert.Equal(t, "zero_weight_fallback [pillars]: equal weights applied", e.String())
}
