package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResultBuilder_ValidateStructure_Violation(t *testing.T) {
	cfg := workedConfig(t, workedData)
	badHierarchy := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badHierarchy, []byte(`{"levels": []}`), 0o644))
	cfg.HierarchyPath = badHierarchy

	b, err := NewCheckResultBuilder(cfg).ValidateStructure()
	require.NoError(t, err)

	assert.False(t, b.structureOK)
	require.Len(t, b.violations, 1)
	assert.Equal(t, schema.CheckRuleStructure, b.violations[0].Rule)
}

func TestCheckResultBuilder_ValidateStructure_UnreadableFile(t *testing.T) {
	cfg := workedConfig(t, workedData)
	cfg.HierarchyPath = filepath.Join(t.TempDir(), "absent.json")

	// IO failures abort the build instead of becoming violations.
	_, err := NewCheckResultBuilder(cfg).ValidateStructure()
	require.Error(t, err)
}

func TestCheckResultBuilder_ValidateIdentifier_Violation(t *testing.T) {
	cfg := workedConfig(t, "iso,a1,a2,b1\nX,0.8,0.2,1.0\n")

	b, err := NewCheckResultBuilder(cfg).ValidateIdentifier()
	require.NoError(t, err)

	assert.False(t, b.tableOK)
	require.Len(t, b.violations, 1)
	assert.Equal(t, schema.CheckRuleIdentifier, b.violations[0].Rule)
	assert.Contains(t, b.violations[0].Detail, "country_code")
}

func TestCheckResultBuilder_Steps_SkipWithoutTable(t *testing.T) {
	cfg := workedConfig(t, "iso,a1,a2,b1\nX,0.8,0.2,1.0\n")
	cfg.MinCoverage = 1.0
	cfg.MinRows = 5

	b, err := NewCheckResultBuilder(cfg).ValidateStructure()
	require.NoError(t, err)
	b, err = b.ValidateIdentifier()
	require.NoError(t, err)
	b.ComputeCoverage().ComputeRows().BuildResult()

	// Only the identifier violation is recorded; the data rules never ran.
	result := b.GetResult()
	require.Len(t, result.Violations, 1)
	assert.Equal(t, schema.CheckRuleIdentifier, result.Violations[0].Rule)
	assert.Nil(t, result.Coverage)
	assert.Zero(t, result.SurvivingRows)
	assert.Equal(t, 3, result.TotalCriteria)
}

func TestCheckResultBuilder_ComputeCoverage_NoParticipants(t *testing.T) {
	cfg := workedConfig(t, "country_code,a1,a2,b1\n")
	cfg.MinCoverage = 0.9
	cfg.MinRows = 1

	b, err := NewCheckResultBuilder(cfg).ValidateStructure()
	require.NoError(t, err)
	b, err = b.ValidateIdentifier()
	require.NoError(t, err)
	b.ComputeCoverage().ComputeRows().BuildResult()

	// Coverage is undefined over zero entities, so only the row rule fires.
	result := b.GetResult()
	require.Len(t, result.Violations, 1)
	assert.Equal(t, schema.CheckRuleRows, result.Violations[0].Rule)
	assert.Contains(t, result.Violations[0].Detail, "0 of 0 rows")
}

func TestCheckResultBuilder_BuildResult_HealthyChain(t *testing.T) {
	cfg := workedConfig(t, workedData)
	cfg.MinCoverage = 0.5
	cfg.MinRows = 1

	b, err := NewCheckResultBuilder(cfg).ValidateStructure()
	require.NoError(t, err)
	assert.True(t, b.structureOK)
	b, err = b.ValidateIdentifier()
	require.NoError(t, err)
	assert.True(t, b.tableOK)

	b.ComputeCoverage()
	assert.Equal(t, []string{"a1", "a2", "b1"}, b.selected)
	assert.Equal(t, 2, b.coverage["a1"])

	b.ComputeRows()
	assert.Equal(t, 2, b.surviving)

	result := b.BuildResult().GetResult()
	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, "Best location", result.Goal)
	assert.Equal(t, 2, result.TotalEntities)
	assert.Equal(t, 0.5, result.MinCoverage)
	assert.Equal(t, 1, result.MinRows)
}
