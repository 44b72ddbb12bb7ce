//go:build basic

// Package integration contains end-to-end tests that exercise the locus
// binary. These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankReport mirrors the JSON shape of `locus rank --output json`.
type rankReport struct {
	Goal     string             `json:"goal"`
	Strict   bool               `json:"strict"`
	Selected []string           `json:"selected_criteria"`
	Global   map[string]float64 `json:"global_weights"`
	Entities []struct {
		Rank   int     `json:"rank"`
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Region string  `json:"region"`
		Score  float64 `json:"score"`
	} `json:"entities"`
}

// weightReport mirrors the JSON shape of `locus weights --output json`.
type weightReport struct {
	Goal     string                        `json:"goal"`
	Pillars  map[string]float64            `json:"pillar_weights"`
	Criteria map[string]map[string]float64 `json:"criterion_weights"`
	Global   map[string]float64            `json:"global_weights"`
	Sum      float64                       `json:"global_sum"`
}

// criteriaReport mirrors the JSON shape of `locus criteria --output json`.
type criteriaReport struct {
	Goal     string `json:"goal"`
	Criteria []struct {
		Code     string `json:"code"`
		Pillar   string `json:"pillar"`
		Selected bool   `json:"selected"`
		WithData int    `json:"entities_with_data"`
		Total    int    `json:"entities_total"`
	} `json:"criteria"`
}

// checkResult mirrors the JSON shape of `locus check --output json`.
type checkResult struct {
	Passed     bool `json:"passed"`
	Violations []struct {
		Rule string `json:"rule"`
	} `json:"violations"`
	SurvivingRows int `json:"surviving_rows"`
}

// runLocusJSON runs the binary and decodes its stdout into out. Stderr stays
// separate so warnings cannot corrupt the payload.
func runLocusJSON(t *testing.T, out any, args ...string) {
	t.Helper()
	cmd := exec.Command(getLocusBinary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(t, err, "command %s failed: %s", cmd.String(), stderr.String())
	require.NoError(t, json.Unmarshal(stdout.Bytes(), out), "stdout should be valid JSON: %s", stdout.String())
}

func TestRankOrdering(t *testing.T) {
	hierarchy, data, names := writeComparisonFixtures(t)

	var report rankReport
	runLocusJSON(t, &report, "rank", data,
		"--hierarchy", hierarchy, "--names", names, "--output", "json")

	require.Len(t, report.Entities, 3)
	assert.Equal(t, "Best location", report.Goal)
	assert.True(t, report.Strict)

	// The GDP column dominates under equal weights because the economy
	// pillar holds half the global weight with a single criterion.
	assert.Equal(t, "USA", report.Entities[0].ID)
	assert.Equal(t, "United States", report.Entities[0].Name)
	assert.Equal(t, "Americas", report.Entities[0].Region)
	assert.Equal(t, 1, report.Entities[0].Rank)
	assert.Equal(t, "JPN", report.Entities[1].ID)
	assert.Equal(t, "FRA", report.Entities[2].ID)

	// Complete data means the shares per column sum to one, so the
	// composite scores across all entities do too.
	var sum float64
	for _, e := range report.Entities {
		sum += e.Score
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRankWeightOverride(t *testing.T) {
	hierarchy, data, names := writeComparisonFixtures(t)

	// Zeroing the environment pillar hands everything to GDP, which flips
	// France above Japan.
	var report rankReport
	runLocusJSON(t, &report, "rank", data,
		"--hierarchy", hierarchy, "--names", names,
		"--pillar-weights", "env:0,econ:1", "--output", "json")

	require.Len(t, report.Entities, 3)
	assert.Equal(t, "USA", report.Entities[0].ID)
	assert.Equal(t, "FRA", report.Entities[1].ID)
	assert.Equal(t, "JPN", report.Entities[2].ID)
}

func TestWeightsResolution(t *testing.T) {
	hierarchy, _, _ := writeComparisonFixtures(t)

	var report weightReport
	runLocusJSON(t, &report, "weights",
		"--hierarchy", hierarchy,
		"--pillar-weights", "env:3,econ:1", "--output", "json")

	assert.InDelta(t, 0.75, report.Pillars["env"], 1e-9)
	assert.InDelta(t, 0.25, report.Pillars["econ"], 1e-9)
	assert.InDelta(t, 0.5, report.Criteria["env"]["co2_pc"], 1e-9)
	assert.InDelta(t, 0.375, report.Global["co2_pc"], 1e-9)
	assert.InDelta(t, 0.25, report.Global["gdp_pc"], 1e-9)
	assert.InDelta(t, 1.0, report.Sum, 1e-9)
}

func TestCriteriaListing(t *testing.T) {
	hierarchy, data, _ := writeComparisonFixtures(t)

	var report criteriaReport
	runLocusJSON(t, &report, "criteria", data,
		"--hierarchy", hierarchy, "--output", "json")

	require.Len(t, report.Criteria, 3)
	for _, doc := range report.Criteria {
		assert.True(t, doc.Selected, "criterion %s should be selected by default", doc.Code)
		assert.Equal(t, 3, doc.WithData, "criterion %s is fully covered", doc.Code)
		assert.Equal(t, 3, doc.Total)
	}
}

func TestCheckGate(t *testing.T) {
	hierarchy, data, _ := writeComparisonFixtures(t)

	t.Run("fully covered data passes", func(t *testing.T) {
		var result checkResult
		runLocusJSON(t, &result, "check", data,
			"--hierarchy", hierarchy,
			"--min-coverage", "1.0", "--min-rows", "3", "--output", "json")

		assert.True(t, result.Passed)
		assert.Empty(t, result.Violations)
		assert.Equal(t, 3, result.SurvivingRows)
	})

	t.Run("row threshold above the data fails the build", func(t *testing.T) {
		cmd := exec.Command(getLocusBinary(), "check", data,
			"--hierarchy", hierarchy, "--min-rows", "10", "--output", "json")
		var stdout bytes.Buffer
		cmd.Stdout = &stdout
		err := cmd.Run()

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr, "a failed gate should exit non-zero")
		assert.Equal(t, 1, exitErr.ExitCode())

		// The report is still written before the exit code flips.
		var result checkResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.False(t, result.Passed)
		require.NotEmpty(t, result.Violations)
		assert.Equal(t, "rows", result.Violations[0].Rule)
	})
}

func TestVersionOutput(t *testing.T) {
	output, err := runLocus(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "locus CLI")
	assert.Contains(t, output, "Version:")
}

func TestSessionRoundTrip(t *testing.T) {
	hierarchy, data, names := writeComparisonFixtures(t)
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	storeArgs := []string{"--store-backend", "sqlite", "--store-db-connect", dbPath}

	// Save a session that pins the economy-only weighting.
	saveArgs := append([]string{"session", "save", "econ-only",
		"--hierarchy", hierarchy, "--pillar-weights", "env:0,econ:1"}, storeArgs...)
	output, err := runLocus(t, saveArgs...)
	require.NoError(t, err)
	assert.Contains(t, output, `Session "econ-only" saved`)

	// The listing carries it.
	listArgs := append([]string{"session", "list"}, storeArgs...)
	output, err = runLocus(t, listArgs...)
	require.NoError(t, err)
	assert.Contains(t, output, "econ-only")

	// Ranking under the session applies the stored weights: France flips
	// above Japan, same as passing the flags directly.
	var report rankReport
	rankArgs := append([]string{"rank", data,
		"--hierarchy", hierarchy, "--names", names,
		"--session", "econ-only", "--output", "json"}, storeArgs...)
	runLocusJSON(t, &report, rankArgs...)
	require.Len(t, report.Entities, 3)
	assert.Equal(t, "FRA", report.Entities[1].ID)
	assert.Equal(t, "JPN", report.Entities[2].ID)

	// Delete it and confirm the store no longer resolves it.
	deleteArgs := append([]string{"session", "delete", "econ-only"}, storeArgs...)
	_, err = runLocus(t, deleteArgs...)
	require.NoError(t, err)

	showArgs := append([]string{"session", "show", "econ-only"}, storeArgs...)
	_, err = runLocus(t, showArgs...)
	require.Error(t, err, "a deleted session should not resolve")
}
