//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedLocusPath holds the path to a shared locus binary built once for all tests.
	sharedLocusPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getLocusBinary returns the path to the locus binary, building it once if needed.
func getLocusBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "locus-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		locusPath := filepath.Join(tempDir, "locus")
		buildCmd := exec.Command("go", "build", "-o", locusPath, "./cmd/locus")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build locus: %v", err))
		}

		sharedLocusPath = locusPath
	})

	return sharedLocusPath
}

// writeComparisonFixtures writes a small hierarchy, data table and name
// lookup into a fresh temp dir and returns their paths.
func writeComparisonFixtures(t *testing.T) (hierarchyPath, dataPath, namesPath string) {
	t.Helper()
	dir := t.TempDir()

	hierarchyPath = filepath.Join(dir, "hierarchy.json")
	hierarchy := `{
		"levels": [
			{"id": "top", "label": "Best location", "elements": ["env", "econ"]},
			{"id": "env", "label": "Environment", "elements": [
				{"label": "CO2 per capita", "code": "co2_pc"},
				{"label": "Renewable share", "code": "ren"}
			]},
			{"id": "econ", "label": "Economy", "elements": [
				{"label": "GDP per capita", "code": "gdp_pc"}
			]}
		]
	}`
	if err := os.WriteFile(hierarchyPath, []byte(hierarchy), 0o644); err != nil {
		t.Fatalf("failed to write hierarchy fixture: %v", err)
	}

	// Cell values are per-column shares, the normalized form the scoring
	// pipeline consumes, so every column sums to one.
	dataPath = filepath.Join(dir, "data.csv")
	data := "country_code,co2_pc,ren,gdp_pc\nFRA,0.17,0.35,0.29\nJPN,0.31,0.33,0.26\nUSA,0.52,0.32,0.45\n"
	if err := os.WriteFile(dataPath, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write data fixture: %v", err)
	}

	namesPath = filepath.Join(dir, "names.json")
	names := `[
		{"code": "FRA", "name": "France", "region": "Europe"},
		{"code": "JPN", "name": "Japan", "region": "Asia"},
		{"code": "USA", "name": "United States", "region": "Americas"}
	]`
	if err := os.WriteFile(namesPath, []byte(names), 0o644); err != nil {
		t.Fatalf("failed to write names fixture: %v", err)
	}

	return hierarchyPath, dataPath, namesPath
}

// runLocus runs the shared binary and returns its combined output.
func runLocus(t *testing.T, args ...string) (string, error) {
	t.Helper()
	locusPath := getLocusBinary()
	cmd := exec.Command(locusPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
