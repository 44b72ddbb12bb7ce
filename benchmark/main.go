// Package main provides a performance benchmarking tool for the Locus CLI.
// It generates synthetic datasets of increasing size, measures execution
// times across command types, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm, generating
// CSV output for performance analysis and documentation.
//
// Prerequisites:
// - locus binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to write generated datasets into
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (strict and lenient cold/warm times).
type BenchmarkResult struct {
	Dataset    string
	Command    string
	StrictCold string
	StrictWarm string
	LenientAvg string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	StrictRuns int
	LenientRuns int
	Datasets   []DatasetSpec
}

// DatasetSpec describes one synthetic dataset to generate and measure.
type DatasetSpec struct {
	Name              string
	Rows              int
	Pillars           int
	CriteriaPerPillar int
	BlankEvery        int // every Nth cell stays blank to exercise the missing-data paths
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		StrictRuns:  4,
		LenientRuns: 3,
		Datasets: []DatasetSpec{
			{Name: "small", Rows: 100, Pillars: 3, CriteriaPerPillar: 4, BlankEvery: 17},
			{Name: "medium", Rows: 5000, Pillars: 4, CriteriaPerPillar: 6, BlankEvery: 17},
			{Name: "large", Rows: 50000, Pillars: 6, CriteriaPerPillar: 8, BlankEvery: 17},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the locus binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if locus is available
	if _, err := exec.LookPath("locus"); err != nil {
		return fmt.Errorf("locus binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, strict: %d runs, lenient: %d runs\n",
		len(config.Datasets), config.Timeout, config.StrictRuns, config.LenientRuns)

	for _, spec := range config.Datasets {
		fmt.Printf("Benchmarking %s (%d rows x %d criteria)\n",
			spec.Name, spec.Rows, spec.Pillars*spec.CriteriaPerPillar)

		hierarchyPath, dataPath, err := generateDataset(config.WorkDir, spec)
		if err != nil {
			fmt.Printf("  Failed to generate dataset: %v\n", err)
			continue
		}

		// Ranking
		result := runBenchmarkSuite(config, spec.Name, hierarchyPath, dataPath, "rank", "ranking", "--explain")
		results = append(results, result)

		// Weight resolution
		result = runBenchmarkSuite(config, spec.Name, hierarchyPath, dataPath, "weights", "weight resolution", "")
		results = append(results, result)

		// Data gate
		result = runBenchmarkSuite(config, spec.Name, hierarchyPath, dataPath, "check", "data gate", "--min-coverage 0.5")
		results = append(results, result)
	}

	return results
}

// generateDataset writes the hierarchy and data table for one synthetic dataset.
func generateDataset(workDir string, spec DatasetSpec) (hierarchyPath, dataPath string, err error) {
	dir := filepath.Join(workDir, spec.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	// Hierarchy: top level lists pillar ids, each pillar lists criteria.
	top := map[string]any{"id": "top", "label": "Synthetic goal", "elements": []string{}}
	levels := []map[string]any{top}
	var codes []string
	for p := 0; p < spec.Pillars; p++ {
		pillarID := fmt.Sprintf("p%02d", p)
		top["elements"] = append(top["elements"].([]string), pillarID)
		var elements []map[string]any
		for c := 0; c < spec.CriteriaPerPillar; c++ {
			code := fmt.Sprintf("%s_c%02d", pillarID, c)
			codes = append(codes, code)
			elements = append(elements, map[string]any{
				"label": fmt.Sprintf("Criterion %s", code),
				"code":  code,
			})
		}
		levels = append(levels, map[string]any{
			"id": pillarID, "label": fmt.Sprintf("Pillar %s", pillarID), "elements": elements,
		})
	}
	hierarchyJSON, err := json.Marshal(map[string]any{"levels": levels})
	if err != nil {
		return "", "", err
	}
	hierarchyPath = filepath.Join(dir, "hierarchy.json")
	if err := os.WriteFile(hierarchyPath, hierarchyJSON, 0o644); err != nil {
		return "", "", err
	}

	// Data table: deterministic values with periodic blanks.
	rng := rand.New(rand.NewSource(42))
	var sb strings.Builder
	sb.WriteString("country_code," + strings.Join(codes, ",") + "\n")
	cell := 0
	for r := 0; r < spec.Rows; r++ {
		sb.WriteString(fmt.Sprintf("E%06d", r))
		for range codes {
			cell++
			if spec.BlankEvery > 0 && cell%spec.BlankEvery == 0 {
				sb.WriteString(",")
				continue
			}
			sb.WriteString(fmt.Sprintf(",%.4f", rng.Float64()*100))
		}
		sb.WriteString("\n")
	}
	dataPath = filepath.Join(dir, "data.csv")
	if err := os.WriteFile(dataPath, []byte(sb.String()), 0o644); err != nil {
		return "", "", err
	}

	return hierarchyPath, dataPath, nil
}

// runBenchmarkSuite runs both strict and lenient benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, hierarchyPath, dataPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(strictValue string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, hierarchyPath, dataPath, command, extraArgs, strictValue, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Strict runs (incomplete rows drop before scoring)
	strictCold, strictWarm := runPhase("yes", config.StrictRuns, "Strict")

	// Phase 2: Lenient runs (every row scores, missing cells as zero)
	_, lenientAvg := runPhase("no", config.LenientRuns, "Lenient")

	strictColdStr := "TIMEOUT"
	if strictCold > 0 {
		strictColdStr = fmt.Sprintf("%.3fs", strictCold)
	}

	fmt.Printf("  Strict cold: %s, Strict warm: %s, Lenient average: %s\n", strictColdStr, strictWarm, lenientAvg)

	return BenchmarkResult{
		Dataset:    dataset,
		Command:    command,
		StrictCold: strictColdStr,
		StrictWarm: strictWarm,
		LenientAvg: lenientAvg,
	}
}

// runBenchmark executes a locus command multiple times with the given strict
// setting and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, hierarchyPath, dataPath, command, extraArgs, strictValue string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, dataPath, "--hierarchy", hierarchyPath, "--strict", strictValue, "--limit", "50"}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("locus", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	switch command {
	case "rank":
		return strings.Contains(outputStr, "Ranking completed in")
	case "weights":
		return strings.Contains(outputStr, "Global weights sum to")
	case "check":
		return strings.Contains(outputStr, "Entities:")
	default:
		return false
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/locus_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "strict_cold", "strict_warm", "lenient_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.StrictCold, result.StrictWarm, result.LenientAvg}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "rank", "Ranking:")
	printCommandSummary(results, "weights", "Weight Resolution:")
	printCommandSummary(results, "check", "Data Gate:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Strict cold: %s, Strict warm: %s, Lenient: %s\n", result.Dataset, result.StrictCold, result.StrictWarm, result.LenientAvg)
		}
	}
}
