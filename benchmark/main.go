// Package main provides a performance benchmarking tool for the ShiftLens CLI.
// It generates synthetic rosters of increasing size, converts them to xlsx and
// measures execution times of the roster commands, running each test multiple
// times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - shiftlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [roster-dir]
//
//	roster-dir: Directory where the generated rosters are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Roster      string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// RosterSize describes one generated roster.
type RosterSize struct {
	Name   string
	Nurses int
	Shifts int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RosterDir   string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Sizes       []RosterSize
	Commands    map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [roster-dir]\n", os.Args[0])
		os.Exit(1)
	}
	rosterDir := os.Args[1]

	config := BenchmarkConfig{
		RosterDir:   rosterDir,
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes: []RosterSize{
			{Name: "ward", Nurses: 30, Shifts: 90},
			{Name: "floor", Nurses: 200, Shifts: 365},
			{Name: "hospital", Nurses: 1000, Shifts: 1095},
		},
		Commands: map[string]string{
			"coverage":  "--rank --limit 10",
			"recommend": "",
			"report":    "--limit 10",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using shiftlens cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("shiftlens", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the shiftlens binary exists and the roster directory is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("shiftlens"); err != nil {
		return fmt.Errorf("shiftlens binary not found in PATH")
	}
	if err := os.MkdirAll(config.RosterDir, 0o755); err != nil {
		return fmt.Errorf("cannot create roster directory %s: %w", config.RosterDir, err)
	}
	return nil
}

// generateRoster writes a CSV roster of the given size and converts it to xlsx.
// Every third cell is a rest so coverage and workload vary across the grid.
func generateRoster(dir string, size RosterSize) (string, error) {
	csvPath := filepath.Join(dir, size.Name+".csv")
	file, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	writer := csv.NewWriter(file)
	row := make([]string, size.Shifts)
	for i := range size.Nurses {
		for j := range row {
			if (i+j*j)%3 == 0 {
				row[j] = "0"
			} else {
				row[j] = "1"
			}
		}
		if err := writer.Write(row); err != nil {
			_ = file.Close()
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	xlsxPath := filepath.Join(dir, size.Name+".xlsx")
	convertCmd := exec.Command("shiftlens", "convert", csvPath, "--output-file", xlsxPath, "--cache-backend", "none")
	if output, err := convertCmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("convert %s: %w\nOutput: %s", csvPath, err, string(output))
	}
	return xlsxPath, nil
}

// runBenchmarks executes all benchmark tests across the generated rosters
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d rosters, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, size := range config.Sizes {
		fmt.Printf("Generating %s roster (%d nurses × %d shifts)\n", size.Name, size.Nurses, size.Shifts)
		rosterPath, err := generateRoster(config.RosterDir, size)
		if err != nil {
			return nil, err
		}

		for _, command := range []string{"coverage", "recommend", "report"} {
			result := runBenchmarkSuite(config, size.Name, rosterPath, command, config.Commands[command])
			results = append(results, result)
		}
	}

	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, roster, rosterPath, command, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, roster)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, rosterPath, command, extraArgs, cacheBackend, numRuns)
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

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Roster:      roster,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a shiftlens command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, rosterPath, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, rosterPath, "--cache-backend", cacheBackend, "--emoji", "no"}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("shiftlens", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
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

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "Cache backend:")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/shiftlens_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"roster", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Roster, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, size := range config.Sizes {
		fmt.Printf("%s (%d nurses × %d shifts):\n", size.Name, size.Nurses, size.Shifts)
		for _, result := range results {
			if result.Roster == size.Name {
				fmt.Printf("  %-10s: No-cache: %s, Cold: %s, Warm: %s\n", result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
