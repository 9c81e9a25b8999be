package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"
)

// cpuProfile is the open CPU profile while profiling runs.
var cpuProfile *os.File

// startProfiling starts the CPU profile when --profile is set.
// The heap profile is written by stopProfiling.
func startProfiling() error {
	if !profile.Enabled || cpuProfile != nil {
		return nil
	}
	f, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	cpuProfile = f
	_, _ = fmt.Fprintf(os.Stderr, "Profiling to %s.cpu.prof and %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return nil
}

// stopProfiling flushes the CPU profile and writes a heap profile.
func stopProfiling() error {
	if cpuProfile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	if err := cpuProfile.Close(); err != nil {
		return fmt.Errorf("could not close CPU profile: %w", err)
	}
	cpuProfile = nil

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}
