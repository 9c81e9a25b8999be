// main is the entry point for the shiftlens CLI.
package main

import (
	"github.com/huangsam/shiftlens/cmd"
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
