package iocache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
)

// matrixTable is the name of the table for matrix snapshots.
const matrixTable = "matrix_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for cache storage.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	return contract.GetAnalysisDBFilePath()
}

// InitStores initializes the global manager with the matrix cache and the analysis store.
// An empty cacheBackend leaves the cache disabled, an empty analysisBackend leaves tracking disabled.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, analysisBackend schema.DatabaseBackend, analysisConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var err error

		var matrixStore contract.CacheStore
		if cacheBackend != "" {
			matrixStore, err = NewCacheStore(matrixTable, cacheBackend, cacheConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize matrix cache: %w", err)
				return
			}
		}

		var analysisStore contract.AnalysisStore
		if analysisBackend != "" {
			analysisStore, err = NewAnalysisStore(analysisBackend, analysisConnStr)
			if err != nil {
				if matrixStore != nil {
					_ = matrixStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize analysis store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.matrix = matrixStore
		Manager.analysis = analysisStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.matrix != nil {
			_ = Manager.matrix.Close()
		}
		if Manager.analysis != nil {
			_ = Manager.analysis.Close()
		}
	})
}

// ClearCache removes every snapshot from the matrix cache.
func ClearCache() error {
	store := Manager.GetMatrixStore()
	if store == nil {
		return errors.New("matrix cache is not initialized")
	}
	return store.Clear()
}

// ClearAnalysis removes every recorded run and metric.
func ClearAnalysis() error {
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not enabled. Set --analysis-backend")
	}
	return store.Clear()
}
