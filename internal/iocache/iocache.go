// Package iocache persists matrix snapshots and analysis history in SQL backends.
package iocache

import (
	"sync"

	"github.com/huangsam/shiftlens/internal/contract"
)

// CacheStoreManager manages the matrix cache and the analysis store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	matrix       contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetMatrixStore returns the matrix snapshot CacheStore.
func (mgr *CacheStoreManager) GetMatrixStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.matrix
}

// GetAnalysisStore returns the AnalysisStore, or nil when tracking is disabled.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
