package loader

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a snapshot stays valid.
const cacheTTL = 7 * 24 * time.Hour

// CachedLoad loads a matrix through the snapshot cache of mgr.
// Cache failures fall back to decoding the file directly.
func CachedLoad(ctx context.Context, src Source, mgr contract.CacheManager) (*matrix.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetMatrixStore()
	}
	if store == nil {
		return Load(ctx, src)
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrLoadFailed, err)
	}
	key := generateCacheKey(src, data)

	// Check for cache hit
	if m := checkCacheHit(store, key, src); m != nil {
		return m, nil
	}

	// Cache miss: decode and store
	return computeAndStore(store, key, src, data)
}

// checkCacheHit attempts to retrieve and validate a cached snapshot
func checkCacheHit(store contract.CacheStore, key string, src Source) *matrix.Matrix {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil // Cache miss (stale or version mismatch)
	}

	var snapshot schema.MatrixSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	m, err := matrix.New(snapshot.Grid,
		kinds(src),
		matrix.WithNurseLabels(snapshot.Nurses),
		matrix.WithShiftLabels(snapshot.Shifts))
	if err != nil {
		return nil
	}
	return m
}

// computeAndStore decodes the file and stores the snapshot in cache
func computeAndStore(store contract.CacheStore, key string, src Source, data []byte) (*matrix.Matrix, error) {
	m, err := decode(src, data)
	if err != nil {
		return nil, err
	}

	snapshot := schema.MatrixSnapshot{
		Grid:   m.Ints(),
		Nurses: m.NurseLabels(),
		Shifts: m.ShiftLabels(),
	}
	if payload, err := json.Marshal(snapshot); err == nil {
		if err := store.Set(key, payload, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Matrix cache write failed", err)
		}
	}
	return m, nil
}

// generateCacheKey creates a unique key from the file content and load options
func generateCacheKey(src Source, data []byte) string {
	contentHash := sha256.Sum256(data)
	key := fmt.Sprintf("%x:%s:%s:%d:%d:%s:%s",
		contentHash,
		contract.ResolveSourceFormat(src.Path, src.Format),
		src.Sheet,
		src.SkipRows,
		src.SkipCols,
		src.NurseKind,
		src.ShiftKind,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
