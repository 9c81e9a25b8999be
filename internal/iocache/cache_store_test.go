package iocache

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/shiftlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetManager gives each test a fresh global manager.
func resetManager(t *testing.T) {
	t.Helper()
	Manager = &CacheStoreManager{}
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	t.Cleanup(CloseStores)
}

func TestCacheStoreSQLite(t *testing.T) {
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte(`{"grid":[[1]]}`), 1, now))
	require.NoError(t, store.Set("k2", []byte("second"), 1, now-100))

	value, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"grid":[[1]]}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)

	// Overwrite replaces the entry
	require.NoError(t, store.Set("k1", []byte("updated"), 2, now+1))
	value, version, _, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("updated"), value)
	assert.Equal(t, 2, version)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(now+1, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(now-100, 0), status.OldestEntryTime)
	assert.Positive(t, status.TableSizeBytes)

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalEntries)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("test_key")
	assert.Error(t, err)

	assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))
	_, _, _, err = store.Get("test_key")
	assert.Error(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad-name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)

	_, err = NewCacheStore("matrix_cache", schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)

	_, err = NewCacheStore("matrix_cache", schema.SQLiteBackend, filepath.Join(t.TempDir(), "missing", "dir", "cache.db"))
	assert.Error(t, err)
}

func TestInitStores(t *testing.T) {
	t.Run("cache and analysis", func(t *testing.T) {
		resetManager(t)
		dir := t.TempDir()
		err := InitStores(schema.SQLiteBackend, filepath.Join(dir, "cache.db"), schema.SQLiteBackend, filepath.Join(dir, "analysis.db"))
		require.NoError(t, err)
		assert.NotNil(t, Manager.GetMatrixStore())
		assert.NotNil(t, Manager.GetAnalysisStore())
		assert.NoError(t, ClearCache())
		assert.NoError(t, ClearAnalysis())
	})

	t.Run("analysis disabled", func(t *testing.T) {
		resetManager(t)
		err := InitStores(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"), "", "")
		require.NoError(t, err)
		assert.NotNil(t, Manager.GetMatrixStore())
		assert.Nil(t, Manager.GetAnalysisStore())
		assert.Error(t, ClearAnalysis())
	})

	t.Run("idempotent", func(t *testing.T) {
		resetManager(t)
		conn := filepath.Join(t.TempDir(), "cache.db")
		require.NoError(t, InitStores(schema.SQLiteBackend, conn, "", ""))
		first := Manager.GetMatrixStore()
		require.NoError(t, InitStores(schema.NoneBackend, "", "", ""))
		assert.Same(t, first, Manager.GetMatrixStore())

		// Multiple closes are safe
		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitStores(schema.NoneBackend, "", schema.NoneBackend, ""))
		require.NotNil(t, Manager.GetMatrixStore())
		status, err := Manager.GetMatrixStore().GetStatus()
		require.NoError(t, err)
		assert.False(t, status.Connected)
	})

	t.Run("cache disabled", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitStores("", "", "", ""))
		assert.Nil(t, Manager.GetMatrixStore())
		assert.Error(t, ClearCache())
	})

	t.Run("failure", func(t *testing.T) {
		resetManager(t)
		err := InitStores(schema.DatabaseBackend("oracle"), "", "", "")
		assert.Error(t, err)
	})
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "test_table", false},
		{"valid name with numbers", "test_table_123", false},
		{"valid name starting with underscore", "_test_table", false},
		{"valid mixed case", "TestTable_123", false},
		{"empty name", "", true},
		{"starts with number", "123_table", true},
		{"contains dash", "test-table", true},
		{"contains space", "test table", true},
		{"sql injection attempt", "test'; DROP TABLE users; --", true},
		{"contains dot", "test.table", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBind(t *testing.T) {
	query := "UPDATE t SET a = ?, b = ? WHERE id = ?"
	assert.Equal(t, query, bind(query, schema.SQLiteBackend))
	assert.Equal(t, query, bind(query, schema.MySQLBackend))
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", bind(query, schema.PostgreSQLBackend))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`matrix_cache`", quoteTableName("matrix_cache", schema.MySQLBackend))
	assert.Equal(t, `"matrix_cache"`, quoteTableName("matrix_cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"matrix_cache"`, quoteTableName("matrix_cache", schema.SQLiteBackend))
}

func TestTimeScanner(t *testing.T) {
	ref := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

	var ts timeScanner
	require.NoError(t, ts.Scan(ref.Format(time.RFC3339Nano)))
	assert.True(t, ref.Equal(ts.time))

	require.NoError(t, ts.Scan([]byte("2026-03-01 08:30:00.000000")))
	assert.True(t, ref.Equal(ts.time))

	require.NoError(t, ts.Scan(ref))
	require.NotNil(t, ts.ptr())

	require.NoError(t, ts.Scan(nil))
	assert.Nil(t, ts.ptr())

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}
