package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable  = "shiftlens_analysis_runs"
	entityMetricsTable = "shiftlens_entity_metrics"
)

// analysisTables lists the analysis tables in creation order.
var analysisTables = []string{analysisRunsTable, entityMetricsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables creates the analysis tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{analysisRunsTable, getCreateAnalysisRunsQuery(backend)},
		{entityMetricsTable, getCreateEntityMetricsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateAnalysisRunsQuery returns the CREATE TABLE query for shiftlens_analysis_runs.
func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(analysisRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				nurse_count INT NOT NULL DEFAULT 0,
				shift_count INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				nurse_count INT NOT NULL DEFAULT 0,
				shift_count INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				nurse_count INTEGER NOT NULL DEFAULT 0,
				shift_count INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateEntityMetricsQuery returns the CREATE TABLE query for shiftlens_entity_metrics.
func getCreateEntityMetricsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(entityMetricsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				entity_kind VARCHAR(16) NOT NULL,
				entity_position INT NOT NULL,
				label VARCHAR(255) NOT NULL,
				metric_value INT NOT NULL,
				flagged BOOLEAN NOT NULL,
				PRIMARY KEY (analysis_id, entity_kind, entity_position)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				entity_kind TEXT NOT NULL,
				entity_position INT NOT NULL,
				label TEXT NOT NULL,
				metric_value INT NOT NULL,
				flagged BOOLEAN NOT NULL,
				PRIMARY KEY (analysis_id, entity_kind, entity_position)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				entity_kind TEXT NOT NULL,
				entity_position INTEGER NOT NULL,
				label TEXT NOT NULL,
				metric_value INTEGER NOT NULL,
				flagged INTEGER NOT NULL,
				PRIMARY KEY (analysis_id, entity_kind, entity_position)
			);
		`, quotedTableName)
	}
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	if as.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, nurses, shifts int) error {
	if as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var start timeScanner
	query := bind(fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = ?`, quotedTableName), as.backend)
	if err := as.db.QueryRow(query, analysisID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}
	durationMs := endTime.Sub(start.time).Milliseconds()

	update := bind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, nurse_count = ?, shift_count = ? WHERE analysis_id = ?`,
		quotedTableName), as.backend)
	if _, err := as.db.Exec(update, formatTime(endTime, as.backend), durationMs, nurses, shifts, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordEntityMetric stores the coverage of a shift or the workload of a nurse.
func (as *AnalysisStoreImpl) RecordEntityMetric(analysisID int64, metric schema.EntityMetric) error {
	if as.db == nil {
		return nil
	}

	query := bind(fmt.Sprintf(`
		INSERT INTO %s (analysis_id, entity_kind, entity_position, label, metric_value, flagged)
		VALUES (?, ?, ?, ?, ?, ?)
	`, quoteTableName(entityMetricsTable, as.backend)), as.backend)

	_, err := as.db.Exec(query, analysisID, string(metric.Kind), metric.Position, metric.Label, metric.Value, metric.Flagged)
	if err != nil {
		return fmt.Errorf("failed to insert %s metric %q: %w", metric.Kind, metric.Label, err)
	}
	return nil
}

// Clear deletes every run and metric.
func (as *AnalysisStoreImpl) Clear() error {
	if as.db == nil {
		return nil
	}
	for i := len(analysisTables) - 1; i >= 0; i-- {
		table := analysisTables[i]
		if _, err := as.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(table, as.backend))); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(analysisRunsTable, as.backend)

	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runsTable)
		if err := as.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = last.time

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runsTable)
		if err := as.db.QueryRow(oldestRunQuery).Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.time

		nursesQuery := fmt.Sprintf("SELECT COALESCE(SUM(nurse_count), 0) FROM %s", runsTable)
		if err := as.db.QueryRow(nursesQuery).Scan(&status.TotalNurses); err != nil {
			return status, fmt.Errorf("failed to get total nurses: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, start_time, end_time, run_duration_ms, nurse_count, shift_count, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var start, end timeScanner
		if err := rows.Scan(&record.AnalysisID, &start, &end, &record.RunDurationMs,
			&record.NurseCount, &record.ShiftCount, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		record.StartTime = start.time
		record.EndTime = end.ptr()
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllEntityMetrics retrieves all per-entity metrics from the store.
func (as *AnalysisStoreImpl) GetAllEntityMetrics() ([]schema.EntityMetricRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, entity_kind, label, entity_position, metric_value, flagged
		FROM %s ORDER BY analysis_id, entity_kind, entity_position`, quoteTableName(entityMetricsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.EntityMetricRecord
	for rows.Next() {
		var record schema.EntityMetricRecord
		if err := rows.Scan(&record.AnalysisID, &record.EntityKind, &record.Label,
			&record.Position, &record.Value, &record.Flagged); err != nil {
			return nil, fmt.Errorf("failed to scan entity metric: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity metrics: %w", err)
	}
	return results, nil
}
