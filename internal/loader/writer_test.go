package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMatrixRoundTrip(t *testing.T) {
	m, err := matrix.New(example)
	require.NoError(t, err)

	for _, name := range []string{"roster.csv", "roster.xlsx", "roster.parquet"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteMatrix(m, path, schema.AutoSource))

			got, err := Load(context.Background(), Source{Path: path, Format: schema.AutoSource})
			require.NoError(t, err)
			assert.Equal(t, example, got.Ints())
			assert.Equal(t, m.NurseLabels(), got.NurseLabels())
		})
	}
}

func TestWriteMatrixUnknownExtension(t *testing.T) {
	m, err := matrix.New(example)
	require.NoError(t, err)

	err = WriteMatrix(m, filepath.Join(t.TempDir(), "roster.txt"), schema.AutoSource)
	assert.Error(t, err)
}

func TestWriteMatrixDropsLabelsOutsideParquet(t *testing.T) {
	labeled, err := matrix.New(example, matrix.WithNurseLabels([]string{"Anna", "Pau", "Marta"}))
	require.NoError(t, err)
	positional, err := matrix.New(example)
	require.NoError(t, err)

	assert.Error(t, droppedLabels(labeled, schema.CSVSource))
	assert.Error(t, droppedLabels(labeled, schema.XLSXSource))
	assert.NoError(t, droppedLabels(labeled, schema.ParquetSource))
	assert.NoError(t, droppedLabels(positional, schema.CSVSource))

	path := filepath.Join(t.TempDir(), "labeled.csv")
	require.NoError(t, WriteMatrix(labeled, path, schema.AutoSource))
	got, err := Load(context.Background(), Source{Path: path})
	require.NoError(t, err)
	assert.Equal(t, example, got.Ints())
	assert.Equal(t, []string{"Nurse 1", "Nurse 2", "Nurse 3"}, got.NurseLabels())

	path = filepath.Join(t.TempDir(), "labeled.parquet")
	require.NoError(t, WriteMatrix(labeled, path, schema.AutoSource))
	got, err = Load(context.Background(), Source{Path: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna", "Pau", "Marta"}, got.NurseLabels())
}

func TestWriteMatrixCreateError(t *testing.T) {
	m, err := matrix.New(example)
	require.NoError(t, err)

	err = WriteMatrix(m, filepath.Join(t.TempDir(), "missing", "roster.csv"), schema.AutoSource)
	assert.Error(t, err)
}
