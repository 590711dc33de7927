package exporter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finlens/internal/extraction"
	"finlens/pkg/contracts/domain"
)

func runFixture(t *testing.T) *domain.Result {
	t.Helper()
	content := []byte("Year,Revenue,Net Profit\n2021,100,10\n2022,120,\n2023,150,20")
	result := extraction.NewPipeline(nil, nil).Run(context.Background(), "acme.csv", content)
	require.Empty(t, result.FailureCode)
	return result
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	result := runFixture(t)

	path, err := NewWriter(dir, false, nil).WriteCSV(result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme_metrics.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	assert.Equal(t, "Metric,2021,2022,2023", lines[0])
	assert.Contains(t, lines, "REVENUE,100,120,150")
	assert.Contains(t, lines, "NET_PROFIT,10,,20", "missing value exports as an empty cell")

	var margin string
	for _, line := range lines {
		if strings.HasPrefix(line, "NET_MARGIN,") {
			margin = line
		}
	}
	require.NotEmpty(t, margin, "derived series row present")
	fields := strings.Split(margin, ",")
	require.Len(t, fields, 4)
	assert.Equal(t, "0.1", fields[1])
	assert.Empty(t, fields[2], "gap in input propagates to the derived row")
}

func TestWriteCSVBOM(t *testing.T) {
	dir := t.TempDir()
	result := runFixture(t)

	path, err := NewWriter(dir, true, nil).WriteCSV(result)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	result := runFixture(t)

	path, err := NewWriter(dir, false, nil).WriteJSON(result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme_result.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.RunID, decoded["run_id"])
	assert.NotEmpty(t, decoded["diagnostics"])
}

func TestResolvePathFallback(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false, nil)

	result := runFixture(t)
	result.Source = ""
	path, err := w.WriteCSV(result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "result_metrics.csv"), path)
}
