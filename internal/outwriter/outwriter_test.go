package outwriter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutWriterWritesFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "weights.json")
	cfg := &contract.Config{Output: schema.JSONOut, Precision: 3, OutputFile: outputFile}

	ow := NewOutWriter()
	require.NoError(t, ow.WriteWeights(sampleWeightReport(), cfg))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "global_weights")
}

func TestOutWriterRankingParquet(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "ranking.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, Precision: 3, OutputFile: outputFile}

	ow := NewOutWriter()
	require.NoError(t, ow.WriteRanking(sampleRankReport(), cfg, time.Millisecond))

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOutWriterRankingParquetRequiresOutputFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut, Precision: 3}

	ow := NewOutWriter()
	err := ow.WriteRanking(sampleRankReport(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output file")
}

func TestOutWriterParquetOnlyForRankings(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut, Precision: 3, OutputFile: "out.parquet"}

	ow := NewOutWriter()
	assert.ErrorIs(t, ow.WriteWeights(sampleWeightReport(), cfg), errParquetUnsupported)
	assert.ErrorIs(t, ow.WriteCriteria(sampleCriteriaReport(), cfg), errParquetUnsupported)
	assert.ErrorIs(t, ow.WriteCheck(passingCheckResult(), cfg), errParquetUnsupported)
	assert.ErrorIs(t, ow.WriteSessions(sampleSessionRecords(), cfg), errParquetUnsupported)
	assert.ErrorIs(t, ow.WriteStatus(schema.SessionStoreStatus{}, cfg), errParquetUnsupported)
}
