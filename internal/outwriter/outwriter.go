// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/dataio"
	"github.com/locusproject/locus/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRanking prints a ranking report using the configured output format.
func (ow *OutWriter) WriteRanking(report *schema.RankReport, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		return exportRankingParquet(report, cfg)
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteRankingResults(w, report, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteWeights prints a weight inspection report using the configured output format.
func (ow *OutWriter) WriteWeights(report *schema.WeightReport, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteWeightsResults(w, report, cfg)
	}, successMessage(cfg.Output))
}

// WriteCriteria prints the criteria documentation using the configured output format.
func (ow *OutWriter) WriteCriteria(report *schema.CriteriaReport, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteCriteriaResults(w, report, cfg)
	}, successMessage(cfg.Output))
}

// WriteCheck prints a data gate verdict using the configured output format.
// Deciding the exit code from Passed stays with the caller.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteCheckResults(w, result, cfg)
	}, successMessage(cfg.Output))
}

// WriteSessions prints saved sessions using the configured output format.
func (ow *OutWriter) WriteSessions(records []schema.SessionRecord, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteSessionList(w, records, cfg)
	}, successMessage(cfg.Output))
}

// WriteSession prints one saved session using the configured output format.
func (ow *OutWriter) WriteSession(record schema.SessionRecord, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteSessionDetail(w, record, cfg)
	}, successMessage(cfg.Output))
}

// WriteStatus prints session store status using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.SessionStoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errParquetUnsupported
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		return WriteStoreStatus(w, status, cfg)
	}, successMessage(cfg.Output))
}

// errParquetUnsupported rejects parquet for surfaces that have no columnar
// export. Only rankings do.
var errParquetUnsupported = errors.New("parquet output is only available for rank results")

// exportRankingParquet writes the current ranking to a Parquet file. This is
// an export encoding like CSV, not a replayable store; nothing read back
// from the file can skip a recomputation.
func exportRankingParquet(report *schema.RankReport, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires an output file (set --output-file)")
	}
	records := dataio.ConvertRanking(schema.EnrichRanking(report.Entities))
	if err := dataio.WriteRankingParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	// Events cannot ride along in the Parquet file, so they go to stderr
	contract.LogEvents(report.Events)
	fmt.Fprintf(os.Stderr, "%sWrote Parquet to %s\n", savePrefix(cfg), cfg.OutputFile)
	return nil
}
