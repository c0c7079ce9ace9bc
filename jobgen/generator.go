// Package jobgen runs a manifest through a job mode: each row becomes a
// fold input written to its own job directory, strictly in file order.
package jobgen

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/giygas/af3-jobgen/foldinput"
	"github.com/giygas/af3-jobgen/foldinput/entities"
	"github.com/giygas/af3-jobgen/interfaces"
	"github.com/giygas/af3-jobgen/logging"
	"github.com/giygas/af3-jobgen/manifest"
	"github.com/giygas/af3-jobgen/metrics"
	"github.com/google/uuid"
)

// Generator writes one job directory per manifest row using injected
// dependencies
type Generator struct {
	mode   interfaces.JobMode
	writer interfaces.JobWriter
	out    io.Writer
	runID  string
	logger *slog.Logger
}

// NewGenerator creates a generator printing progress lines to out
func NewGenerator(mode interfaces.JobMode, writer interfaces.JobWriter, out io.Writer) *Generator {
	if out == nil {
		out = io.Discard
	}
	runID := uuid.NewString()
	return &Generator{
		mode:   mode,
		writer: writer,
		out:    out,
		runID:  runID,
		logger: logging.With("run_id", runID, "mode", mode.Name()),
	}
}

// RunFile opens the manifest at path, checks the mode's columns and runs it
func (g *Generator) RunFile(path, root string) (*Report, error) {
	reader, err := manifest.Open(path, g.mode.RequiredColumns()...)
	if err != nil {
		// reported by the caller
		g.logger.Debug("Failed to open manifest", "manifest", path, "error", err)
		metrics.LastRun.WithLabelValues(g.mode.Name(), "failure").SetToCurrentTime()
		return nil, err
	}
	g.logger.Debug("Manifest opened", "manifest", path, "columns", reader.Header())
	report, err := g.Run(reader, root)
	if report != nil {
		report.Manifest = path
	}
	return report, err
}

// Run writes a job for every row of src under root. The first error aborts
// the run; directories of earlier rows are left in place.
func (g *Generator) Run(src interfaces.RowSource, root string) (*Report, error) {
	start := time.Now()
	mode := g.mode.Name()
	report := newReport(g.runID, mode, root)

	err := g.run(src, report)
	report.Duration = time.Since(start)
	metrics.RunDuration.WithLabelValues(mode).Observe(report.Duration.Seconds())

	if err != nil {
		metrics.LastRun.WithLabelValues(mode, "failure").SetToCurrentTime()
		g.logger.Debug("Job generation failed", "rows_written", report.Rows, "error", err)
		return report, err
	}

	metrics.LastRun.WithLabelValues(mode, "success").SetToCurrentTime()
	report.log(g.logger)
	fmt.Fprintln(g.out, g.mode.SummaryLine(root))
	return report, nil
}

func (g *Generator) run(src interfaces.RowSource, report *Report) error {
	if err := g.writer.EnsureRoot(); err != nil {
		return err
	}

	for index := 1; ; index++ {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		doc, stats, err := g.mode.Build(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", index, err)
		}

		dirName := g.mode.DirName(index, doc.Name)
		paths, err := g.writer.WriteFoldInput(dirName, doc)
		if err != nil {
			return fmt.Errorf("row %d: %w", index, err)
		}

		g.record(report, doc, stats)
		report.Jobs = append(report.Jobs, paths)
		g.logger.Debug("Job written", "row", index, "job_dir", paths.Dir, "molecules", len(doc.Sequences))
		fmt.Fprintln(g.out, g.mode.ProgressLine(paths, doc))
	}
}

// record adds one written job to the report and the metrics
func (g *Generator) record(report *Report, doc entities.FoldInput, stats foldinput.ParseStats) {
	mode := g.mode.Name()

	report.Rows++
	report.addName(doc.Name)
	report.Molecules += len(doc.Sequences)
	report.TripletsSkipped += stats.Skipped
	report.UnmodifiedRNA += stats.Unmodified

	metrics.JobsWritten.WithLabelValues(mode).Inc()
	metrics.TripletsSkipped.Add(float64(stats.Skipped))
	for _, mol := range doc.Sequences {
		metrics.Molecules.WithLabelValues(mode, strings.ToLower(mol.Type)).Inc()
		for _, mod := range mol.Modifications {
			metrics.RNAModifications.WithLabelValues(mode, mod.ModificationType).Inc()
		}
	}
}
