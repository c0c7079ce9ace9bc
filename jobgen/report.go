package jobgen

import (
	"log/slog"
	"time"

	"github.com/giygas/af3-jobgen/jobdir"
)

// Report summarises a run. Nothing in it is fatal; it is logged so odd
// manifests can be spotted after the fact.
type Report struct {
	RunID    string
	Mode     string
	Manifest string
	Root     string

	Rows            int
	Molecules       int
	TripletsSkipped int
	UnmodifiedRNA   int
	EmptyJobNames   int
	DuplicateNames  []string
	Jobs            []jobdir.Paths
	Duration        time.Duration

	seenNames map[string]int
}

func newReport(runID, mode, root string) *Report {
	return &Report{
		RunID:     runID,
		Mode:      mode,
		Root:      root,
		seenNames: make(map[string]int),
	}
}

// addName records a job name, flagging repeats once
func (r *Report) addName(name string) {
	if name == "" {
		r.EmptyJobNames++
		return
	}
	r.seenNames[name]++
	if r.seenNames[name] == 2 {
		r.DuplicateNames = append(r.DuplicateNames, name)
	}
}

// log writes the quality findings and the completion record
func (r *Report) log(logger *slog.Logger) {
	if r.TripletsSkipped > 0 {
		logger.Warn("Incomplete molecule triplets skipped",
			"count", r.TripletsSkipped,
		)
	}

	if r.UnmodifiedRNA > 0 {
		logger.Warn("RNA molecules left without terminal methylation",
			"count", r.UnmodifiedRNA,
		)
	}

	if r.EmptyJobNames > 0 {
		logger.Warn("Rows with an empty job name",
			"count", r.EmptyJobNames,
		)
	}

	if len(r.DuplicateNames) > 0 {
		logger.Warn("Duplicate job names detected",
			"total", len(r.DuplicateNames),
			"names", r.DuplicateNames,
		)
	}

	logger.Info("Job generation completed",
		"manifest", r.Manifest,
		"output_dir", r.Root,
		"jobs", r.Rows,
		"molecules", r.Molecules,
		"duration", r.Duration.String(),
	)
}
