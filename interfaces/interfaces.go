// Package interfaces defines the contracts the job generator is built from,
// so readers, modes and writers can be swapped in tests.
package interfaces

import (
	"github.com/giygas/af3-jobgen/foldinput"
	"github.com/giygas/af3-jobgen/foldinput/entities"
	"github.com/giygas/af3-jobgen/jobdir"
	"github.com/giygas/af3-jobgen/manifest"
)

// RowSource yields manifest rows in file order. Next returns io.EOF after
// the last row.
type RowSource interface {
	Next() (manifest.Row, error)
}

// JobWriter persists fold inputs as job directories.
type JobWriter interface {
	// EnsureRoot creates the output root if it does not exist
	EnsureRoot() error

	// WriteFoldInput creates the job directory dirName with its fixed
	// subdirectories and writes doc into it
	WriteFoldInput(dirName string, doc entities.FoldInput) (jobdir.Paths, error)
}

// JobMode is one entry point of the generator: which columns it needs, how
// a row becomes a fold input and how its jobs are named and reported.
type JobMode interface {
	Name() string
	RequiredColumns() []string

	// Build returns the fold input of row. A returned error aborts the run.
	Build(row manifest.Row) (entities.FoldInput, foldinput.ParseStats, error)

	// DirName names the job directory of the index-th row (1-based)
	DirName(index int, jobName string) string

	// ProgressLine is printed after each job is written
	ProgressLine(paths jobdir.Paths, doc entities.FoldInput) string

	// SummaryLine is printed once every row has been written
	SummaryLine(root string) string
}
