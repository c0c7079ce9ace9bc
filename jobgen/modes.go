package jobgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/giygas/af3-jobgen/foldinput"
	"github.com/giygas/af3-jobgen/foldinput/entities"
	"github.com/giygas/af3-jobgen/interfaces"
	"github.com/giygas/af3-jobgen/jobdir"
	"github.com/giygas/af3-jobgen/manifest"
)

// Compile-time checks to ensure the modes and the directory writer
// implement their contracts
var (
	_ interfaces.JobMode   = ManifestMode{}
	_ interfaces.JobMode   = PiRNAMode{}
	_ interfaces.JobWriter = (*jobdir.Writer)(nil)
)

// ManifestMode builds multi-molecule jobs from job_name and molN_* columns
type ManifestMode struct{}

func (ManifestMode) Name() string { return "manifest" }

func (ManifestMode) RequiredColumns() []string {
	return []string{foldinput.JobNameColumn}
}

func (ManifestMode) Build(row manifest.Row) (entities.FoldInput, foldinput.ParseStats, error) {
	doc, stats := foldinput.ManifestJob(row)
	return doc, stats, nil
}

func (ManifestMode) DirName(index int, jobName string) string {
	return jobdir.ManifestDirName(index, jobName)
}

func (ManifestMode) ProgressLine(paths jobdir.Paths, doc entities.FoldInput) string {
	return fmt.Sprintf("[+] Created %s with %d molecules.", paths.Name, len(doc.Sequences))
}

func (ManifestMode) SummaryLine(string) string {
	return "\nAll multi-molecule AF3 job directories generated."
}

// PiRNAMode pairs the protein of each row with a shared piRNA complex
type PiRNAMode struct {
	Complex foldinput.PiRNAComplex
}

func (PiRNAMode) Name() string { return "pirna" }

func (PiRNAMode) RequiredColumns() []string {
	return []string{foldinput.NameColumn, foldinput.ProteinSequenceColumn}
}

func (m PiRNAMode) Build(row manifest.Row) (entities.FoldInput, foldinput.ParseStats, error) {
	name := strings.TrimSpace(row.Value(foldinput.NameColumn))
	protein := strings.TrimSpace(row.Value(foldinput.ProteinSequenceColumn))

	doc, err := m.Complex.Job(name, protein)
	if err != nil {
		return doc, foldinput.ParseStats{}, fmt.Errorf("job %q: %w", name, err)
	}
	return doc, foldinput.ParseStats{}, nil
}

func (PiRNAMode) DirName(index int, jobName string) string {
	return jobdir.PiRNADirName(index, jobName)
}

func (PiRNAMode) ProgressLine(paths jobdir.Paths, _ entities.FoldInput) string {
	return "Created " + paths.FoldInput
}

func (PiRNAMode) SummaryLine(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return "\nAll jobs created under: " + root
}
