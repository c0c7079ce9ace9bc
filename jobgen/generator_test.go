package jobgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giygas/af3-jobgen/foldinput"
	"github.com/giygas/af3-jobgen/foldinput/entities"
	"github.com/giygas/af3-jobgen/interfaces"
	"github.com/giygas/af3-jobgen/jobdir"
	"github.com/giygas/af3-jobgen/manifest"
	"github.com/giygas/af3-jobgen/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func readFoldInput(t *testing.T, path string) entities.FoldInput {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var doc entities.FoldInput
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return doc
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

const multiManifest = `job_name,mol1_type,mol1_chain,mol1_seq,mol2_type,mol2_chain,mol2_seq
X,protein,A,MKV,,,
Y,protein,A|B,MKVL,rna,R,ACGU
Z,,,,,,
`

func TestRunFileManifestMode(t *testing.T) {
	root := filepath.Join(t.TempDir(), "AF3_Jobs")
	var out bytes.Buffer

	gen := NewGenerator(ManifestMode{}, jobdir.NewWriter(root), &out)
	report, err := gen.RunFile(writeManifest(t, multiManifest), root)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Rows != 3 {
		t.Errorf("Expected 3 rows, got %d", report.Rows)
	}
	if report.Molecules != 3 {
		t.Errorf("Expected 3 molecules, got %d", report.Molecules)
	}
	if report.TripletsSkipped != 3 {
		t.Errorf("Expected 3 skipped triplets, got %d", report.TripletsSkipped)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read output root: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected one directory per row, got %d", len(entries))
	}

	for _, name := range []string{"Job1_X", "Job2_Y", "Job3_Z"} {
		if _, err := os.Stat(filepath.Join(root, name, "data_inputs", "fold_input.json")); err != nil {
			t.Errorf("Expected fold input for %s: %v", name, err)
		}
	}

	doc := readFoldInput(t, filepath.Join(root, "Job2_Y", "data_inputs", "fold_input.json"))
	if len(doc.Sequences) != 2 {
		t.Fatalf("Expected 2 sequences, got %d", len(doc.Sequences))
	}
	if mods := doc.Sequences[1].Modifications; len(mods) != 1 || mods[0].ModificationType != "OMU" {
		t.Errorf("Expected OMU modification, got %v", mods)
	}

	expectedOut := "[+] Created Job1_X with 1 molecules.\n" +
		"[+] Created Job2_Y with 2 molecules.\n" +
		"[+] Created Job3_Z with 0 molecules.\n" +
		"\nAll multi-molecule AF3 job directories generated.\n"
	if out.String() != expectedOut {
		t.Errorf("Expected output\n%q\ngot\n%q", expectedOut, out.String())
	}
}

func TestRunFilePiRNAMode(t *testing.T) {
	root := filepath.Join(t.TempDir(), "jobs")
	var out bytes.Buffer

	mode := PiRNAMode{Complex: foldinput.PiRNAComplex{PiRNA: "ACGU", TargetRNA: "gguu"}}
	path := writeManifest(t, "name,fasta_protein_sequence\n Piwi1 , MKV \nPiwi2,MAAA\n")

	gen := NewGenerator(mode, jobdir.NewWriter(root), &out)
	if _, err := gen.RunFile(path, root); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	foldInput := filepath.Join(root, "job1_Piwi1", "data_inputs", "fold_input.json")
	doc := readFoldInput(t, foldInput)
	if doc.Name != "Piwi1" {
		t.Errorf("Expected trimmed name Piwi1, got %q", doc.Name)
	}
	if doc.Sequences[0].Sequence != "MKV" {
		t.Errorf("Expected trimmed protein, got %q", doc.Sequences[0].Sequence)
	}
	if len(doc.Sequences) != 3 || doc.Sequences[2].Sequence != "GGUU" {
		t.Errorf("Expected uppercased target RNA block, got %+v", doc.Sequences)
	}

	abs, _ := filepath.Abs(root)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if lines[0] != "Created "+foldInput {
		t.Errorf("Unexpected progress line %q", lines[0])
	}
	if last := lines[len(lines)-1]; last != "All jobs created under: "+abs {
		t.Errorf("Unexpected summary line %q", last)
	}
}

func TestRunFilePiRNAModeUnsupportedBase(t *testing.T) {
	root := t.TempDir()
	mode := PiRNAMode{Complex: foldinput.PiRNAComplex{PiRNA: "ACGT"}}
	path := writeManifest(t, "name,fasta_protein_sequence\nPiwi1,MKV\n")

	var out bytes.Buffer
	_, err := NewGenerator(mode, jobdir.NewWriter(root), &out).RunFile(path, root)

	var baseErr *foldinput.UnsupportedBaseError
	if !errors.As(err, &baseErr) {
		t.Fatalf("Expected *UnsupportedBaseError, got %v", err)
	}
	if strings.Contains(out.String(), "All jobs created") {
		t.Error("Expected no summary line after a failed run")
	}
}

func TestRunFilePiRNAModeEmptyPiRNA(t *testing.T) {
	root := t.TempDir()
	mode := PiRNAMode{Complex: foldinput.PiRNAComplex{PiRNA: "  "}}
	path := writeManifest(t, "name,fasta_protein_sequence\nPiwi1,MKV\n")

	_, err := NewGenerator(mode, jobdir.NewWriter(root), nil).RunFile(path, root)
	if !errors.Is(err, foldinput.ErrEmptySequence) {
		t.Fatalf("Expected ErrEmptySequence, got %v", err)
	}
}

func TestRunFileMissingColumns(t *testing.T) {
	tests := []struct {
		name     string
		mode     interfaces.JobMode
		manifest string
	}{
		{"manifest without job_name", ManifestMode{}, "name,mol1_type\nx,protein\n"},
		{"pirna without protein column", PiRNAMode{}, "name\nPiwi1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "out")
			gen := NewGenerator(tt.mode, jobdir.NewWriter(root), nil)

			_, err := gen.RunFile(writeManifest(t, tt.manifest), root)
			var formatErr *manifest.FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Expected *manifest.FormatError, got %v", err)
			}
			if _, statErr := os.Stat(root); !os.IsNotExist(statErr) {
				t.Error("Expected no output root to be created for a bad manifest")
			}
		})
	}
}

// sliceSource is a RowSource over rows in memory, optionally failing at
// a given position
type sliceSource struct {
	rows   []manifest.Row
	failAt int
	pos    int
}

func (s *sliceSource) Next() (manifest.Row, error) {
	if s.failAt > 0 && s.pos == s.failAt {
		return manifest.Row{}, fmt.Errorf("disk read error")
	}
	if s.pos >= len(s.rows) {
		return manifest.Row{}, io.EOF
	}
	s.pos++
	return s.rows[s.pos-1], nil
}

// failingWriter fails on the n-th job
type failingWriter struct {
	failOn  int
	written []string
}

func (w *failingWriter) EnsureRoot() error { return nil }

func (w *failingWriter) WriteFoldInput(dirName string, doc entities.FoldInput) (jobdir.Paths, error) {
	if len(w.written)+1 == w.failOn {
		return jobdir.Paths{}, fmt.Errorf("no space left on device")
	}
	w.written = append(w.written, dirName)
	return jobdir.Resolve("/virtual", dirName), nil
}

func nameRow(name string) manifest.Row {
	return manifest.RowFromMap([]string{"job_name"}, map[string]string{"job_name": name})
}

func TestRunAbortsOnWriterError(t *testing.T) {
	w := &failingWriter{failOn: 2}
	src := &sliceSource{rows: []manifest.Row{nameRow("a"), nameRow("b"), nameRow("c")}}

	report, err := NewGenerator(ManifestMode{}, w, nil).Run(src, "/virtual")
	if err == nil {
		t.Fatal("Expected error from the writer")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected error to name row 2, got %v", err)
	}
	if len(w.written) != 1 || w.written[0] != "Job1_a" {
		t.Errorf("Expected only the first job written, got %v", w.written)
	}
	if report.Rows != 1 {
		t.Errorf("Expected 1 row in the report, got %d", report.Rows)
	}
}

func TestRunAbortsOnSourceError(t *testing.T) {
	w := &failingWriter{}
	src := &sliceSource{rows: []manifest.Row{nameRow("a"), nameRow("b")}, failAt: 1}

	_, err := NewGenerator(ManifestMode{}, w, nil).Run(src, "/virtual")
	if err == nil || !strings.Contains(err.Error(), "disk read error") {
		t.Fatalf("Expected source error, got %v", err)
	}
	if len(w.written) != 1 {
		t.Errorf("Expected 1 job before the failure, got %d", len(w.written))
	}
}

func TestRunReportsDuplicateAndEmptyNames(t *testing.T) {
	w := &failingWriter{}
	src := &sliceSource{rows: []manifest.Row{nameRow("a"), nameRow(" a "), nameRow(""), nameRow("a")}}

	report, err := NewGenerator(ManifestMode{}, w, nil).Run(src, "/virtual")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(report.DuplicateNames) != 1 || report.DuplicateNames[0] != "a" {
		t.Errorf("Expected duplicate [a], got %v", report.DuplicateNames)
	}
	if report.EmptyJobNames != 1 {
		t.Errorf("Expected 1 empty job name, got %d", report.EmptyJobNames)
	}
	expectedDirs := []string{"Job1_a", "Job2_a", "Job3_", "Job4_a"}
	for i, dir := range expectedDirs {
		if w.written[i] != dir {
			t.Errorf("Expected dir %s, got %s", dir, w.written[i])
		}
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	before := testutil.ToFloat64(metrics.JobsWritten.WithLabelValues("manifest"))
	beforeMods := testutil.ToFloat64(metrics.RNAModifications.WithLabelValues("manifest", "OMG"))

	row := manifest.RowFromMap(
		[]string{"job_name", "mol1_type", "mol1_chain", "mol1_seq"},
		map[string]string{"job_name": "m", "mol1_type": "rna", "mol1_chain": "R", "mol1_seq": "AAG"},
	)
	src := &sliceSource{rows: []manifest.Row{row, row}}

	if _, err := NewGenerator(ManifestMode{}, &failingWriter{}, nil).Run(src, "/virtual"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := testutil.ToFloat64(metrics.JobsWritten.WithLabelValues("manifest")); got != before+2 {
		t.Errorf("Expected jobs counter %v, got %v", before+2, got)
	}
	if got := testutil.ToFloat64(metrics.RNAModifications.WithLabelValues("manifest", "OMG")); got != beforeMods+2 {
		t.Errorf("Expected OMG counter %v, got %v", beforeMods+2, got)
	}
}

func TestRunIDIsUnique(t *testing.T) {
	a := NewGenerator(ManifestMode{}, &failingWriter{}, nil)
	b := NewGenerator(ManifestMode{}, &failingWriter{}, nil)
	if a.runID == "" || a.runID == b.runID {
		t.Errorf("Expected distinct run ids, got %q and %q", a.runID, b.runID)
	}
}
