package jobdir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/giygas/af3-jobgen/foldinput/entities"
	"github.com/giygas/af3-jobgen/logging"
)

// Writer creates job directories under Root
type Writer struct {
	Root     string
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

// NewWriter returns a Writer with 0755 directories and 0644 files
func NewWriter(root string) *Writer {
	return &Writer{Root: root, DirPerm: 0755, FilePerm: 0644}
}

// EnsureRoot creates the output root. An existing root is fine.
func (w *Writer) EnsureRoot() error {
	if err := os.MkdirAll(w.Root, w.DirPerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.Root, err)
	}
	return nil
}

// Create makes the job directory and both input subdirectories.
// Directories that already exist are left as they are.
func (w *Writer) Create(dirName string) (Paths, error) {
	paths := Resolve(w.Root, dirName)
	for _, dir := range []string{paths.DataInputs, paths.InferenceInputs} {
		if err := os.MkdirAll(dir, w.DirPerm); err != nil {
			return paths, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return paths, nil
}

// WriteFoldInput creates the job directory dirName and writes doc into
// data_inputs/fold_input.json. inference_inputs is left empty.
func (w *Writer) WriteFoldInput(dirName string, doc entities.FoldInput) (Paths, error) {
	paths, err := w.Create(dirName)
	if err != nil {
		return paths, err
	}

	data, err := Marshal(doc)
	if err != nil {
		return paths, fmt.Errorf("failed to marshal fold input for %s: %w", dirName, err)
	}

	if err := os.WriteFile(paths.FoldInput, data, w.FilePerm); err != nil {
		return paths, fmt.Errorf("failed to write %s: %w", paths.FoldInput, err)
	}

	logging.Debug("Fold input written", "path", paths.FoldInput, "bytes", len(data))
	return paths, nil
}

// Marshal encodes doc with two-space indentation. HTML characters are not
// escaped so sequences and names stay readable.
func Marshal(doc entities.FoldInput) ([]byte, error) {
	if doc.Sequences == nil {
		doc.Sequences = []entities.Molecule{}
	}
	if doc.ModelSeeds == nil {
		doc.ModelSeeds = []int{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
