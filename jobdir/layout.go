// Package jobdir creates job directories and writes fold inputs into them.
//
// Layout of a job:
//
//	<root>/<job dir>/data_inputs/fold_input.json
//	<root>/<job dir>/inference_inputs/
package jobdir

import (
	"fmt"
	"path/filepath"
)

const (
	DataInputsDir      = "data_inputs"
	InferenceInputsDir = "inference_inputs"
	FoldInputFile      = "fold_input.json"
)

// NameFunc computes a job directory name from the 1-based row index and
// the job name
type NameFunc func(index int, jobName string) string

// ManifestDirName names manifest jobs Job{N}_{name}
func ManifestDirName(index int, jobName string) string {
	return fmt.Sprintf("Job%d_%s", index, jobName)
}

// PiRNADirName names piRNA jobs job{N}_{name}
func PiRNADirName(index int, jobName string) string {
	return fmt.Sprintf("job%d_%s", index, jobName)
}

// Paths locates the parts of one job directory
type Paths struct {
	Name            string
	Dir             string
	DataInputs      string
	InferenceInputs string
	FoldInput       string
}

// Resolve returns the paths of the job directory dirName under root
func Resolve(root, dirName string) Paths {
	dir := filepath.Join(root, dirName)
	data := filepath.Join(dir, DataInputsDir)
	return Paths{
		Name:            dirName,
		Dir:             dir,
		DataInputs:      data,
		InferenceInputs: filepath.Join(dir, InferenceInputsDir),
		FoldInput:       filepath.Join(data, FoldInputFile),
	}
}
