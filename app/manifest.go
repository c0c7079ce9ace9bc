package app

import (
	"errors"
	"flag"
	"io"

	"github.com/giygas/af3-jobgen/jobgen"
)

// ManifestOptions holds the flags of the manifest entry point
type ManifestOptions struct {
	Manifest  string
	OutputDir string
	Verbose   bool
}

// ParseManifestArgs registers and parses the manifest flags
func ParseManifestArgs(fs *flag.FlagSet, argv []string) (ManifestOptions, error) {
	var opt ManifestOptions

	fs.StringVar(&opt.Manifest, "manifest", "", "path to manifest CSV (job_name, molN_type, molN_chain, molN_seq) [*]")
	fs.StringVar(&opt.OutputDir, "output_dir", "", "where to create job directories [*]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "log progress even in the test environment [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if opt.Manifest == "" {
		return opt, errors.New("--manifest is required")
	}
	if opt.OutputDir == "" {
		return opt, errors.New("--output_dir is required")
	}
	return opt, nil
}

// RunManifest is the entry point of af3-manifest
func RunManifest(argv []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("af3-manifest", "generate AF3 job directories for multi-molecule inputs", stderr)
	opt, err := ParseManifestArgs(fs, argv)
	if err != nil {
		return usageExit(fs, err, stderr)
	}
	return generate(jobgen.ManifestMode{}, opt.Manifest, opt.OutputDir, stdout, stderr, opt.Verbose)
}
