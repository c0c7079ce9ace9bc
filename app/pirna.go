package app

import (
	"errors"
	"flag"
	"io"

	"github.com/giygas/af3-jobgen/foldinput"
	"github.com/giygas/af3-jobgen/jobgen"
)

// PiRNAOptions holds the flags of the piRNA entry point
type PiRNAOptions struct {
	CSV       string
	PiRNA     string
	TargetRNA string
	OutDir    string
	Verbose   bool
}

// ParsePiRNAArgs registers and parses the piRNA flags
func ParsePiRNAArgs(fs *flag.FlagSet, argv []string) (PiRNAOptions, error) {
	var opt PiRNAOptions

	fs.StringVar(&opt.CSV, "csv", "", "input CSV (columns: name, fasta_protein_sequence) [*]")
	fs.StringVar(&opt.PiRNA, "piRNA", "", "piRNA sequence [*]")
	fs.StringVar(&opt.TargetRNA, "targetRNA", "", "optional target RNA sequence")
	fs.StringVar(&opt.OutDir, "outdir", "jobs", "output directory for job folders [jobs]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "log progress even in the test environment [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if opt.CSV == "" {
		return opt, errors.New("--csv is required")
	}
	// Presence only; an empty or unmethylatable piRNA fails when the
	// first job is built
	if !isSet(fs, "piRNA") {
		return opt, errors.New("--piRNA is required")
	}
	return opt, nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// RunPiRNA is the entry point of af3-pirna
func RunPiRNA(argv []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("af3-pirna", "generate fold_input.json files for Piwi protein / piRNA jobs", stderr)
	opt, err := ParsePiRNAArgs(fs, argv)
	if err != nil {
		return usageExit(fs, err, stderr)
	}

	mode := jobgen.PiRNAMode{
		Complex: foldinput.PiRNAComplex{PiRNA: opt.PiRNA, TargetRNA: opt.TargetRNA},
	}
	return generate(mode, opt.CSV, opt.OutDir, stdout, stderr, opt.Verbose)
}
