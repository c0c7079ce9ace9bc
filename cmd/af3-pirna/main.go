// Command af3-pirna generates AlphaFold 3 fold inputs pairing each Piwi
// protein of a CSV with one piRNA, methylated on its 3' nucleotide, and an
// optional target RNA.
//
// Usage:
//
//	af3-pirna --csv piwi.csv --piRNA UGACAGAAGAGAGUGAGCAC --outdir jobs
package main

import (
	"os"

	"github.com/giygas/af3-jobgen/app"
)

func main() {
	os.Exit(app.RunPiRNA(os.Args[1:], os.Stdout, os.Stderr))
}
