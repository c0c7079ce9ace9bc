// Command af3-manifest generates AlphaFold 3 job directories from a
// manifest with job_name and molN_type/molN_chain/molN_seq columns.
//
// Usage:
//
//	af3-manifest --manifest manifest.csv --output_dir AF3_Jobs
package main

import (
	"os"

	"github.com/giygas/af3-jobgen/app"
)

func main() {
	os.Exit(app.RunManifest(os.Args[1:], os.Stdout, os.Stderr))
}
