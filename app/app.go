// Package app wires configuration, logging and the generator behind the
// command-line entry points.
package app

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/giygas/af3-jobgen/config"
	"github.com/giygas/af3-jobgen/interfaces"
	"github.com/giygas/af3-jobgen/jobdir"
	"github.com/giygas/af3-jobgen/jobgen"
	"github.com/giygas/af3-jobgen/logging"
	"github.com/giygas/af3-jobgen/metrics"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// newFlagSet returns a FlagSet that reports errors instead of exiting
func newFlagSet(name, about string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s: %s\n\nUsage of %s:\n", name, about, name)
		fs.PrintDefaults()
	}
	return fs
}

// usageExit maps a flag parsing error to an exit code
func usageExit(fs *flag.FlagSet, err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	fs.Usage()
	return ExitUsage
}

// environment loads .env and the configuration, then installs the logger.
// The returned func flushes metrics and closes the log file.
func environment(stderr io.Writer, verbose bool) (*config.Config, func(), error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	opts := logging.OptionsFromConfig(cfg, verbose)
	opts.Console = stderr
	logger, closer, err := logging.Setup(opts)
	logging.InitLogger(logger)
	if err != nil {
		// console logging still works
		logging.Warn("File logging disabled", "log_dir", cfg.LogDir, "error", err)
	}

	done := func() {
		if cfg.MetricsFile != "" {
			if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
				logging.Warn("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
			}
		}
		_ = closer.Close()
	}
	return cfg, done, nil
}

// generate runs mode over the manifest and reports the outcome
func generate(mode interfaces.JobMode, manifestPath, root string, stdout, stderr io.Writer, verbose bool) int {
	cfg, done, err := environment(stderr, verbose)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}
	defer done()

	writer := jobdir.NewWriter(root)
	writer.DirPerm = cfg.DirPerm
	writer.FilePerm = cfg.FilePerm

	gen := jobgen.NewGenerator(mode, writer, stdout)
	if _, err := gen.RunFile(manifestPath, root); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}
	return ExitOK
}
