package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/giygas/af3-jobgen/config"
)

const logFilePrefix = "af3jobs-"

// WeeklyFile appends to <dir>/af3jobs-<YYYY>-W<ww>.log and moves to a new
// file when the ISO week changes
type WeeklyFile struct {
	logDir      string
	retention   time.Duration
	currentFile *os.File
	currentWeek string
	mu          sync.Mutex
	now         func() time.Time
}

// OpenWeeklyFile creates logDir if needed, removes log files older than
// retentionWeeks and opens the file of the current week
func OpenWeeklyFile(logDir string, retentionWeeks int) (*WeeklyFile, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	wf := &WeeklyFile{
		logDir:    logDir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		now:       time.Now,
	}

	if _, err := wf.cleanupOldLogs(); err != nil {
		return nil, err
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()
	if err := wf.rotate(getWeekKey(wf.now())); err != nil {
		return nil, err
	}
	return wf, nil
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Path returns the file currently written to
func (wf *WeeklyFile) Path() string {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if wf.currentFile == nil {
		return ""
	}
	return wf.currentFile.Name()
}

// rotate switches to the file of week (caller must hold the lock)
func (wf *WeeklyFile) rotate(week string) error {
	if wf.currentFile != nil {
		if err := wf.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file during rotation: %v\n", err)
		}
		wf.currentFile = nil
	}

	logPath := filepath.Join(wf.logDir, logFilePrefix+week+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	wf.currentFile = file
	wf.currentWeek = week
	return nil
}

func (wf *WeeklyFile) Write(p []byte) (int, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if week := getWeekKey(wf.now()); week != wf.currentWeek {
		if err := wf.rotate(week); err != nil {
			return 0, err
		}
	}
	if wf.currentFile == nil {
		return 0, fmt.Errorf("no log file available")
	}
	return wf.currentFile.Write(p)
}

// cleanupOldLogs removes log files not modified within the retention period
func (wf *WeeklyFile) cleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(wf.logDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := wf.now().Add(-wf.retention)
	deleted := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(wf.logDir, name)); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}

func (wf *WeeklyFile) Close() error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.currentFile == nil {
		return nil
	}
	err := wf.currentFile.Close()
	wf.currentFile = nil
	return err
}

// Options configures Setup
type Options struct {
	Env            config.Environment
	Level          string // LOG_LEVEL, empty for the environment default
	Verbose        bool
	LogDir         string // empty disables the log file
	RetentionWeeks int
	Console        io.Writer // defaults to os.Stderr
}

// OptionsFromConfig maps the loaded configuration onto logger options
func OptionsFromConfig(cfg *config.Config, verbose bool) Options {
	return Options{
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		Verbose:        verbose,
		LogDir:         cfg.LogDir,
		RetentionWeeks: cfg.LogRetentionWeeks,
	}
}

// Setup builds a logger writing text to the console and, when LogDir is
// set, JSON to a weekly log file. The returned closer releases the file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})

	if opts.LogDir == "" {
		return slog.New(consoleHandler), nopCloser{}, nil
	}

	retention := opts.RetentionWeeks
	if retention <= 0 {
		retention = 4
	}
	file, err := OpenWeeklyFile(opts.LogDir, retention)
	if err != nil {
		return slog.New(consoleHandler), nopCloser{}, err
	}

	// The file always keeps info and above, whatever the console shows
	fileLevel := slog.LevelInfo
	if opts.Level != "" {
		fileLevel = min(parseLogLevel(opts.Level), slog.LevelInfo)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: fileLevel,
	})

	handler := &multiHandler{
		handlers: []slog.Handler{consoleHandler, fileHandler},
	}
	return slog.New(handler), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler implements slog.Handler to write to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
