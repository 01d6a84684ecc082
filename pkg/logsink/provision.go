// Package logsink provisions the shared log files: the session, poisoners
// and analyze logs, plus the per-category credential file templates.
package logsink

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// DirName is the log directory below the responder root.
const DirName = "logs"

// Options names the log directory and the three structured log files.
type Options struct {
	Dir          string
	SessionLog   string
	PoisonersLog string
	AnalyzeLog   string
}

// SessionPath returns the full path of the session log.
func (o Options) SessionPath() string { return filepath.Join(o.Dir, o.SessionLog) }

// PoisonersPath returns the full path of the poisoners log.
func (o Options) PoisonersPath() string { return filepath.Join(o.Dir, o.PoisonersLog) }

// AnalyzePath returns the full path of the analyze log.
func (o Options) AnalyzePath() string { return filepath.Join(o.Dir, o.AnalyzeLog) }

// Sinks are the three eagerly opened logs.
type Sinks struct {
	Session   *slog.Logger
	Poisoners *slog.Logger
	Analyze   *slog.Logger

	files []*Sink
}

// EnsureDir creates dir when it does not exist yet.
func EnsureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create log dir %s: %w", dir, err)
	}
	return nil
}

// Provision creates the log directory and opens the three logs. The session
// and analyze logs are appended to, the poisoners log is truncated. If a log
// cannot be opened the ones already opened are closed again.
func Provision(fs afero.Fs, opts Options) (*Sinks, error) {
	if err := EnsureDir(fs, opts.Dir); err != nil {
		return nil, err
	}

	specs := []struct {
		path     string
		truncate bool
	}{
		{opts.SessionPath(), false},
		{opts.PoisonersPath(), true},
		{opts.AnalyzePath(), false},
	}

	sinks := &Sinks{}
	for _, spec := range specs {
		sink, err := openSink(fs, spec.path, spec.truncate)
		if err != nil {
			return nil, multierr.Append(err, sinks.Close())
		}
		sinks.files = append(sinks.files, sink)
	}

	sinks.Session = newLogger(sinks.files[0])
	sinks.Poisoners = newLogger(sinks.files[1])
	sinks.Analyze = newLogger(sinks.files[2])
	return sinks, nil
}

func newLogger(sink *Sink) *slog.Logger {
	return slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Files returns the open sinks in session, poisoners, analyze order.
func (s *Sinks) Files() []*Sink {
	if s == nil {
		return nil
	}
	return s.files
}

// Close closes every sink and reports all failures.
func (s *Sinks) Close() error {
	if s == nil {
		return nil
	}
	var err error
	for _, f := range s.files {
		err = multierr.Append(err, f.Close())
	}
	return err
}
