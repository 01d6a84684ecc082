package logsink

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// Sink is a log file shared by every protocol server. Writes are
// serialised so concurrent entries never interleave.
type Sink struct {
	path string
	file afero.File
	mu   sync.Mutex
}

func openSink(fs afero.Fs, path string, truncate bool) (*Sink, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	file, err := fs.OpenFile(path, flags, 0o600) // #nosec G304 -- path provided via config.
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return &Sink{path: path, file: file}, nil
}

// Path returns the file the sink writes to.
func (s *Sink) Path() string {
	return s.path
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	if s == nil || s.file == nil {
		return len(p), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Write(p)
}

// Close closes the underlying file. Later writes are dropped.
func (s *Sink) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
