package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/consolelog/internal/filelock"
)

// sinkLockTimeout bounds how long an append waits for another writer's lock.
const sinkLockTimeout = 250 * time.Millisecond

// FileSink mirrors raw messages to an append-only text file.
// The file is opened on the first append and kept open until Close.
// After any failure the handle is dropped and reopened on the next append.
type FileSink struct {
	path   string
	file   *os.File
	lock   *filelock.FileLock
	broken bool
	mu     sync.Mutex
}

// NewFileSink creates a sink for path. Nothing touches the filesystem until
// the first Append. When locked is true every append holds an advisory lock
// on "<path>.lock" so cooperating processes do not interleave lines.
func NewFileSink(path string, locked bool) *FileSink {
	s := &FileSink{path: path}
	if locked {
		s.lock = filelock.ForFile(path)
	}
	return s
}

// Path returns the configured file path.
func (s *FileSink) Path() string {
	return s.path
}

// Broken reports whether the most recent append failed.
func (s *FileSink) Broken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broken
}

// Append writes line followed by a newline.
func (s *FileSink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	if s.file == nil {
		if err := s.open(); err != nil {
			s.broken = true
			return err
		}
	}

	if s.lock != nil {
		// Contention past the timeout degrades to an unlocked write.
		if acquired, err := s.lock.TryLockWithin(sinkLockTimeout); err == nil && acquired {
			defer s.lock.Unlock()
		}
	}

	if _, err := s.file.WriteString(line + "\n"); err != nil {
		s.file.Close()
		s.file = nil
		s.broken = true
		return fmt.Errorf("failed to write log file %s: %w", s.path, err)
	}

	s.broken = false
	return nil
}

// open creates the parent directory and opens the file for appending.
func (s *FileSink) open() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", s.path, err)
	}
	s.file = file
	return nil
}

// Close flushes and releases the file handle. It is safe to call repeatedly.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	file := s.file
	s.file = nil

	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
