package sink

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
)

// tailChunkSize is the block size used when reading a file tail backwards.
const tailChunkSize = 8 * 1024

// Sink is the append-only log file shared between the supervised KMS server
// and the dashboard. The child process writes through a redirected stdout
// handle, the dashboard writes audit lines through Append and reads through
// Tail. Readers never write; the only truncation happens in Create when a
// fresh child process is launched.
type Sink struct {
	path string
	mu   sync.Mutex
}

// New creates a sink backed by the given file path. The file itself is
// created lazily on first write.
func New(path string) *Sink {
	return &Sink{path: path}
}

// Path returns the on-disk location of the sink.
func (s *Sink) Path() string {
	return s.path
}

// Create truncates the sink and returns an open handle suitable for
// redirecting a child process's output into. The caller owns the handle and
// closes it once the child has exited.
func (s *Sink) Create() (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log sink: %w", err)
	}
	return f, nil
}

// Append writes a single line to the end of the sink. Lines from concurrent
// Append callers are serialized; the child process appends through its own
// handle and is ordered by the operating system.
func (s *Sink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log sink: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to log sink: %w", err)
	}
	return nil
}

// Tail returns up to max lines from the end of the sink, oldest first. A sink
// that does not exist yet yields an empty result, not an error. The read is a
// snapshot: lines appended after the call began are invisible until the next
// call. Only the tail of the file is read, however large the history grows.
func (s *Sink) Tail(max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open log sink: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat log sink: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	// Read blocks backwards from the end until enough line breaks are seen.
	var tail []byte
	offset := size
	for offset > 0 && bytes.Count(tail, []byte{'\n'}) <= max {
		n := int64(tailChunkSize)
		if offset < n {
			n = offset
		}
		offset -= n

		block := make([]byte, n)
		if _, err := f.ReadAt(block, offset); err != nil {
			return nil, fmt.Errorf("failed to read log sink: %w", err)
		}
		tail = append(block, tail...)
	}

	lines := strings.Split(strings.TrimRight(string(tail), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines, nil
}
