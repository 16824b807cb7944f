package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/reviewlens/reviewlens/internal/domain"
	"github.com/reviewlens/reviewlens/internal/port"
)

// Compile-time interface check.
var _ port.ReviewLog = (*ReviewFile)(nil)

// ReviewFile is an append-only JSONL log of reviews. Line i holds the review
// whose vector lives at record i of the vector log; strict append order is
// the whole contract.
type ReviewFile struct {
	path string

	mu   sync.Mutex
	file *os.File
}

// OpenReviewFile opens (or creates) the review log at dir/reviews.jsonl.
func OpenReviewFile(dir string) (*ReviewFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, "reviews.jsonl")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open review file: %w", err)
	}
	return &ReviewFile{path: path, file: f}, nil
}

// Path returns the backing file path.
func (s *ReviewFile) Path() string {
	return s.path
}

// Append serializes r as one JSON line at the end of the log.
func (s *ReviewFile) Append(r domain.Review) error {
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	return nil
}

// Read scans the log sequentially and returns the id-th review. O(id) cost.
func (s *ReviewFile) Read(id int) (domain.Review, error) {
	var zero domain.Review
	if id < 0 {
		return zero, fmt.Errorf("review id %d: %w", id, port.ErrNotFound)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return zero, fmt.Errorf("open review file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; scanner.Scan(); i++ {
		if i != id {
			continue
		}
		var r domain.Review
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return zero, fmt.Errorf("decode review line %d: %w", id, err)
		}
		return r, nil
	}
	if err := scanner.Err(); err != nil {
		return zero, fmt.Errorf("scan review file: %w", err)
	}
	return zero, fmt.Errorf("review id %d: %w", id, port.ErrNotFound)
}

// Count returns the number of lines currently present.
func (s *ReviewFile) Count() (int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return 0, fmt.Errorf("open review file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan review file: %w", err)
	}
	return n, nil
}

// Close closes the backing file.
func (s *ReviewFile) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
