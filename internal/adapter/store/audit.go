package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reviewlens/reviewlens/internal/domain"
)

// AuditFile persists audit entries as JSONL in the data dir.
type AuditFile struct {
	mu   sync.Mutex
	file *os.File
}

// OpenAuditFile opens (or creates) dir/audit.jsonl.
func OpenAuditFile(dir string) (*AuditFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "audit.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	return &AuditFile{file: f}, nil
}

// WriteAudit appends one audit entry.
func (a *AuditFile) WriteAudit(requestID, action, resource, details, ip, userAgent string) error {
	line, err := json.Marshal(domain.AuditEntry{
		RequestID:  requestID,
		Action:     action,
		Resource:   resource,
		Details:    details,
		IP:         ip,
		UserAgent:  userAgent,
		RecordedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	line = append(line, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.file.Write(line); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Close closes the backing file.
func (a *AuditFile) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}
