package domain

import "time"

// AuditEntry records one handled request for operational forensics.
type AuditEntry struct {
	RequestID  string    `json:"request_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	Details    string    `json:"details"` // JSON blob
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Audit action constants.
const (
	AuditActionHTTPRequest = "http_request"
)
