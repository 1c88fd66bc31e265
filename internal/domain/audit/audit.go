package audit

import (
	"fmt"
	"strings"
	"time"
)

// Operation is the kind of mutation performed from a screen.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// FailureKind records how a failed mutation was classified.
type FailureKind string

const (
	FailureNone    FailureKind = ""
	FailureFields  FailureKind = "field_errors"
	FailureMessage FailureKind = "message"
	FailureUnknown FailureKind = "unknown"
)

// Entry is one row of the mutation audit log.
type Entry struct {
	ID          int64       `json:"id"`
	SessionID   string      `json:"sessionId"`
	Screen      string      `json:"screen"`
	Op          Operation   `json:"op"`
	ResourceID  string      `json:"resourceId,omitempty"`
	Success     bool        `json:"success"`
	FailureKind FailureKind `json:"failureKind,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewEntry creates an audit entry with validation
func NewEntry(sessionID, screen string, op Operation, resourceID string, success bool, kind FailureKind) (*Entry, error) {
	if strings.TrimSpace(screen) == "" {
		return nil, fmt.Errorf("screen is required")
	}
	if !isValidOperation(op) {
		return nil, fmt.Errorf("invalid operation: %s", op)
	}
	if success && kind != FailureNone {
		return nil, fmt.Errorf("successful mutation cannot carry failure kind %s", kind)
	}
	if !success && kind == FailureNone {
		kind = FailureUnknown
	}

	return &Entry{
		SessionID:   sessionID,
		Screen:      screen,
		Op:          op,
		ResourceID:  resourceID,
		Success:     success,
		FailureKind: kind,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func isValidOperation(op Operation) bool {
	switch op {
	case OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}
