package audit

import (
	"adminconsole/internal/domain/audit"
)

// ListRequest represents a paginated list request
type ListRequest struct {
	Screen string `json:"screen,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Validate validates and normalizes list request parameters
func (req *ListRequest) Validate() {
	// Set defaults
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	// Apply limits
	if req.Limit > 200 {
		req.Limit = 200
	}
}

// ListResponse represents a page of audit entries
type ListResponse struct {
	Entries []*audit.Entry `json:"entries"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Total   int            `json:"total"`
}

// ServiceError represents an audit service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "audit service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
