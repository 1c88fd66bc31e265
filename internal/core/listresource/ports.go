// Package listresource implements the generic list-resource controller that
// backs every admin screen: paginated and filtered listing, named modal slots,
// create/update/delete coordination and backend error mapping.
package listresource

import (
	"context"

	"adminconsole/internal/domain/audit"
	"adminconsole/internal/domain/resource"
)

// Reply is a raw backend response as seen by the controller.
type Reply struct {
	StatusCode int
	Body       []byte
	// Meta carries pagination returned outside the body (e.g. response headers).
	Meta *resource.PageMeta
}

// OK reports a 2xx status.
func (r *Reply) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// ListEndpoint fetches one page of records.
type ListEndpoint interface {
	List(ctx context.Context, params resource.ListParams) (*Reply, error)
}

// Mutator performs writes against one resource collection.
type Mutator interface {
	Create(ctx context.Context, payload map[string]any) (*Reply, error)
	Update(ctx context.Context, id string, payload map[string]any) (*Reply, error)
	Delete(ctx context.Context, id string) (*Reply, error)
}

// DetailEndpoint loads a single record. Only used when detail-before-edit is on.
type DetailEndpoint interface {
	Show(ctx context.Context, id string) (*Reply, error)
}

// Endpoints groups the collaborators a controller talks to.
type Endpoints struct {
	List    ListEndpoint
	Mutator Mutator
	Detail  DetailEndpoint
}

// Notifier presents transient messages to the user.
type Notifier interface {
	ShowSuccess(message string)
	ShowError(message string)
}

// MutationReport describes a finished mutation.
type MutationReport struct {
	Screen      string
	Op          audit.Operation
	ResourceID  string
	Success     bool
	FailureKind audit.FailureKind
}

// MutationObserver is told about every finished mutation.
type MutationObserver interface {
	MutationFinished(ctx context.Context, report MutationReport)
}

// Messages are the success texts shown after each mutation.
type Messages struct {
	CreateSuccess string `json:"createSuccess" yaml:"createSuccess"`
	UpdateSuccess string `json:"updateSuccess" yaml:"updateSuccess"`
	DeleteSuccess string `json:"deleteSuccess" yaml:"deleteSuccess"`
}

func (m Messages) withDefaults() Messages {
	if m.CreateSuccess == "" {
		m.CreateSuccess = "Created successfully"
	}
	if m.UpdateSuccess == "" {
		m.UpdateSuccess = "Updated successfully"
	}
	if m.DeleteSuccess == "" {
		m.DeleteSuccess = "Deleted successfully"
	}
	return m
}

// CustomModal declares an extra modal slot beyond create/edit/delete.
type CustomModal struct {
	Name            string `json:"name" yaml:"name"`
	RequiresSubject bool   `json:"requiresSubject" yaml:"requiresSubject"`
}

// Shape carries per-resource hints for reading list and detail envelopes.
type Shape struct {
	ItemsKey string `json:"itemsKey,omitempty" yaml:"itemsKey"`
	MetaKey  string `json:"metaKey,omitempty" yaml:"metaKey"`
	IDField  string `json:"idField,omitempty" yaml:"idField"`
}

// Options configure one controller instance.
type Options struct {
	Screen                string
	Limit                 int
	Messages              Messages
	CustomModals          []CustomModal
	FetchDetailBeforeEdit bool
	Shape                 Shape
	Observer              MutationObserver
}
