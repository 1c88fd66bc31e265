package listresource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"adminconsole/internal/domain/resource"
)

// pageReply builds a {success, data: {items, meta}} envelope with ids page*100+i.
func pageReply(t *testing.T, page, limit, total int) *Reply {
	t.Helper()
	items := []map[string]any{}
	start := (page - 1) * limit
	for i := start; i < start+limit && i < total; i++ {
		items = append(items, map[string]any{"id": page*100 + i - start, "name": fmt.Sprintf("row-%d", i)})
	}
	body, err := json.Marshal(map[string]any{
		"success": true,
		"data": map[string]any{
			"items": items,
			"meta": map[string]any{
				"page":       page,
				"limit":      limit,
				"totalItems": total,
				"totalPages": resource.TotalPages(total, limit),
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &Reply{StatusCode: 200, Body: body}
}

func jsonReply(t *testing.T, status int, v any) *Reply {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return &Reply{StatusCode: status, Body: body}
}

// stubList answers list calls through fn and records every call.
type stubList struct {
	mu    sync.Mutex
	calls []resource.ListParams
	fn    func(p resource.ListParams) (*Reply, error)
}

func (s *stubList) List(_ context.Context, p resource.ListParams) (*Reply, error) {
	s.mu.Lock()
	s.calls = append(s.calls, p)
	s.mu.Unlock()
	return s.fn(p)
}

func (s *stubList) Calls() []resource.ListParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]resource.ListParams(nil), s.calls...)
}

// gatedList blocks each call until its key is released, so tests control
// the order in which responses resolve.
type gatedList struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	key     func(p resource.ListParams) string
	reply   func(p resource.ListParams) (*Reply, error)
}

func newGatedList(key func(resource.ListParams) string, reply func(resource.ListParams) (*Reply, error)) *gatedList {
	return &gatedList{
		gates:   map[string]chan struct{}{},
		started: make(chan string, 16),
		key:     key,
		reply:   reply,
	}
}

func (g *gatedList) gate(k string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[k]
	if !ok {
		ch = make(chan struct{})
		g.gates[k] = ch
	}
	return ch
}

func (g *gatedList) release(k string) { close(g.gate(k)) }

func (g *gatedList) List(_ context.Context, p resource.ListParams) (*Reply, error) {
	k := g.key(p)
	gate := g.gate(k)
	g.started <- k
	<-gate
	return g.reply(p)
}

// MockMutator is a testify mock of the write endpoints.
type MockMutator struct {
	mock.Mock
}

func (m *MockMutator) Create(_ context.Context, payload map[string]any) (*Reply, error) {
	args := m.Called(payload)
	r, _ := args.Get(0).(*Reply)
	return r, args.Error(1)
}

func (m *MockMutator) Update(_ context.Context, id string, payload map[string]any) (*Reply, error) {
	args := m.Called(id, payload)
	r, _ := args.Get(0).(*Reply)
	return r, args.Error(1)
}

func (m *MockMutator) Delete(_ context.Context, id string) (*Reply, error) {
	args := m.Called(id)
	r, _ := args.Get(0).(*Reply)
	return r, args.Error(1)
}

// MockNotifier is a testify mock of the notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ShowSuccess(message string) { m.Called(message) }
func (m *MockNotifier) ShowError(message string)   { m.Called(message) }

// recordingNotifier appends to a shared event log.
type recordingNotifier struct {
	log *eventLog
}

func (n recordingNotifier) ShowSuccess(message string) { n.log.add("success:" + message) }
func (n recordingNotifier) ShowError(message string)   { n.log.add("error:" + message) }

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type stubDetail struct {
	gate  chan struct{}
	reply *Reply
	err   error
}

func (s *stubDetail) Show(_ context.Context, _ string) (*Reply, error) {
	if s.gate != nil {
		<-s.gate
	}
	return s.reply, s.err
}

type recordingObserver struct {
	mu      sync.Mutex
	reports []MutationReport
}

func (o *recordingObserver) MutationFinished(_ context.Context, r MutationReport) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reports = append(o.reports, r)
}
