package notify

import (
	"sync"
	"time"

	"adminconsole/internal/core/listresource"
)

// Kind is the severity of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one user-facing notification.
type Toast struct {
	Kind    Kind      `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// DefaultInboxSize bounds an inbox that is never drained.
const DefaultInboxSize = 50

// Inbox collects toasts for one mounted screen until the next view is read.
type Inbox struct {
	mu     sync.Mutex
	toasts []Toast
	size   int
	now    func() time.Time
}

// NewInbox keeps at most size toasts, dropping the oldest first.
func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{size: size, now: time.Now}
}

func (in *Inbox) ShowSuccess(message string) { in.push(KindSuccess, message) }
func (in *Inbox) ShowError(message string)   { in.push(KindError, message) }

func (in *Inbox) push(kind Kind, message string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.toasts = append(in.toasts, Toast{Kind: kind, Message: message, At: in.now().UTC()})
	if over := len(in.toasts) - in.size; over > 0 {
		in.toasts = append([]Toast(nil), in.toasts[over:]...)
	}
}

// Drain returns the pending toasts in arrival order and empties the inbox.
func (in *Inbox) Drain() []Toast {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.toasts
	in.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

// Pending reports how many toasts are waiting.
func (in *Inbox) Pending() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.toasts)
}

// Fanout forwards every toast to each notifier in order.
type Fanout []listresource.Notifier

func (f Fanout) ShowSuccess(message string) {
	for _, n := range f {
		n.ShowSuccess(message)
	}
}

func (f Fanout) ShowError(message string) {
	for _, n := range f {
		n.ShowError(message)
	}
}
