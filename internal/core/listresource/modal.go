package listresource

import (
	"errors"
	"fmt"

	"adminconsole/internal/domain/resource"
)

// Slot names one mutually exclusive modal.
type Slot string

const (
	SlotNone   Slot = ""
	SlotCreate Slot = "create"
	SlotEdit   Slot = "edit"
	SlotDelete Slot = "delete"
)

var (
	ErrUnknownSlot     = errors.New("unknown modal slot")
	ErrSubjectRequired = errors.New("modal slot requires a selected item")
	ErrReservedSlot    = errors.New("custom modal uses a reserved name")
)

type slotSpec struct {
	requiresSubject bool
	takesSubject    bool
}

// ModalOrchestrator tracks the single active modal slot and its subject.
// It is not safe for concurrent use; the controller serializes access.
type ModalOrchestrator struct {
	specs   map[Slot]slotSpec
	order   []Slot
	active  Slot
	subject *resource.Resource
	gen     uint64
}

// NewModalOrchestrator declares create/edit/delete plus the custom slots.
func NewModalOrchestrator(custom []CustomModal) (*ModalOrchestrator, error) {
	m := &ModalOrchestrator{
		specs: map[Slot]slotSpec{
			SlotCreate: {},
			SlotEdit:   {requiresSubject: true, takesSubject: true},
			SlotDelete: {requiresSubject: true, takesSubject: true},
		},
		order: []Slot{SlotCreate, SlotEdit, SlotDelete},
	}
	for _, c := range custom {
		slot := Slot(c.Name)
		if slot == SlotNone {
			return nil, fmt.Errorf("%w: empty name", ErrUnknownSlot)
		}
		if _, exists := m.specs[slot]; exists {
			return nil, fmt.Errorf("%w: %s", ErrReservedSlot, c.Name)
		}
		m.specs[slot] = slotSpec{requiresSubject: c.RequiresSubject, takesSubject: true}
		m.order = append(m.order, slot)
	}
	return m, nil
}

// Open makes slot the active modal. Any other open slot is closed implicitly.
// It returns the generation of the new state.
func (m *ModalOrchestrator) Open(slot Slot, subject *resource.Resource) (uint64, error) {
	spec, ok := m.specs[slot]
	if !ok {
		return m.gen, fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	if spec.requiresSubject && subject == nil {
		return m.gen, fmt.Errorf("%w: %s", ErrSubjectRequired, slot)
	}
	m.gen++
	m.active = slot
	m.subject = nil
	if spec.takesSubject && subject != nil {
		s := *subject
		m.subject = &s
	}
	return m.gen, nil
}

// Close returns to no modal and clears the subject.
func (m *ModalOrchestrator) Close() uint64 {
	m.gen++
	m.active = SlotNone
	m.subject = nil
	return m.gen
}

// CloseSlot closes only when slot is the active one.
func (m *ModalOrchestrator) CloseSlot(slot Slot) bool {
	if m.active == SlotNone || m.active != slot {
		return false
	}
	m.Close()
	return true
}

// ReplaceSubject swaps the subject if nothing has changed since generation gen.
func (m *ModalOrchestrator) ReplaceSubject(gen uint64, subject resource.Resource) bool {
	if gen != m.gen || m.active == SlotNone {
		return false
	}
	m.subject = &subject
	return true
}

func (m *ModalOrchestrator) Active() Slot { return m.active }

func (m *ModalOrchestrator) Generation() uint64 { return m.gen }

// Subject returns a copy of the selected item, or nil.
func (m *ModalOrchestrator) Subject() *resource.Resource {
	if m.subject == nil {
		return nil
	}
	s := *m.subject
	return &s
}

// IsOpen reports whether slot is the active modal.
func (m *ModalOrchestrator) IsOpen(slot Slot) bool {
	return slot != SlotNone && m.active == slot
}

// States returns every declared slot with its open flag. At most one is true.
func (m *ModalOrchestrator) States() map[string]bool {
	out := make(map[string]bool, len(m.order))
	for _, s := range m.order {
		out[string(s)] = s == m.active
	}
	return out
}

// Declared reports whether slot is known.
func (m *ModalOrchestrator) Declared(slot Slot) bool {
	_, ok := m.specs[slot]
	return ok
}
