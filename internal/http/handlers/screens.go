package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"adminconsole/internal/core/listresource"
	"adminconsole/internal/notify"
	"adminconsole/internal/services/screen"
)

// ScreenView is a controller snapshot plus the toasts raised since the last read.
type ScreenView struct {
	Session string `json:"session"`
	listresource.View
	Toasts []notify.Toast `json:"toasts"`
}

// MutationResult wraps the view after a create, update or delete.
type MutationResult struct {
	OK bool `json:"ok"`
	ScreenView
}

func viewOf(sess *screen.Session) ScreenView {
	return ScreenView{
		Session: sess.ID,
		View:    sess.Controller.View(),
		Toasts:  sess.Inbox.Drain(),
	}
}

// Screens exposes every controller entry point of a mounted session over HTTP.
type Screens struct {
	store *screen.Store
}

func NewScreens(store *screen.Store) *Screens {
	return &Screens{store: store}
}

// session resolves {sid} or writes the error response.
func (h *Screens) session(w http.ResponseWriter, r *http.Request) (*screen.Session, bool) {
	sess, err := h.store.Get(chi.URLParam(r, "sid"))
	if err != nil {
		fail(w, err)
		return nil, false
	}
	return sess, true
}

// Mount handles POST /screens
func (h *Screens) Mount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Screen string `json:"screen"`
		Limit  int    `json:"limit,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil || req.Screen == "" {
		http.Error(w, "invalid JSON: screen is required", http.StatusBadRequest)
		return
	}

	sess, err := h.store.Mount(r.Context(), req.Screen, req.Limit)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(sess))
}

// Show handles GET /screens/{sid}
func (h *Screens) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

// Unmount handles DELETE /screens/{sid}
func (h *Screens) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Unmount(chi.URLParam(r, "sid")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Screens) ChangePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	h.withBody(w, r, &req, func(sess *screen.Session) {
		sess.Controller.ChangePage(r.Context(), req.Page)
	})
}

func (h *Screens) SetLimit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limit int `json:"limit"`
	}
	h.withBody(w, r, &req, func(sess *screen.Session) {
		sess.Controller.SetLimit(r.Context(), req.Limit)
	})
}

func (h *Screens) SetSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sort string `json:"sort"`
	}
	h.withBody(w, r, &req, func(sess *screen.Session) {
		sess.Controller.SetSort(r.Context(), req.Sort)
	})
}

// UpdateFilters merges the posted object into the filters.
func (h *Screens) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	partial := map[string]any{}
	h.withBody(w, r, &partial, func(sess *screen.Session) {
		sess.Controller.UpdateFilters(r.Context(), partial)
	})
}

func (h *Screens) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(sess *screen.Session) { sess.Controller.ResetFilters(r.Context()) })
}

func (h *Screens) Refresh(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(sess *screen.Session) { sess.Controller.Refresh(r.Context()) })
}

func (h *Screens) OpenCreate(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(sess *screen.Session) { sess.Controller.OpenCreateModal() })
}

// OpenEdit opens the edit modal for a visible row; body {"id": "..."}.
func (h *Screens) OpenEdit(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, func(sess *screen.Session, id string) error {
		item, err := sess.Item(id)
		if err != nil {
			return err
		}
		sess.Controller.OpenEditModal(r.Context(), item)
		return nil
	})
}

func (h *Screens) OpenDelete(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, func(sess *screen.Session, id string) error {
		item, err := sess.Item(id)
		if err != nil {
			return err
		}
		sess.Controller.OpenDeleteModal(item)
		return nil
	})
}

// OpenNamed opens a custom modal; the id is optional for slots without a subject.
func (h *Screens) OpenNamed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.withItem(w, r, func(sess *screen.Session, id string) error {
		if id == "" {
			return sess.Controller.OpenModal(name, nil)
		}
		item, err := sess.Item(id)
		if err != nil {
			return err
		}
		return sess.Controller.OpenModal(name, &item)
	})
}

func (h *Screens) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(sess *screen.Session) { sess.Controller.CloseAny() })
}

// CreateItem handles POST /screens/{sid}/items
func (h *Screens) CreateItem(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{}
	h.mutate(w, r, &payload, func(sess *screen.Session) bool {
		return sess.Controller.HandleCreate(r.Context(), payload)
	})
}

// UpdateItem handles PUT /screens/{sid}/items/{id}
func (h *Screens) UpdateItem(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{}
	id := chi.URLParam(r, "id")
	h.mutate(w, r, &payload, func(sess *screen.Session) bool {
		return sess.Controller.HandleUpdate(r.Context(), id, payload)
	})
}

// DeleteItem handles DELETE /screens/{sid}/items/{id}
func (h *Screens) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mutate(w, r, nil, func(sess *screen.Session) bool {
		return sess.Controller.HandleDelete(r.Context(), id)
	})
}

func (h *Screens) ClearError(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	h.with(w, r, func(sess *screen.Session) { sess.Controller.ClearError(field) })
}

// Serial handles GET /screens/{sid}/serial/{row}
func (h *Screens) Serial(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil || row < 0 {
		http.Error(w, "row must be a non-negative integer", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"row":    row,
		"serial": sess.Controller.GetSerialNumber(row),
	})
}

func (h *Screens) with(w http.ResponseWriter, r *http.Request, fn func(*screen.Session)) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	fn(sess)
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (h *Screens) withBody(w http.ResponseWriter, r *http.Request, body any, fn func(*screen.Session)) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := decodeBody(r, body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	fn(sess)
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (h *Screens) withItem(w http.ResponseWriter, r *http.Request, fn func(*screen.Session, string) error) {
	var req struct {
		ID string `json:"id"`
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := fn(sess, req.ID); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

// mutate answers 200 when the backend accepted the change and 422 otherwise;
// the view carries the field errors and toasts either way.
func (h *Screens) mutate(w http.ResponseWriter, r *http.Request, body any, fn func(*screen.Session) bool) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if body != nil {
		if err := decodeBody(r, body); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	}
	accepted := fn(sess)
	status := http.StatusOK
	if !accepted {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, MutationResult{OK: accepted, ScreenView: viewOf(sess)})
}
