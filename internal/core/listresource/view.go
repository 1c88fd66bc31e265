package listresource

import (
	"adminconsole/internal/domain/resource"
)

// Row is one visible record with its display ordinal.
type Row struct {
	Serial int               `json:"serial"`
	Item   resource.Resource `json:"item"`
}

// View is a consistent snapshot of everything a screen renders.
type View struct {
	Screen       string              `json:"screen"`
	Items        []Row               `json:"items"`
	Loading      bool                `json:"loading"`
	Meta         resource.PageMeta   `json:"meta"`
	Filters      map[string]any      `json:"filters"`
	Sort         string              `json:"sort,omitempty"`
	APIErrors    map[string][]string `json:"apiErrors"`
	Modals       map[string]bool     `json:"modals"`
	ActiveModal  string              `json:"activeModal,omitempty"`
	SelectedItem *resource.Resource  `json:"selectedItem,omitempty"`
}

// View returns a snapshot of the controller state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.query.Clone()
	v := View{
		Screen:       c.opts.Screen,
		Items:        []Row{},
		Loading:      c.loading,
		Filters:      q.Filters,
		Sort:         q.Sort,
		APIErrors:    map[string][]string(c.apiErrors.clone()),
		Modals:       c.modals.States(),
		ActiveModal:  string(c.modals.Active()),
		SelectedItem: c.modals.Subject(),
	}
	if c.page == nil {
		v.Meta = resource.PageMeta{Page: q.Page, Limit: q.Limit}.Normalize()
		return v
	}
	v.Meta = c.page.Meta
	for i, it := range c.page.Items {
		v.Items = append(v.Items, Row{
			Serial: resource.Ordinal(i, c.page.Meta.Page, c.page.Meta.Limit),
			Item:   it,
		})
	}
	return v
}

// GetSerialNumber returns the display ordinal for a zero-based row on the
// visible page.
func (c *Controller) GetSerialNumber(rowIndex int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	page, limit := c.query.Page, c.query.Limit
	if c.page != nil {
		page, limit = c.page.Meta.Page, c.page.Meta.Limit
	}
	return resource.Ordinal(rowIndex, page, limit)
}

// Query returns a copy of the current query state.
func (c *Controller) Query() resource.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// Loading reports whether the latest list fetch is still outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// APIErrors returns a copy of the current field errors.
func (c *Controller) APIErrors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiErrors.clone()
}

// SelectedItem returns the subject of the open modal, if any.
func (c *Controller) SelectedItem() *resource.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modals.Subject()
}

// Modals returns the open flag for every declared slot.
func (c *Controller) Modals() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modals.States()
}
