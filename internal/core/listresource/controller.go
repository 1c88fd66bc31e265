package listresource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"adminconsole/internal/domain/resource"
)

const (
	msgLoadFailed   = "Failed to load data. Please try again."
	msgDetailFailed = "Failed to load details."
)

// Controller drives one admin screen. State changes happen under a mutex and
// are atomic with respect to the call that made them; network I/O happens
// outside the lock. Only the response of the most recently started list fetch
// is ever applied.
type Controller struct {
	opts      Options
	endpoints Endpoints
	notifier  Notifier

	mu        sync.Mutex
	query     resource.Query
	page      *resource.PageResult // nil until the first fetch settles
	metaKnown bool                 // the applied page carried backend totals
	latest    uint64               // most recently minted request token
	loading   bool
	modals    *ModalOrchestrator
	apiErrors FieldErrors
}

// New builds a controller. Nothing is fetched until Mount.
func New(endpoints Endpoints, notifier Notifier, opts Options) (*Controller, error) {
	if endpoints.List == nil {
		return nil, errors.New("list endpoint is required")
	}
	if endpoints.Mutator == nil {
		return nil, errors.New("mutation endpoints are required")
	}
	if opts.FetchDetailBeforeEdit && endpoints.Detail == nil {
		return nil, errors.New("detail endpoint is required when fetching detail before edit")
	}
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}

	modals, err := NewModalOrchestrator(opts.CustomModals)
	if err != nil {
		return nil, fmt.Errorf("declare modals: %w", err)
	}

	opts.Messages = opts.Messages.withDefaults()
	return &Controller{
		opts:      opts,
		endpoints: endpoints,
		notifier:  notifier,
		query:     resource.NewQuery(opts.Limit),
		modals:    modals,
	}, nil
}

// Screen returns the screen name the controller was built for.
func (c *Controller) Screen() string { return c.opts.Screen }

// Mount performs the first load.
func (c *Controller) Mount(ctx context.Context) {
	c.Refresh(ctx)
}

// Refresh re-fetches the current page without touching the query.
func (c *Controller) Refresh(ctx context.Context) {
	c.schedule(ctx, func(q resource.Query) resource.Query { return q })
}

// ChangePage moves to page n, clamped to [1, totalPages] once totalPages is known.
func (c *Controller) ChangePage(ctx context.Context, n int) {
	c.schedule(ctx, func(q resource.Query) resource.Query {
		total := 0
		if c.metaKnown {
			total = c.page.Meta.TotalPages
		}
		return q.WithPage(n, total)
	})
}

// SetLimit changes the page size and returns to page 1.
func (c *Controller) SetLimit(ctx context.Context, n int) {
	c.schedule(ctx, func(q resource.Query) resource.Query { return q.WithLimit(n) })
}

// UpdateFilters merges partial into the filters and returns to page 1.
func (c *Controller) UpdateFilters(ctx context.Context, partial map[string]any) {
	c.schedule(ctx, func(q resource.Query) resource.Query { return q.WithFilters(partial) })
}

// ResetFilters drops every filter and returns to page 1.
func (c *Controller) ResetFilters(ctx context.Context) {
	c.schedule(ctx, func(q resource.Query) resource.Query { return q.WithoutFilters() })
}

// SetSort changes the sort key and returns to page 1.
func (c *Controller) SetSort(ctx context.Context, key string) {
	c.schedule(ctx, func(q resource.Query) resource.Query { return q.WithSort(key) })
}

// schedule applies a query transform and starts exactly one fetch for the
// result. The token is minted in the same critical section as the transform.
func (c *Controller) schedule(ctx context.Context, transform func(resource.Query) resource.Query) {
	c.mu.Lock()
	c.query = transform(c.query)
	token, q := c.beginFetchLocked()
	c.mu.Unlock()

	c.runFetch(ctx, token, q, true)
}

func (c *Controller) beginFetchLocked() (uint64, resource.Query) {
	c.latest++
	c.loading = true
	return c.latest, c.query.Clone()
}

// runFetch loads q and applies the result only if token is still the latest.
// clampTrailing allows one follow-up fetch when the page ran past the end.
func (c *Controller) runFetch(ctx context.Context, token uint64, q resource.Query, clampTrailing bool) {
	logger := c.logger().With().Uint64("token", token).Int("page", q.Page).Logger()

	result, err := c.load(ctx, q)

	c.mu.Lock()
	if token != c.latest {
		latest := c.latest
		c.mu.Unlock()
		logger.Debug().Uint64("latest", latest).Msg("discarding superseded list response")
		return
	}
	c.loading = false

	if err != nil {
		first := c.page == nil
		if first {
			c.page = &resource.PageResult{
				Items: []resource.Resource{},
				Meta:  resource.PageMeta{Page: q.Page, Limit: q.Limit}.Normalize(),
			}
		}
		c.mu.Unlock()

		if errors.Is(err, context.Canceled) {
			logger.Debug().Err(err).Msg("list fetch cancelled by caller")
			return
		}
		logger.Error().Err(err).Bool("first_load", first).Msg("list fetch failed")
		c.notifier.ShowError(msgLoadFailed)
		return
	}

	c.page = &result
	c.metaKnown = result.TotalsKnown
	meta := result.Meta
	if clampTrailing && len(result.Items) == 0 && meta.TotalItems > 0 && c.query.Page > meta.TotalPages {
		c.query = c.query.WithPage(meta.TotalPages, meta.TotalPages)
		next, nq := c.beginFetchLocked()
		c.mu.Unlock()

		logger.Debug().Int("clamped_to", nq.Page).Msg("page ran past the end, stepping back")
		c.runFetch(ctx, next, nq, false)
		return
	}
	c.mu.Unlock()

	logger.Debug().
		Int("items", len(result.Items)).
		Int("total_items", meta.TotalItems).
		Msg("list page applied")
}

func (c *Controller) load(ctx context.Context, q resource.Query) (resource.PageResult, error) {
	params, err := q.Params()
	if err != nil {
		return resource.PageResult{}, fmt.Errorf("serialize query: %w", err)
	}
	reply, err := c.endpoints.List.List(ctx, params)
	if err != nil {
		return resource.PageResult{}, fmt.Errorf("list request: %w", err)
	}
	if !reply.OK() {
		return resource.PageResult{}, fmt.Errorf("list request: unexpected status %d", reply.StatusCode)
	}
	return NormalizePage(reply, q, c.opts.Shape)
}

// OpenCreateModal opens the create slot.
func (c *Controller) OpenCreateModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.modals.Open(SlotCreate, nil)
	c.apiErrors = nil
}

// CloseCreateModal closes the create slot if it is open.
func (c *Controller) CloseCreateModal() { c.CloseModal(string(SlotCreate)) }

// OpenEditModal opens the edit slot for item. With detail-before-edit enabled
// it blocks on the detail fetch; the result is merged into the selected item
// only if the modal has not changed in the meantime.
func (c *Controller) OpenEditModal(ctx context.Context, item resource.Resource) {
	c.mu.Lock()
	gen, _ := c.modals.Open(SlotEdit, &item)
	c.apiErrors = nil
	c.mu.Unlock()

	if !c.opts.FetchDetailBeforeEdit {
		return
	}

	logger := c.logger().With().Str("resource_id", item.ID).Logger()
	detail, err := c.loadDetail(ctx, item.ID)

	c.mu.Lock()
	if err != nil {
		current := c.modals.Generation() == gen
		c.mu.Unlock()
		logger.Warn().Err(err).Bool("modal_current", current).Msg("detail fetch failed")
		if current && !errors.Is(err, context.Canceled) {
			c.notifier.ShowError(msgDetailFailed)
		}
		return
	}
	applied := c.modals.ReplaceSubject(gen, item.Merge(detail))
	c.mu.Unlock()

	if !applied {
		logger.Debug().Msg("dropping detail for a modal that has since changed")
	}
}

func (c *Controller) loadDetail(ctx context.Context, id string) (resource.Resource, error) {
	reply, err := c.endpoints.Detail.Show(ctx, id)
	if err != nil {
		return resource.Resource{}, fmt.Errorf("detail request: %w", err)
	}
	if !reply.OK() {
		return resource.Resource{}, fmt.Errorf("detail request: unexpected status %d", reply.StatusCode)
	}
	return ExtractRecord(reply, c.opts.Shape)
}

// CloseEditModal closes the edit slot if it is open.
func (c *Controller) CloseEditModal() { c.CloseModal(string(SlotEdit)) }

// OpenDeleteModal opens the delete confirmation for item.
func (c *Controller) OpenDeleteModal(item resource.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.modals.Open(SlotDelete, &item)
	c.apiErrors = nil
}

// CloseDeleteModal closes the delete slot if it is open.
func (c *Controller) CloseDeleteModal() { c.CloseModal(string(SlotDelete)) }

// OpenModal opens any declared slot by name. Slots declared as requiring a
// subject reject a nil item and leave the state unchanged.
func (c *Controller) OpenModal(name string, item *resource.Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.modals.Open(Slot(name), item); err != nil {
		return err
	}
	c.apiErrors = nil
	return nil
}

// CloseModal closes the named slot if it is the open one.
func (c *Controller) CloseModal(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modals.CloseSlot(Slot(name)) {
		c.apiErrors = nil
	}
}

// CloseAny closes whichever slot is open.
func (c *Controller) CloseAny() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modals.Close()
	c.apiErrors = nil
}

// ClearError removes the messages for one form field.
func (c *Controller) ClearError(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.apiErrors, field)
}

// ItemByID finds a record on the visible page.
func (c *Controller) ItemByID(id string) (resource.Resource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == nil {
		return resource.Resource{}, false
	}
	for _, it := range c.page.Items {
		if it.ID == id {
			return it, true
		}
	}
	return resource.Resource{}, false
}

func (c *Controller) logger() *zerolog.Logger {
	l := log.With().Str("screen", c.opts.Screen).Logger()
	return &l
}
