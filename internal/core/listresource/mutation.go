package listresource

import (
	"context"

	"adminconsole/internal/domain/audit"
)

// HandleCreate submits a new record. It reports whether the backend accepted it.
func (c *Controller) HandleCreate(ctx context.Context, payload map[string]any) bool {
	return c.mutate(ctx, audit.OpCreate, "", c.opts.Messages.CreateSuccess,
		func(ctx context.Context) (*Reply, error) {
			return c.endpoints.Mutator.Create(ctx, payload)
		})
}

// HandleUpdate submits changes to record id.
func (c *Controller) HandleUpdate(ctx context.Context, id string, payload map[string]any) bool {
	return c.mutate(ctx, audit.OpUpdate, id, c.opts.Messages.UpdateSuccess,
		func(ctx context.Context) (*Reply, error) {
			return c.endpoints.Mutator.Update(ctx, id, payload)
		})
}

// HandleDelete removes record id.
func (c *Controller) HandleDelete(ctx context.Context, id string) bool {
	return c.mutate(ctx, audit.OpDelete, id, c.opts.Messages.DeleteSuccess,
		func(ctx context.Context) (*Reply, error) {
			return c.endpoints.Mutator.Delete(ctx, id)
		})
}

// mutate runs one write. On success: notify, close the modal, then re-fetch
// the current query. On failure the modal stays open and the failure is routed
// to the form or the notifier. Nothing is retried. The modal and its field
// errors are only touched if no other modal transition happened meanwhile.
func (c *Controller) mutate(ctx context.Context, op audit.Operation, id, successMsg string, call func(context.Context) (*Reply, error)) bool {
	c.mu.Lock()
	c.apiErrors = nil
	gen := c.modals.Generation()
	c.mu.Unlock()

	logger := c.logger().With().Str("op", string(op)).Str("resource_id", id).Logger()

	reply, err := call(ctx)
	if failure := ClassifyFailure(reply, err); failure != nil {
		logger.Warn().Str("failure_kind", string(failure.Kind())).Msg("mutation rejected")
		c.applyFailure(gen, failure)
		c.report(ctx, op, id, failure)
		return false
	}

	c.notifier.ShowSuccess(successMsg)

	c.mu.Lock()
	current := c.modals.Generation() == gen
	if current {
		c.modals.Close()
		c.apiErrors = nil
	}
	token, q := c.beginFetchLocked()
	c.mu.Unlock()

	logger.Info().Bool("modal_current", current).Msg("mutation applied")
	c.report(ctx, op, id, nil)
	c.runFetch(ctx, token, q, true)
	return true
}

func (c *Controller) applyFailure(gen uint64, failure Failure) {
	switch f := failure.(type) {
	case FieldErrors:
		c.mu.Lock()
		if c.modals.Generation() == gen {
			c.apiErrors = f.clone()
		}
		c.mu.Unlock()
	case GeneralMessage:
		c.notifier.ShowError(f.Text())
	default:
		c.notifier.ShowError(GenericFailureMessage)
	}
}

func (c *Controller) report(ctx context.Context, op audit.Operation, id string, failure Failure) {
	if c.opts.Observer == nil {
		return
	}
	r := MutationReport{
		Screen:     c.opts.Screen,
		Op:         op,
		ResourceID: id,
		Success:    failure == nil,
	}
	if failure != nil {
		r.FailureKind = failure.Kind()
	}
	c.opts.Observer.MutationFinished(ctx, r)
}
