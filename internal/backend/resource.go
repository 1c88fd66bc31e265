package backend

import (
	"context"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"adminconsole/internal/core/listresource"
	"adminconsole/internal/domain/resource"
)

// Pagination headers some backends send instead of a meta object.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPerPage    = "X-Per-Page"
	HeaderTotalPages = "X-Total-Pages"
)

// Resource is the REST collection at one path. It implements the list,
// detail and mutation ports of a list-resource controller.
type Resource struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/users".
func NewResource(client *Client, path string) *Resource {
	return &Resource{client: client, path: "/" + strings.Trim(path, "/")}
}

// Endpoints returns the controller ports backed by this collection.
func (r *Resource) Endpoints() listresource.Endpoints {
	return listresource.Endpoints{List: r, Mutator: r, Detail: r}
}

// List fetches one page. Filters are sent as plain query parameters.
func (r *Resource) List(ctx context.Context, p resource.ListParams) (*listresource.Reply, error) {
	q := url.Values{}
	q.Set("page", cast.ToString(p.Page))
	q.Set("limit", cast.ToString(p.Limit))
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	for k, v := range p.Filters {
		q.Set(k, v)
	}
	resp, err := r.client.Get(ctx, r.path, q)
	if err != nil {
		return nil, err
	}
	reply := toReply(resp)
	reply.Meta = headerMeta(resp)
	return reply, nil
}

// Show fetches one record.
func (r *Resource) Show(ctx context.Context, id string) (*listresource.Reply, error) {
	resp, err := r.client.Get(ctx, r.itemPath(id), nil)
	if err != nil {
		return nil, err
	}
	return toReply(resp), nil
}

func (r *Resource) Create(ctx context.Context, payload map[string]any) (*listresource.Reply, error) {
	resp, err := r.client.PostJSON(ctx, r.path, payload)
	if err != nil {
		return nil, err
	}
	return toReply(resp), nil
}

func (r *Resource) Update(ctx context.Context, id string, payload map[string]any) (*listresource.Reply, error) {
	resp, err := r.client.PutJSON(ctx, r.itemPath(id), payload)
	if err != nil {
		return nil, err
	}
	return toReply(resp), nil
}

func (r *Resource) Delete(ctx context.Context, id string) (*listresource.Reply, error) {
	resp, err := r.client.Delete(ctx, r.itemPath(id))
	if err != nil {
		return nil, err
	}
	return toReply(resp), nil
}

func (r *Resource) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func toReply(resp *Response) *listresource.Reply {
	return &listresource.Reply{StatusCode: resp.StatusCode, Body: resp.Body}
}

// headerMeta reads pagination headers. It returns nil unless a total is present.
func headerMeta(resp *Response) *resource.PageMeta {
	total, err := cast.ToIntE(resp.Headers.Get(HeaderTotalCount))
	if err != nil || resp.Headers.Get(HeaderTotalCount) == "" {
		return nil
	}
	return &resource.PageMeta{
		Page:       cast.ToInt(resp.Headers.Get(HeaderPage)),
		Limit:      cast.ToInt(resp.Headers.Get(HeaderPerPage)),
		TotalItems: total,
		TotalPages: cast.ToInt(resp.Headers.Get(HeaderTotalPages)),
	}
}
