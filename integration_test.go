package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminconsole/internal/backend"
	"adminconsole/internal/core/listresource"
	"adminconsole/internal/services/screen"
)

// TestConsoleIntegration mounts a YAML-defined screen against a real HTTP backend
// that answers page requests out of order.
func TestConsoleIntegration(t *testing.T) {
	var (
		mu    sync.Mutex
		gates = map[int]chan struct{}{}
		seen  = make(chan int, 8)
	)
	gate := func(page int) chan struct{} {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := gates[page]; !ok {
			gates[page] = make(chan struct{})
		}
		return gates[page]
	}
	close(gate(1))

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		seen <- page
		<-gate(page)

		docs := []map[string]any{}
		for i := 0; i < limit; i++ {
			docs = append(docs, map[string]any{"_id": fmt.Sprintf("c%d", page*100+i)})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"docs": docs, "page": page, "limit": limit, "totalDocs": 45, "totalPages": 5,
		})
	}))
	defer upstream.Close()

	catalog := screen.NewCatalog()
	_, err := catalog.Load([]byte(`
screens:
  - name: coupons
    title: Coupons
    path: /coupons
    itemsKey: docs
    idField: _id
    limit: 10
`))
	require.NoError(t, err)

	client := backend.NewClient(backend.Config{BaseURL: upstream.URL, TimeoutSec: 5})
	store := screen.NewStore(screen.Deps{
		Catalog: catalog,
		Endpoints: func(def screen.Definition) listresource.Endpoints {
			return backend.NewResource(client, def.Path).Endpoints()
		},
	})

	ctx := context.Background()
	sess, err := store.Mount(ctx, "coupons", 0)
	require.NoError(t, err)
	<-seen
	ctrl := sess.Controller
	require.Len(t, ctrl.View().Items, 10)

	// Page 2 is requested first but answers last.
	done2 := make(chan struct{})
	go func() { ctrl.ChangePage(ctx, 2); close(done2) }()
	require.Equal(t, 2, waitPage(t, seen))

	done3 := make(chan struct{})
	go func() { ctrl.ChangePage(ctx, 3); close(done3) }()
	require.Equal(t, 3, waitPage(t, seen))

	close(gate(3))
	<-done3
	close(gate(2))
	<-done2

	view := ctrl.View()
	assert.Equal(t, 3, view.Meta.Page)
	assert.Equal(t, "c300", view.Items[0].Item.ID)
	assert.Equal(t, 21, view.Items[0].Serial)
	assert.False(t, view.Loading)
	assert.Empty(t, sess.Inbox.Drain())
}

func waitPage(t *testing.T, seen <-chan int) int {
	t.Helper()
	select {
	case p := <-seen:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("backend request never arrived")
		return 0
	}
}
