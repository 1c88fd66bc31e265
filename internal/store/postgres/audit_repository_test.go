package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminconsole/internal/domain/audit"
)

// Needs a disposable database: TEST_DB_DSN=postgres://... go test ./internal/store/postgres
func TestAuditRepository_RoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()

	pool, err := Open(ctx, dsn, 5*time.Second)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewAuditRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation is idempotent")
	_, err = pool.Exec(ctx, `TRUNCATE console_mutations`)
	require.NoError(t, err)

	ok, err := audit.NewEntry("sid-1", "banners", audit.OpDelete, "201", true, audit.FailureNone)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ok))
	assert.NotZero(t, ok.ID)

	failed, err := audit.NewEntry("sid-1", "users", audit.OpCreate, "", false, audit.FailureFields)
	require.NoError(t, err)
	failed.CreatedAt = ok.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Save(ctx, failed))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountByScreen(ctx, "banners")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recent, err := repo.FindRecent(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "users", recent[0].Screen)
	assert.Equal(t, audit.FailureFields, recent[0].FailureKind)
	assert.Equal(t, "", recent[0].ResourceID)
	assert.Equal(t, "201", recent[1].ResourceID)

	banners, err := repo.FindByScreen(ctx, "banners", 10, 0)
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, audit.OpDelete, banners[0].Op)
	assert.Equal(t, audit.FailureNone, banners[0].FailureKind)
}

func TestOpen_GivesUpOnBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "postgres://nobody@127.0.0.1:1/none?connect_timeout=1", 300*time.Millisecond)
	assert.Error(t, err)
}
