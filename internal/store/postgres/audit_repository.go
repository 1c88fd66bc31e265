package postgres

import (
	"context"
	"database/sql"

	"adminconsole/internal/domain/audit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS console_mutations (
	id           BIGSERIAL PRIMARY KEY,
	session_id   TEXT        NOT NULL DEFAULT '',
	screen       TEXT        NOT NULL,
	op           TEXT        NOT NULL,
	resource_id  TEXT,
	success      BOOLEAN     NOT NULL,
	failure_kind TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS console_mutations_screen_created_idx
	ON console_mutations (screen, created_at DESC);`

const auditColumns = `id, session_id, screen, op, resource_id, success, failure_kind, created_at`

// auditRepository implements AuditRepository with pure data access
type auditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *pgxpool.Pool) *auditRepository {
	return &auditRepository{db: db}
}

// EnsureSchema creates the table and index if missing
func (r *auditRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, auditSchema)
	return err
}

// Save inserts an entry and fills its ID
func (r *auditRepository) Save(ctx context.Context, e *audit.Entry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO console_mutations (session_id, screen, op, resource_id, success, failure_kind, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7)
		RETURNING id`,
		e.SessionID, e.Screen, string(e.Op), e.ResourceID, e.Success, string(e.FailureKind), e.CreatedAt).Scan(&e.ID)
}

// FindRecent lists entries newest first
func (r *auditRepository) FindRecent(ctx context.Context, limit, offset int) ([]*audit.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+auditColumns+`
		FROM console_mutations
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// FindByScreen lists entries for one screen, newest first
func (r *auditRepository) FindByScreen(ctx context.Context, screen string, limit, offset int) ([]*audit.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+auditColumns+`
		FROM console_mutations
		WHERE screen = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, screen, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// Count returns the total number of entries
func (r *auditRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM console_mutations`).Scan(&n)
	return n, err
}

// CountByScreen returns the number of entries for one screen
func (r *auditRepository) CountByScreen(ctx context.Context, screen string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM console_mutations WHERE screen = $1`, screen).Scan(&n)
	return n, err
}

func (r *auditRepository) scanEntries(rows pgx.Rows) ([]*audit.Entry, error) {
	entries := []*audit.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// scanEntry works for both pgx.Row and pgx.Rows
func scanEntry(row pgx.Row) (*audit.Entry, error) {
	var e audit.Entry
	var resourceID, failureKind sql.NullString

	err := row.Scan(&e.ID, &e.SessionID, &e.Screen, &e.Op, &resourceID, &e.Success, &failureKind, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	if resourceID.Valid {
		e.ResourceID = resourceID.String
	}
	if failureKind.Valid {
		e.FailureKind = audit.FailureKind(failureKind.String)
	}

	return &e, nil
}
