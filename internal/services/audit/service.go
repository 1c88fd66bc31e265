package audit

import (
	"context"
	"time"

	"adminconsole/internal/core/listresource"
	"adminconsole/internal/domain/audit"
	"adminconsole/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

const defaultWriteTimeout = 3 * time.Second

// Service records controller mutations and lists them back.
type Service struct {
	repo         repositories.AuditRepository
	writeTimeout time.Duration
}

// NewService creates a new audit service
func NewService(repo repositories.AuditRepository) *Service {
	return &Service{repo: repo, writeTimeout: defaultWriteTimeout}
}

// List retrieves recent entries, optionally for a single screen
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	req.Validate()

	var (
		entries []*audit.Entry
		total   int
		err     error
	)
	if req.Screen != "" {
		entries, err = s.repo.FindByScreen(ctx, req.Screen, req.Limit, req.Offset)
	} else {
		entries, err = s.repo.FindRecent(ctx, req.Limit, req.Offset)
	}
	if err != nil {
		return nil, &ServiceError{Op: "list_entries", Err: err}
	}

	if req.Screen != "" {
		total, err = s.repo.CountByScreen(ctx, req.Screen)
	} else {
		total, err = s.repo.Count(ctx)
	}
	if err != nil {
		return nil, &ServiceError{Op: "count_entries", Err: err}
	}

	return &ListResponse{
		Entries: entries,
		Limit:   req.Limit,
		Offset:  req.Offset,
		Total:   total,
	}, nil
}

// Recorder returns the mutation observer for one mounted session.
func (s *Service) Recorder(sessionID string) listresource.MutationObserver {
	return &recorder{svc: s, sessionID: sessionID}
}

type recorder struct {
	svc       *Service
	sessionID string
}

// MutationFinished persists the report. Write failures are only logged.
func (r *recorder) MutationFinished(ctx context.Context, rep listresource.MutationReport) {
	logger := log.With().
		Str("session", r.sessionID).
		Str("screen", rep.Screen).
		Str("op", string(rep.Op)).
		Logger()

	entry, err := audit.NewEntry(r.sessionID, rep.Screen, rep.Op, rep.ResourceID, rep.Success, rep.FailureKind)
	if err != nil {
		logger.Error().Err(err).Msg("invalid audit entry")
		return
	}

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.svc.writeTimeout)
	defer cancel()
	if err := r.svc.repo.Save(wctx, entry); err != nil {
		logger.Error().Err(err).Msg("failed to record mutation")
		return
	}
	logger.Debug().Int64("audit_id", entry.ID).Msg("mutation recorded")
}
