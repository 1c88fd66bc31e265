package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adminconsole/internal/core/listresource"
	"adminconsole/internal/domain/audit"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) EnsureSchema(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *MockAuditRepository) Save(ctx context.Context, e *audit.Entry) error {
	return m.Called(e).Error(0)
}

func (m *MockAuditRepository) FindRecent(ctx context.Context, limit, offset int) ([]*audit.Entry, error) {
	args := m.Called(limit, offset)
	entries, _ := args.Get(0).([]*audit.Entry)
	return entries, args.Error(1)
}

func (m *MockAuditRepository) FindByScreen(ctx context.Context, screen string, limit, offset int) ([]*audit.Entry, error) {
	args := m.Called(screen, limit, offset)
	entries, _ := args.Get(0).([]*audit.Entry)
	return entries, args.Error(1)
}

func (m *MockAuditRepository) Count(ctx context.Context) (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockAuditRepository) CountByScreen(ctx context.Context, screen string) (int, error) {
	args := m.Called(screen)
	return args.Int(0), args.Error(1)
}

func TestListRequest_Validate(t *testing.T) {
	req := ListRequest{Limit: 0, Offset: -3}
	req.Validate()
	assert.Equal(t, 50, req.Limit)
	assert.Equal(t, 0, req.Offset)

	req = ListRequest{Limit: 1000}
	req.Validate()
	assert.Equal(t, 200, req.Limit)
}

func TestService_List(t *testing.T) {
	repo := &MockAuditRepository{}
	entries := []*audit.Entry{{ID: 2, Screen: "users"}}
	repo.On("FindRecent", 50, 0).Return(entries, nil)
	repo.On("FindByScreen", "users", 10, 20).Return(entries, nil)
	repo.On("Count").Return(7, nil)
	repo.On("CountByScreen", "users").Return(3, nil)

	svc := NewService(repo)

	resp, err := svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, entries, resp.Entries)
	assert.Equal(t, 7, resp.Total)
	assert.Equal(t, 50, resp.Limit)

	resp, err = svc.List(context.Background(), ListRequest{Screen: "users", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Offset)
	assert.Equal(t, 3, resp.Total, "a screen filter counts only that screen")
	repo.AssertNumberOfCalls(t, "Count", 1)
	repo.AssertExpectations(t)
}

func TestService_ListWrapsRepositoryErrors(t *testing.T) {
	repo := &MockAuditRepository{}
	boom := errors.New("db down")
	repo.On("FindRecent", 50, 0).Return(nil, boom)

	_, err := NewService(repo).List(context.Background(), ListRequest{})

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "list_entries", svcErr.Op)
	assert.ErrorIs(t, err, boom)
}

func TestRecorder_SavesReport(t *testing.T) {
	repo := &MockAuditRepository{}
	repo.On("Save", mock.MatchedBy(func(e *audit.Entry) bool {
		return e.SessionID == "sid-9" &&
			e.Screen == "roles" &&
			e.Op == audit.OpUpdate &&
			e.ResourceID == "3" &&
			!e.Success &&
			e.FailureKind == audit.FailureMessage
	})).Return(nil).Once()

	rec := NewService(repo).Recorder("sid-9")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.MutationFinished(ctx, listresource.MutationReport{
		Screen:      "roles",
		Op:          audit.OpUpdate,
		ResourceID:  "3",
		FailureKind: audit.FailureMessage,
	})

	repo.AssertExpectations(t)
}

func TestRecorder_InvalidReportIsDropped(t *testing.T) {
	repo := &MockAuditRepository{}
	NewService(repo).Recorder("sid").MutationFinished(context.Background(), listresource.MutationReport{Op: audit.OpCreate, Success: true})
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestRecorder_SaveErrorIsSwallowed(t *testing.T) {
	repo := &MockAuditRepository{}
	repo.On("Save", mock.Anything).Return(errors.New("timeout"))
	assert.NotPanics(t, func() {
		NewService(repo).Recorder("sid").MutationFinished(context.Background(), listresource.MutationReport{
			Screen: "faqs", Op: audit.OpDelete, ResourceID: "1", Success: true,
		})
	})
}
