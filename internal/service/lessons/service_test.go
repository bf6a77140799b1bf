package lessons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	lessonRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/lesson"
	"github.com/m04kA/SMC-LessonsService/internal/service/lessons/models"
)

type MockLessonRepo struct{ mock.Mock }

func (m *MockLessonRepo) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

func (m *MockLessonRepo) ListWithFilter(ctx context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lesson), args.Error(1)
}

func (m *MockLessonRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

func ownedLesson() *domain.Lesson {
	return &domain.Lesson{ID: 10, StudentID: 7, Date: testDate, StartTime: "14:00", Price: 700}
}

func TestGetByID_AccessControl(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		isAdmin bool
		wantErr error
	}{
		{"owner", 7, false, nil},
		{"admin", 99, true, nil},
		{"stranger", 8, false, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLessonRepo)
			repo.On("GetByID", mock.Anything, int64(10)).Return(ownedLesson(), nil)
			svc := NewService(repo, nopLogger{})

			resp, err := svc.GetByID(context.Background(), 10, tt.userID, tt.isAdmin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), resp.ID)
			assert.Equal(t, "15:00", resp.EndTime)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := new(MockLessonRepo)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, lessonRepo.ErrLessonNotFound)
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 7, false)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestGetUserLessons(t *testing.T) {
	repo := new(MockLessonRepo)
	repo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f domain.LessonsFilter) bool {
		return f.StudentID != nil && *f.StudentID == 7 && f.FromDate == nil
	})).Return([]*domain.Lesson{ownedLesson()}, nil)

	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserLessons(context.Background(), &models.GetUserLessonsRequest{StudentID: 7})
	require.NoError(t, err)
	require.Len(t, resp.Lessons, 1)
	assert.Equal(t, int64(10), resp.Lessons[0].ID)
}

func TestGetUserLessons_InvalidStudent(t *testing.T) {
	svc := NewService(new(MockLessonRepo), nopLogger{})

	_, err := svc.GetUserLessons(context.Background(), &models.GetUserLessonsRequest{StudentID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_AccessControl(t *testing.T) {
	repo := new(MockLessonRepo)
	repo.On("GetByID", mock.Anything, int64(10)).Return(ownedLesson(), nil)
	svc := NewService(repo, nopLogger{})

	// Чужой урок отменить нельзя, запрос до удаления не доходит
	err := svc.Delete(context.Background(), 10, 8, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_Owner(t *testing.T) {
	repo := new(MockLessonRepo)
	repo.On("GetByID", mock.Anything, int64(10)).Return(ownedLesson(), nil)
	repo.On("Delete", mock.Anything, int64(10)).Return(nil)
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 10, 7, false))
	repo.AssertExpectations(t)
}

func TestDelete_Admin(t *testing.T) {
	repo := new(MockLessonRepo)
	repo.On("GetByID", mock.Anything, int64(10)).Return(ownedLesson(), nil)
	repo.On("Delete", mock.Anything, int64(10)).Return(nil)
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 10, 99, true))
}
