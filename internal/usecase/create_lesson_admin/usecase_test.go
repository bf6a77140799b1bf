package create_lesson_admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	lessonRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/lesson"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	"github.com/m04kA/SMC-LessonsService/internal/service/pricing"
	"github.com/m04kA/SMC-LessonsService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

type MockLessonRepo struct{ mock.Mock }

func (m *MockLessonRepo) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	args := m.Called(ctx, lesson)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

type MockStudentRepo struct{ mock.Mock }

func (m *MockStudentRepo) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

type MockIndex struct{ mock.Mock }

func (m *MockIndex) CollidingLesson(ctx context.Context, date time.Time, t types.TimeString) (*types.TimeString, error) {
	args := m.Called(ctx, date, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TimeString), args.Error(1)
}

func (m *MockIndex) IsBlocked(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	args := m.Called(ctx, date, t)
	return args.Bool(0), args.Error(1)
}

var (
	testNow  = time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func testConstraints() domain.CalendarConstraints {
	return domain.CalendarConstraints{
		BusinessStart:        "08:00",
		BusinessEnd:          "23:00",
		MorningMarkupEnd:     "10:00",
		EveningMarkupStart:   "21:00",
		MinPrice:             700,
		HighPrice:            1000,
		MaxPrice:             6999,
		LeadTime:             6 * time.Hour,
		BookingHorizon:       10 * 24 * time.Hour,
		DailyLessonThreshold: 8,
	}
}

type testEnv struct {
	uc       *UseCase
	lessons  *MockLessonRepo
	students *MockStudentRepo
	index    *MockIndex
}

func newTestEnv() *testEnv {
	return newTestEnvWith(testConstraints())
}

func newTestEnvWith(constraints domain.CalendarConstraints) *testEnv {
	lessons := new(MockLessonRepo)
	students := new(MockStudentRepo)
	index := new(MockIndex)

	uc := NewUseCase(
		lessons,
		students,
		index,
		pricing.NewEngine(constraints),
		constraints,
		usecasetest.StubTxManager{},
		usecasetest.NopLogger{},
	)
	uc.timeProvider = usecasetest.FixedTime{Time: testNow}

	return &testEnv{uc: uc, lessons: lessons, students: students, index: index}
}

func validRequest() *Request {
	return &Request{
		StudentID: 7,
		Date:      testDate,
		StartTime: "08:00",
		Price:     500,
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7}, nil)
	env.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, nil)
	env.index.On("IsBlocked", mock.Anything, testDate, mock.Anything).Return(false, nil)
	env.lessons.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Lesson) bool {
		// Админ задаёт цену ниже публичного минимума утреннего окна
		return l.Price == 500 && l.StudentID == 7
	})).Return(&domain.Lesson{ID: 42, StudentID: 7, Date: testDate, StartTime: "08:00", Price: 500}, nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 500, resp.Price)
	env.lessons.AssertExpectations(t)
}

func TestExecute_StudentNotSelected(t *testing.T) {
	env := newTestEnv()
	req := validRequest()
	req.StudentID = 0

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStudentNotSelected)
	env.students.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestExecute_StudentNotFound(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(nil, studentRepo.ErrStudentNotFound)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestExecute_TemporalChecksStillApply(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		start   types.TimeString
		wantErr error
	}{
		{"moment already passed", testNow.AddDate(0, 0, -1), "14:00", ErrDatePassed},
		{"beyond horizon", time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), "14:00", ErrTooFarAhead},
		{"insufficient lead time", time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), "14:00", ErrInsufficientLeadTime},
		{"before business hours", testDate, "07:00", ErrTimeTooEarly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest()
			req.Date = tt.date
			req.StartTime = tt.start

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_AfterBusinessHours(t *testing.T) {
	// День укорочен: на полной сетке часового времени позже 23:00 не бывает
	constraints := testConstraints()
	constraints.EveningMarkupStart = "19:00"
	constraints.BusinessEnd = "20:00"
	env := newTestEnvWith(constraints)

	req := validRequest()
	req.StartTime = "21:00"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeTooLate)
	env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_OffGridStartRejected(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.StartTime = "08:30"

	// Часовая сетка обязательна и для административной записи
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	env.students.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_PriceCapStillApplies(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7}, nil)

	req := validRequest()
	req.Price = 7000

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPriceImplausible)
	env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_SlotCollision(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7}, nil)
	conflicting := types.TimeString("07:30")
	env.index.On("CollidingLesson", mock.Anything, testDate, types.TimeString("08:00")).Return(&conflicting, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("07:30"), conflict.ConflictingStart)
}

func TestExecute_TimeBlocked(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7}, nil)
	env.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, nil)
	env.index.On("IsBlocked", mock.Anything, testDate, mock.Anything).Return(true, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeBlocked)
}

func TestExecute_UniqueViolationAtCommit(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7}, nil)
	env.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, nil)
	env.index.On("IsBlocked", mock.Anything, testDate, mock.Anything).Return(false, nil)
	env.lessons.On("Create", mock.Anything, mock.Anything).Return(nil, lessonRepo.ErrSlotTaken)

	_, err := env.uc.Execute(context.Background(), validRequest())

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("08:00"), conflict.ConflictingStart)
}
