package create_lesson

import (
	"context"
	"errors"
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

func (m *MockLessonRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lesson), args.Error(1)
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
		StartTime: "14:00",
		Price:     700,
	}
}

func (e *testEnv) expectStudent() {
	e.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7}, nil)
}

func (e *testEnv) expectFreeSlot() {
	e.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, nil)
	e.index.On("IsBlocked", mock.Anything, testDate, mock.Anything).Return(false, nil)
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)
	env.lessons.On("Create", mock.Anything, mock.Anything).Return(&domain.Lesson{
		ID:        42,
		StudentID: 7,
		Date:      testDate,
		StartTime: "14:00",
		Price:     700,
		Topic:     domain.DefaultTopic,
	}, nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, domain.DefaultTopic, resp.Topic)
}

func TestExecute_DefaultsTopic(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)
	env.lessons.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Lesson) bool {
		return l.Topic == domain.DefaultTopic
	})).Return(&domain.Lesson{ID: 1, Topic: domain.DefaultTopic}, nil)

	empty := ""
	req := validRequest()
	req.Topic = &empty

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	env.lessons.AssertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"non-positive student", func(r *Request) { r.StudentID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty time", func(r *Request) { r.StartTime = "" }},
		{"malformed time", func(r *Request) { r.StartTime = "25:99" }},
		{"time off the hour grid", func(r *Request) { r.StartTime = "13:30" }},
		{"non-positive price", func(r *Request) { r.Price = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_TemporalChecks(t *testing.T) {
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
	// На полной сетке 08:00-23:00 часового времени позже конца дня не
	// существует, поэтому день укорочен
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

func TestExecute_LastSlotOfDayAllowed(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)
	env.lessons.On("Create", mock.Anything, mock.Anything).Return(&domain.Lesson{ID: 1, StartTime: "23:00"}, nil)

	req := validRequest()
	req.StartTime = "23:00"

	// 23:00 вне вечернего окна наценки, минимум обычный
	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_StudentNotFound(t *testing.T) {
	env := newTestEnv()
	env.students.On("GetByID", mock.Anything, int64(7)).Return(nil, studentRepo.ErrStudentNotFound)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestExecute_SlotCollision(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	conflicting := types.TimeString("13:30")
	env.index.On("CollidingLesson", mock.Anything, testDate, types.TimeString("14:00")).Return(&conflicting, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("13:30"), conflict.ConflictingStart)

	// Коллизия проверяется раньше блокировок
	env.index.AssertNotCalled(t, "IsBlocked", mock.Anything, mock.Anything, mock.Anything)
	env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_TimeBlocked(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, nil)
	env.index.On("IsBlocked", mock.Anything, testDate, types.TimeString("14:00")).Return(true, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTimeBlocked)
	env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_PriceTooLow(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)

	req := validRequest()
	req.StartTime = "08:00" // утренняя наценка, минимум 1000
	req.Price = 700

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPriceTooLow)

	var priceErr *PriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, 700, priceErr.Proposed)
	assert.Equal(t, 1000, priceErr.Bound)
}

func TestExecute_PriceRisesWithDaySaturation(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()

	// Седьмой существующий урок делает создаваемый пороговым
	existing := make([]*domain.Lesson, 7)
	for i := range existing {
		existing[i] = &domain.Lesson{StartTime: "10:00"}
	}
	env.lessons.On("ListByDate", mock.Anything, testDate).Return(existing, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())

	var priceErr *PriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, 1000, priceErr.Bound)
}

func TestExecute_PriceImplausible(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)

	req := validRequest()
	req.Price = 7000

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPriceImplausible)

	var priceErr *PriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, 6999, priceErr.Bound)
}

func TestExecute_PersonalPricing(t *testing.T) {
	env := newTestEnv()
	personal := 1200
	env.students.On("GetByID", mock.Anything, int64(7)).Return(&domain.Student{ID: 7, UsualPrice: &personal}, nil)
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)

	// Глобального минимума 700 недостаточно при персональной цене 1200
	_, err := env.uc.Execute(context.Background(), validRequest())

	var priceErr *PriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, 1200, priceErr.Bound)
}

func TestExecute_UniqueViolationAtCommit(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.expectFreeSlot()
	env.lessons.On("ListByDate", mock.Anything, testDate).Return([]*domain.Lesson{}, nil)
	env.lessons.On("Create", mock.Anything, mock.Anything).Return(nil, lessonRepo.ErrSlotTaken)

	_, err := env.uc.Execute(context.Background(), validRequest())

	// Гонка, пойманная уникальным ограничением, выглядит как обычный конфликт
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("14:00"), conflict.ConflictingStart)
}

func TestExecute_RejectionLeavesNoTrace(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, nil)
	env.index.On("IsBlocked", mock.Anything, testDate, mock.Anything).Return(true, nil)

	// Повторная попытка того же запроса даёт ту же ошибку
	for i := 0; i < 2; i++ {
		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrTimeBlocked)
	}
	env.lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_IndexErrorWrapped(t *testing.T) {
	env := newTestEnv()
	env.expectStudent()
	env.index.On("CollidingLesson", mock.Anything, testDate, mock.Anything).Return(nil, errors.New("db down"))

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
