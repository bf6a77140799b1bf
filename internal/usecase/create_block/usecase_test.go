package create_block

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

type MockBlockRepo struct{ mock.Mock }

func (m *MockBlockRepo) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	args := m.Called(ctx, block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeBlock), args.Error(1)
}

type MockIndex struct{ mock.Mock }

func (m *MockIndex) OverlappingLesson(ctx context.Context, date time.Time, start, end types.TimeString) (*domain.BlockedRange, error) {
	args := m.Called(ctx, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedRange), args.Error(1)
}

func (m *MockIndex) OverlappingBlock(ctx context.Context, date time.Time, start, end types.TimeString) (*domain.BlockedRange, error) {
	args := m.Called(ctx, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedRange), args.Error(1)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Invalidate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
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
	uc     *UseCase
	blocks *MockBlockRepo
	index  *MockIndex
	cache  *MockCache
}

func newTestEnv() *testEnv {
	blocks := new(MockBlockRepo)
	index := new(MockIndex)
	cache := new(MockCache)

	uc := NewUseCase(blocks, index, cache, testConstraints(), usecasetest.StubTxManager{}, usecasetest.NopLogger{})
	uc.timeProvider = usecasetest.FixedTime{Time: testNow}

	return &testEnv{uc: uc, blocks: blocks, index: index, cache: cache}
}

func validRequest() *Request {
	return &Request{
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "12:00",
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()
	env.index.On("OverlappingBlock", mock.Anything, testDate, types.TimeString("10:00"), types.TimeString("12:00")).Return(nil, nil)
	env.index.On("OverlappingLesson", mock.Anything, testDate, types.TimeString("10:00"), types.TimeString("12:00")).Return(nil, nil)
	env.blocks.On("Create", mock.Anything, mock.Anything).Return(&domain.TimeBlock{
		ID:        5,
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "12:00",
	}, nil)
	env.cache.On("Invalidate", mock.Anything, testDate).Return(nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	env.cache.AssertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"empty start", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"malformed end", func(r *Request) { r.EndTime = "25:00" }, ErrInvalidInput},
		{"start off the hour grid", func(r *Request) { r.StartTime = "10:30" }, ErrInvalidInput},
		{"end off the hour grid", func(r *Request) { r.EndTime = "12:45" }, ErrInvalidInput},
		{"inverted range", func(r *Request) { r.StartTime = "12:00"; r.EndTime = "10:00" }, ErrInvalidRange},
		{"empty range", func(r *Request) { r.StartTime = "10:00"; r.EndTime = "10:00" }, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			env.blocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_OverlapsExistingBlock(t *testing.T) {
	env := newTestEnv()
	env.index.On("OverlappingBlock", mock.Anything, testDate, mock.Anything, mock.Anything).
		Return(&domain.BlockedRange{Start: "11:00", End: "13:00"}, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrOverlapsBlock)

	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, types.TimeString("11:00"), overlap.Start)
	assert.Equal(t, types.TimeString("13:00"), overlap.End)
}

func TestExecute_BlockOverlapReportedBeforeDateChecks(t *testing.T) {
	env := newTestEnv()
	env.index.On("OverlappingBlock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.BlockedRange{Start: "10:00", End: "12:00"}, nil)

	// Дата в прошлом, но пересечение с блокировкой сообщается первым
	req := validRequest()
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOverlapsBlock)
	assert.NotErrorIs(t, err, ErrDatePassed)
}

func TestExecute_DateChecks(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"date passed", time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), ErrDatePassed},
		{"beyond horizon", time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), ErrTooFarAhead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.index.On("OverlappingBlock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

			req := validRequest()
			req.Date = tt.date

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			env.index.AssertNotCalled(t, "OverlappingLesson", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_BlockingTodayAllowed(t *testing.T) {
	today := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	env := newTestEnv()
	env.index.On("OverlappingBlock", mock.Anything, today, mock.Anything, mock.Anything).Return(nil, nil)
	env.index.On("OverlappingLesson", mock.Anything, today, mock.Anything, mock.Anything).Return(nil, nil)
	env.blocks.On("Create", mock.Anything, mock.Anything).Return(&domain.TimeBlock{ID: 1, Date: today}, nil)
	env.cache.On("Invalidate", mock.Anything, today).Return(nil)

	req := validRequest()
	req.Date = today

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_OverlapsLesson(t *testing.T) {
	env := newTestEnv()
	env.index.On("OverlappingBlock", mock.Anything, testDate, mock.Anything, mock.Anything).Return(nil, nil)
	env.index.On("OverlappingLesson", mock.Anything, testDate, mock.Anything, mock.Anything).
		Return(&domain.BlockedRange{Start: "11:00", End: "12:00"}, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrOverlapsLesson)

	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, types.TimeString("11:00"), overlap.Start)
	env.blocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_CacheInvalidationFailureIsNotFatal(t *testing.T) {
	env := newTestEnv()
	env.index.On("OverlappingBlock", mock.Anything, testDate, mock.Anything, mock.Anything).Return(nil, nil)
	env.index.On("OverlappingLesson", mock.Anything, testDate, mock.Anything, mock.Anything).Return(nil, nil)
	env.blocks.On("Create", mock.Anything, mock.Anything).Return(&domain.TimeBlock{ID: 9, Date: testDate}, nil)
	env.cache.On("Invalidate", mock.Anything, testDate).Return(errors.New("redis down"))

	resp, err := env.uc.Execute(context.Background(), validRequest())

	// Запись истечёт по TTL, блокировка уже создана
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
}
