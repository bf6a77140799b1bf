package students

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
	"github.com/m04kA/SMC-LessonsService/pkg/ptr"
)

type MockStudentRepo struct{ mock.Mock }

func (m *MockStudentRepo) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	args := m.Called(ctx, student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepo) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepo) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepo) List(ctx context.Context) ([]*domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Student), args.Error(1)
}

func (m *MockStudentRepo) UpdatePricing(ctx context.Context, id int64, usualPrice, highPrice *int) error {
	return m.Called(ctx, id, usualPrice, highPrice).Error(0)
}

func (m *MockStudentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *MockStudentRepo) *Service {
	return NewService(repo, domain.CalendarConstraints{MaxPrice: 6999}, nopLogger{})
}

func TestRegister(t *testing.T) {
	repo := new(MockStudentRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Student) bool {
		// Пароль сохраняется только в виде bcrypt-хеша
		return s.PasswordHash != "secret-password" &&
			bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte("secret-password")) == nil
	})).Return(&domain.Student{ID: 1, Username: "ivan", FirstName: "Иван", Phone: "+79161234567"}, nil)

	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username:  "ivan",
		FirstName: "Иван",
		Password:  "secret-password",
		Phone:     ptr.Ptr("+79161234567"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "ivan", resp.Username)
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockStudentRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, studentRepo.ErrUsernameTaken)

	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username:  "ivan",
		FirstName: "Иван",
		Password:  "secret-password",
		Telegram:  ptr.Ptr("@ivan"),
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_InvalidInputSkipsRepo(t *testing.T) {
	repo := new(MockStudentRepo)
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "ivan"})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockStudentRepo)
	repo.On("GetByUsername", mock.Anything, "ivan").Return(&domain.Student{
		ID:           1,
		Username:     "ivan",
		PasswordHash: string(hash),
	}, nil)

	svc := newTestService(repo)

	resp, err := svc.Authenticate(context.Background(), AuthCredentials{Username: "ivan", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Неверный пароль и несуществующий логин наружу неразличимы
	_, err = svc.Authenticate(context.Background(), AuthCredentials{Username: "ivan", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, studentRepo.ErrStudentNotFound)
	_, err = svc.Authenticate(context.Background(), AuthCredentials{Username: "ghost", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePricing(t *testing.T) {
	repo := new(MockStudentRepo)
	repo.On("UpdatePricing", mock.Anything, int64(7), ptr.Ptr(900), (*int)(nil)).Return(nil)

	svc := newTestService(repo)

	err := svc.UpdatePricing(context.Background(), 7, &models.UpdatePricingRequest{UsualPrice: ptr.Ptr(900)})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdatePricing_StudentNotFound(t *testing.T) {
	repo := new(MockStudentRepo)
	repo.On("UpdatePricing", mock.Anything, int64(404), mock.Anything, mock.Anything).Return(studentRepo.ErrStudentNotFound)

	svc := newTestService(repo)

	err := svc.UpdatePricing(context.Background(), 404, &models.UpdatePricingRequest{UsualPrice: ptr.Ptr(900)})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestDelete(t *testing.T) {
	repo := new(MockStudentRepo)
	repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	svc := newTestService(repo)
	require.NoError(t, svc.Delete(context.Background(), 7))

	repo.On("Delete", mock.Anything, int64(404)).Return(studentRepo.ErrStudentNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 404), ErrStudentNotFound)
}
