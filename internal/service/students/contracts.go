package students

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

// AuthCredentials пара логин/пароль
type AuthCredentials struct {
	Username string
	Password string
}

// Authenticator проверяет учетные данные студента
type Authenticator interface {
	Authenticate(ctx context.Context, creds AuthCredentials) (*models.StudentResponse, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	GetByUsername(ctx context.Context, username string) (*domain.Student, error)
	List(ctx context.Context) ([]*domain.Student, error)
	UpdatePricing(ctx context.Context, id int64, usualPrice, highPrice *int) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
