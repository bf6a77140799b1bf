package login

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/service/students"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

type Authenticator interface {
	Authenticate(ctx context.Context, creds students.AuthCredentials) (*models.StudentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
