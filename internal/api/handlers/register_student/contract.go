package register_student

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

type StudentService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.StudentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
