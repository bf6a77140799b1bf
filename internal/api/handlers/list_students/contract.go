package list_students

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

type StudentService interface {
	List(ctx context.Context) (*models.StudentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
