package create_lesson_admin

import (
	"context"

	createLessonAdmin "github.com/m04kA/SMC-LessonsService/internal/usecase/create_lesson_admin"
)

type CreateLessonAdminUseCase interface {
	Execute(ctx context.Context, req *createLessonAdmin.Request) (*createLessonAdmin.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
