package get_user_lessons

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/service/lessons/models"
)

type LessonService interface {
	GetUserLessons(ctx context.Context, req *models.GetUserLessonsRequest) (*models.LessonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
