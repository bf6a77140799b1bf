package update_student_pricing

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

type StudentService interface {
	UpdatePricing(ctx context.Context, id int64, req *models.UpdatePricingRequest) error
	GetByID(ctx context.Context, id int64) (*models.StudentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
