package list_blocks

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/service/blocks/models"
)

type BlockService interface {
	ListUpcoming(ctx context.Context) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
