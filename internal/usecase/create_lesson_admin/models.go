package create_lesson_admin

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Request модель запроса на создание урока администратором.
// Цена задаётся напрямую и проверяется только на потолок.
type Request struct {
	StudentID int64            // ID студента, за которого создается урок
	Date      time.Time        // дата урока (без времени)
	StartTime types.TimeString // время начала слота
	Price     int              // цена, назначенная администратором
	Topic     *string          // тема урока (опционально)
}

// Response модель ответа с созданным уроком
type Response struct {
	ID        int64
	StudentID int64
	Date      time.Time
	StartTime types.TimeString
	Price     int
	Topic     string
	CreatedAt time.Time
}
