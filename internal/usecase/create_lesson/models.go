package create_lesson

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Request модель запроса на создание урока студентом
type Request struct {
	StudentID int64            // ID студента
	Date      time.Time        // дата урока (без времени)
	StartTime types.TimeString // время начала слота (например, "14:00")
	Price     int              // предложенная цена, должна покрывать обязательный минимум
	Topic     *string          // тема урока (опционально)
}

// Response модель ответа с созданным уроком
type Response struct {
	ID        int64
	StudentID int64
	Date      time.Time
	StartTime types.TimeString
	Price     int // итоговая цена
	Topic     string
	CreatedAt time.Time
}
