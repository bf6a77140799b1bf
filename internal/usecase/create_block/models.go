package create_block

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Request модель запроса на блокировку интервала времени
type Request struct {
	Date      time.Time        // дата блокировки (без времени)
	StartTime types.TimeString // начало интервала
	EndTime   types.TimeString // конец интервала, строго позже начала
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
}
