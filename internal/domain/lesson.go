package domain

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Lesson represents a booked one-hour lesson slot
type Lesson struct {
	ID        int64
	StudentID int64
	Date      time.Time        // дата урока (без времени)
	StartTime types.TimeString // начало слота, слот занимает [StartTime, StartTime+1h)
	Price     int              // стоимость в рублях
	Topic     string           // тема урока (опционально, по умолчанию "Consultation")

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает конец часового слота урока
func (l *Lesson) EndTime() types.TimeString {
	end, err := l.StartTime.AddMinutes(LessonDurationMinutes)
	if err != nil {
		return l.StartTime
	}
	return end
}

// Occupies проверяет, попадает ли время t в занятый уроком слот [StartTime, StartTime+1h)
func (l *Lesson) Occupies(t types.TimeString) bool {
	return !t.IsBefore(l.StartTime) && t.IsBefore(l.EndTime())
}

// OverlapsRange проверяет пересечение слота урока с полуоткрытым диапазоном [start, end)
func (l *Lesson) OverlapsRange(start, end types.TimeString) bool {
	return l.StartTime.IsBefore(end) && l.EndTime().IsAfter(start)
}

// LessonsFilter фильтр для выборки уроков
type LessonsFilter struct {
	StudentID *int64     // фильтр по студенту (опционально)
	Date      *time.Time // конкретная дата (опционально)
	FromDate  *time.Time // начало периода (опционально)
}
