package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// ErrConfiguration возвращается при противоречивых настройках календаря.
// Фатальна: сервис с такими настройками не запускается.
var ErrConfiguration = errors.New("domain: invalid calendar configuration")

// CalendarConstraints неизменяемые настройки расписания и цен.
// Загружаются один раз при старте процесса и далее не меняются.
type CalendarConstraints struct {
	BusinessStart      types.TimeString // начало рабочего дня
	BusinessEnd        types.TimeString // конец рабочего дня (последний допустимый слот)
	MorningMarkupEnd   types.TimeString // до этого времени действует утренняя наценка
	EveningMarkupStart types.TimeString // с этого времени действует вечерняя наценка

	MinPrice  int // минимальная цена урока
	HighPrice int // цена в часы наценки и при заполненном дне
	MaxPrice  int // потолок цены, защита от опечаток

	LeadTime       time.Duration // минимальный запас до начала урока
	BookingHorizon time.Duration // максимальная дальность записи

	DailyLessonThreshold int // с какого по счету урока в день включается наценка
}

// Validate проверяет согласованность настроек. Нарушение любого условия
// делает планировщик бессмысленным, поэтому ошибка фатальна.
func (c CalendarConstraints) Validate() error {
	for name, ts := range map[string]types.TimeString{
		"businessStart":      c.BusinessStart,
		"businessEnd":        c.BusinessEnd,
		"morningMarkupEnd":   c.MorningMarkupEnd,
		"eveningMarkupStart": c.EveningMarkupStart,
	} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfiguration, name, err)
		}
	}

	if !c.BusinessStart.IsBefore(c.MorningMarkupEnd) ||
		!c.MorningMarkupEnd.IsBefore(c.EveningMarkupStart) ||
		!c.EveningMarkupStart.IsBefore(c.BusinessEnd) {
		return fmt.Errorf(
			"%w: expected businessStart < morningMarkupEnd < eveningMarkupStart < businessEnd, got %s < %s < %s < %s",
			ErrConfiguration, c.BusinessStart, c.MorningMarkupEnd, c.EveningMarkupStart, c.BusinessEnd,
		)
	}

	if c.MinPrice >= c.HighPrice || c.HighPrice > c.MaxPrice {
		return fmt.Errorf(
			"%w: expected minPrice < highPrice <= maxPrice, got %d / %d / %d",
			ErrConfiguration, c.MinPrice, c.HighPrice, c.MaxPrice,
		)
	}

	if c.LeadTime >= c.BookingHorizon {
		return fmt.Errorf(
			"%w: expected leadTime < bookingHorizon, got %s / %s",
			ErrConfiguration, c.LeadTime, c.BookingHorizon,
		)
	}

	if c.DailyLessonThreshold <= 0 {
		return fmt.Errorf("%w: dailyLessonThreshold must be positive, got %d", ErrConfiguration, c.DailyLessonThreshold)
	}

	return nil
}

// HorizonDate возвращает последнюю дату, на которую разрешена запись
func (c CalendarConstraints) HorizonDate(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.Add(c.BookingHorizon)
}

// InMorningMarkup проверяет попадание времени в утреннее окно наценки [businessStart, morningMarkupEnd)
func (c CalendarConstraints) InMorningMarkup(t types.TimeString) bool {
	return !t.IsBefore(c.BusinessStart) && t.IsBefore(c.MorningMarkupEnd)
}

// InEveningMarkup проверяет попадание времени в вечернее окно наценки [eveningMarkupStart, businessEnd)
func (c CalendarConstraints) InEveningMarkup(t types.TimeString) bool {
	return !t.IsBefore(c.EveningMarkupStart) && t.IsBefore(c.BusinessEnd)
}
