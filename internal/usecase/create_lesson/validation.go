package create_lesson

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// validateRequest валидирует форму входных данных (шаг 1 конвейера).
// Уроки живут на часовой сетке: начало не на границе часа отвергается
// здесь, иначе два слота могли бы пересечься, не совпадая по началу.
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.OnHour() {
		return fmt.Errorf("%w: startTime %s is not on the hour", ErrInvalidInput, req.StartTime)
	}

	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	if req.Topic != nil && len(*req.Topic) > domain.MaxTopicLength {
		return fmt.Errorf("%w: topic is longer than %d characters", ErrInvalidInput, domain.MaxTopicLength)
	}

	return nil
}

// validateTemporal проверяет временные ограничения в фиксированном порядке:
// прошлое (шаг 2), горизонт (шаг 3), запас времени (шаг 4), рабочие часы
// (шаг 5). Порядок определяет, какую именно ошибку увидит студент, и
// менять его нельзя.
func validateTemporal(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	constraints domain.CalendarConstraints,
) error {
	startsAt := startTime.At(date)

	if startsAt.Before(now) {
		return fmt.Errorf("%w: %s %s is in the past", ErrDatePassed, date.Format(domain.DateFormat), startTime)
	}

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if dateOnly.After(constraints.HorizonDate(now)) {
		return fmt.Errorf("%w: bookings are open %d days ahead",
			ErrTooFarAhead, int(constraints.BookingHorizon.Hours()/24))
	}

	if startsAt.Before(now.Add(constraints.LeadTime)) {
		return fmt.Errorf("%w: bookings require %s advance notice", ErrInsufficientLeadTime, constraints.LeadTime)
	}

	// Рабочие часы включают обе границы: урок в businessEnd допустим
	if startTime.IsBefore(constraints.BusinessStart) {
		return fmt.Errorf("%w: %s is before %s", ErrTimeTooEarly, startTime, constraints.BusinessStart)
	}
	if startTime.IsAfter(constraints.BusinessEnd) {
		return fmt.Errorf("%w: %s is after %s", ErrTimeTooLate, startTime, constraints.BusinessEnd)
	}

	return nil
}
