package create_block

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// validateRequest валидирует форму входных данных и корректность интервала.
// Границы блокировки, как и уроки, живут на часовой сетке.
func validateRequest(req *Request) error {
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

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	if !req.EndTime.OnHour() {
		return fmt.Errorf("%w: endTime %s is not on the hour", ErrInvalidInput, req.EndTime)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidRange, req.StartTime, req.EndTime)
	}

	return nil
}

// validateDate проверяет дату блокировки относительно текущего момента.
// Выполняется после проверки пересечения с блокировками: порядок ошибок
// фиксирован, менять его нельзя.
func validateDate(date time.Time, now time.Time, constraints domain.CalendarConstraints) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return fmt.Errorf("%w: %s", ErrDatePassed, date.Format(domain.DateFormat))
	}
	if dateOnly.After(constraints.HorizonDate(now)) {
		return fmt.Errorf("%w: %s", ErrTooFarAhead, date.Format(domain.DateFormat))
	}
	return nil
}
