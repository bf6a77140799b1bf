package create_block

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_block: invalid input data")

	// ErrInvalidRange возвращается, когда конец блокировки не позже начала
	ErrInvalidRange = errors.New("create_block: end time must be after start time")

	// ErrOverlapsBlock возвращается при пересечении с существующей блокировкой
	ErrOverlapsBlock = errors.New("create_block: overlaps an existing time block")

	// ErrDatePassed возвращается, когда дата блокировки уже прошла
	ErrDatePassed = errors.New("create_block: date has already passed")

	// ErrTooFarAhead возвращается, когда дата за горизонтом планирования
	ErrTooFarAhead = errors.New("create_block: date is beyond the booking horizon")

	// ErrOverlapsLesson возвращается при пересечении с записанным уроком
	ErrOverlapsLesson = errors.New("create_block: overlaps a booked lesson")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_block: internal error")
)

// OverlapError несёт границы конфликтующего интервала
type OverlapError struct {
	kind  error
	Start types.TimeString
	End   types.TimeString
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v: conflicting interval %s-%s", e.kind, e.Start, e.End)
}

func (e *OverlapError) Unwrap() error {
	return e.kind
}
