package create_lesson_admin

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_lesson_admin: invalid input data")

	// ErrStudentNotSelected возвращается, когда администратор не выбрал студента
	ErrStudentNotSelected = errors.New("create_lesson_admin: student is not selected")

	// ErrStudentNotFound возвращается, когда выбранный студент не найден
	ErrStudentNotFound = errors.New("create_lesson_admin: student not found")

	// ErrDatePassed возвращается, когда момент начала урока уже прошёл
	ErrDatePassed = errors.New("create_lesson_admin: lesson start is in the past")

	// ErrTooFarAhead возвращается, когда дата за горизонтом планирования
	ErrTooFarAhead = errors.New("create_lesson_admin: date is beyond the booking horizon")

	// ErrInsufficientLeadTime возвращается, когда до урока меньше минимального запаса
	ErrInsufficientLeadTime = errors.New("create_lesson_admin: insufficient lead time")

	// ErrTimeTooEarly возвращается, когда время раньше начала рабочего дня
	ErrTimeTooEarly = errors.New("create_lesson_admin: time is before business hours")

	// ErrTimeTooLate возвращается, когда время позже конца рабочего дня
	ErrTimeTooLate = errors.New("create_lesson_admin: time is after business hours")

	// ErrSlotAlreadyBooked возвращается, когда слот пересекается с существующим уроком
	ErrSlotAlreadyBooked = errors.New("create_lesson_admin: slot is already booked")

	// ErrTimeBlocked возвращается, когда время попадает в заблокированный интервал
	ErrTimeBlocked = errors.New("create_lesson_admin: time is blocked")

	// ErrPriceImplausible возвращается, когда цена превышает потолок.
	// Минимум на админскую цену не распространяется, потолок - да.
	ErrPriceImplausible = errors.New("create_lesson_admin: price is implausible")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_lesson_admin: internal error")
)

// SlotConflictError несёт время начала конфликтующего урока
type SlotConflictError struct {
	ConflictingStart types.TimeString
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: conflicts with lesson at %s", ErrSlotAlreadyBooked, e.ConflictingStart)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotAlreadyBooked
}
