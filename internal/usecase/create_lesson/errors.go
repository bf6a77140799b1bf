package create_lesson

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// (нечитаемая дата, нечитаемое время, неположительная цена)
	ErrInvalidInput = errors.New("create_lesson: invalid input data")

	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("create_lesson: student not found")

	// ErrDatePassed возвращается, когда момент начала урока уже наступил
	ErrDatePassed = errors.New("create_lesson: date has already passed")

	// ErrTooFarAhead возвращается, когда дата выходит за горизонт записи
	ErrTooFarAhead = errors.New("create_lesson: date is beyond the booking horizon")

	// ErrInsufficientLeadTime возвращается, когда до начала урока остаётся
	// меньше обязательного запаса времени
	ErrInsufficientLeadTime = errors.New("create_lesson: insufficient lead time")

	// ErrTimeTooEarly возвращается, когда время раньше начала рабочего дня
	ErrTimeTooEarly = errors.New("create_lesson: time is before business hours")

	// ErrTimeTooLate возвращается, когда время позже конца рабочего дня
	ErrTimeTooLate = errors.New("create_lesson: time is after business hours")

	// ErrSlotAlreadyBooked возвращается, когда слот пересекается с существующим уроком
	ErrSlotAlreadyBooked = errors.New("create_lesson: slot is already booked")

	// ErrTimeBlocked возвращается, когда слот попадает в заблокированный диапазон
	ErrTimeBlocked = errors.New("create_lesson: time is blocked")

	// ErrPriceTooLow возвращается, когда предложенная цена ниже обязательного минимума
	ErrPriceTooLow = errors.New("create_lesson: price is too low")

	// ErrPriceImplausible возвращается, когда цена превышает потолок
	ErrPriceImplausible = errors.New("create_lesson: price is implausible")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_lesson: internal error")
)

// SlotConflictError несёт время начала конфликтующего урока.
// errors.Is с ErrSlotAlreadyBooked продолжает работать.
type SlotConflictError struct {
	ConflictingStart types.TimeString
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: conflicts with lesson at %s", ErrSlotAlreadyBooked, e.ConflictingStart)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotAlreadyBooked
}

// PriceError несёт параметры ценовой ошибки для вышестоящего слоя
type PriceError struct {
	kind     error
	Proposed int
	Bound    int
}

func (e *PriceError) Error() string {
	return fmt.Sprintf("%v: proposed %d, bound %d", e.kind, e.Proposed, e.Bound)
}

func (e *PriceError) Unwrap() error {
	return e.kind
}

// NewPriceError создаёт PriceError с заданным видом (ErrPriceTooLow или ErrPriceImplausible)
func NewPriceError(kind error, proposed, bound int) *PriceError {
	return &PriceError{kind: kind, Proposed: proposed, Bound: bound}
}
