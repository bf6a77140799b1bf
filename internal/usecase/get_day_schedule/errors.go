package get_day_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_schedule: invalid input data")

	// ErrStudentNotFound возвращается, когда указанный студент не найден
	ErrStudentNotFound = errors.New("get_day_schedule: student not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_schedule: internal error")
)
