package quote_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrStudentNotFound возвращается, когда указанный студент не найден
	ErrStudentNotFound = errors.New("quote_price: student not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
