package students

import "errors"

var (
	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("student not found")

	// ErrUsernameTaken возвращается, когда логин уже занят
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials возвращается при неверной паре логин/пароль
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
