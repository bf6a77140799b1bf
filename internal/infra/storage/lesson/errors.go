package lesson

import "errors"

var (
	// ErrLessonNotFound возвращается, когда урок не найден
	ErrLessonNotFound = errors.New("lesson.repository: lesson not found")

	// ErrSlotTaken возвращается при нарушении уникальности (date, start_time).
	// Финальная страховка от гонки двух одновременных записей на один слот.
	ErrSlotTaken = errors.New("lesson.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lesson.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lesson.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lesson.repository: failed to scan row")
)
