package timeblock

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок не найден
	ErrBlockNotFound = errors.New("timeblock.repository: time block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeblock.repository: failed to scan row")
)
