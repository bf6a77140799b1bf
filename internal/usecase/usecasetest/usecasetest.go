// Package usecasetest содержит общие заглушки для тестов usecase-слоя.
// Моки репозиториев остаются в пакетах тестов: их контракты различаются.
package usecasetest

import (
	"context"
	"time"
)

// StubTxManager выполняет fn без транзакции
type StubTxManager struct{}

func (StubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NopLogger молчащий логгер
type NopLogger struct{}

func (NopLogger) Info(format string, v ...interface{})  {}
func (NopLogger) Warn(format string, v ...interface{})  {}
func (NopLogger) Error(format string, v ...interface{}) {}

// FixedTime часы, остановленные на Time
type FixedTime struct{ Time time.Time }

func (f FixedTime) Now() time.Time { return f.Time }
