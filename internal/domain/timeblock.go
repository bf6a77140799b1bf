package domain

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// TimeBlock represents an admin-declared unavailable range on a given date.
// Диапазон полуоткрытый: [StartTime, EndTime).
type TimeBlock struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
}

// OverlapsRange проверяет пересечение блока с полуоткрытым диапазоном [start, end)
func (b *TimeBlock) OverlapsRange(start, end types.TimeString) bool {
	return start.IsBefore(b.EndTime) && end.IsAfter(b.StartTime)
}

// Covers проверяет, накрывает ли блок момент t с учётом граничного правила:
// t == EndTime считается заблокированным только когда EndTime совпадает с
// концом рабочего дня businessEnd. Все остальные касания правой границы
// свободны. Историческое поведение системы, сохраняется для совместимости.
func (b *TimeBlock) Covers(t types.TimeString, businessEnd types.TimeString) bool {
	if !t.IsBefore(b.StartTime) && t.IsBefore(b.EndTime) {
		return true
	}
	return t == b.EndTime && b.EndTime == businessEnd
}

// BlockedRange пара (start, end) заблокированного диапазона для выдачи наружу
type BlockedRange struct {
	Start types.TimeString
	End   types.TimeString
}
