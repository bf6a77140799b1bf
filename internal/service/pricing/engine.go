package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Engine единственное место, где решается, сколько стоит слот.
// Исторически это правило было размазано по формам и вьюхам и разъезжалось;
// теперь все пути бронирования и прайс-квоты идут сюда.
type Engine struct {
	constraints domain.CalendarConstraints
}

// NewEngine создает ценовой движок
func NewEngine(constraints domain.CalendarConstraints) *Engine {
	return &Engine{constraints: constraints}
}

// RequiredMinimumPrice возвращает обязательный минимум цены слота.
// dailyCountExcludingThis - число уже существующих уроков на эту дату,
// без учёта оцениваемого. profile - персональные цены студента (могут быть
// пустыми, тогда действуют глобальные).
//
// Наценка действует в утреннем окне [businessStart, morningMarkupEnd),
// в вечернем окне [eveningMarkupStart, businessEnd) и когда оцениваемый
// урок становится пороговым по счёту за день.
func (e *Engine) RequiredMinimumPrice(t types.TimeString, dailyCountExcludingThis int, profile domain.PricingProfile) int {
	isMorning := e.constraints.InMorningMarkup(t)
	isEvening := e.constraints.InEveningMarkup(t)
	isDaySaturated := dailyCountExcludingThis >= e.constraints.DailyLessonThreshold-1

	if isMorning || isEvening || isDaySaturated {
		if profile.HighPrice != nil {
			return *profile.HighPrice
		}
		return e.constraints.HighPrice
	}

	if profile.UsualPrice != nil {
		return *profile.UsualPrice
	}
	return e.constraints.MinPrice
}

// ValidateProposedPrice проверяет предложенную студентом цену против
// обязательного минимума и потолка maxPrice
func (e *Engine) ValidateProposedPrice(price, requiredMinimum int) error {
	if price < requiredMinimum {
		return fmt.Errorf("%w: proposed %d, required %d", ErrPriceTooLow, price, requiredMinimum)
	}
	if price > e.constraints.MaxPrice {
		return fmt.Errorf("%w: proposed %d, maximum %d", ErrPriceImplausible, price, e.constraints.MaxPrice)
	}
	return nil
}

// CapPrice проверяет только потолок цены. Админ задаёт цену напрямую и
// минимум на него не распространяется, но защита от опечатки остаётся.
func (e *Engine) CapPrice(price int) error {
	if price > e.constraints.MaxPrice {
		return fmt.Errorf("%w: proposed %d, maximum %d", ErrPriceImplausible, price, e.constraints.MaxPrice)
	}
	return nil
}
