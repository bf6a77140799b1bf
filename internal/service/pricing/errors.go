package pricing

import "errors"

var (
	// ErrPriceTooLow возвращается, когда предложенная цена ниже обязательного минимума
	ErrPriceTooLow = errors.New("pricing: price is below the required minimum")

	// ErrPriceImplausible возвращается, когда цена превышает потолок maxPrice
	ErrPriceImplausible = errors.New("pricing: price exceeds the plausible maximum")
)
