package students

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

const minPasswordLength = 8

// validateRegisterRequest проверяет регистрационную форму.
// Требуется хотя бы один контакт: телефон или telegram.
func validateRegisterRequest(req *models.RegisterRequest) error {
	if req.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if strings.ContainsFunc(req.Username, unicode.IsSpace) {
		return fmt.Errorf("%w: username must not contain spaces", ErrInvalidInput)
	}

	if req.FirstName == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}

	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if strings.ContainsFunc(req.Password, unicode.IsSpace) {
		return fmt.Errorf("%w: password must not contain spaces", ErrInvalidInput)
	}

	hasPhone := req.Phone != nil && *req.Phone != ""
	hasTelegram := req.Telegram != nil && *req.Telegram != ""
	if !hasPhone && !hasTelegram {
		return fmt.Errorf("%w: phone or telegram is required", ErrInvalidInput)
	}

	if hasPhone {
		if err := validatePhone(*req.Phone); err != nil {
			return err
		}
	}
	if hasTelegram && !strings.HasPrefix(*req.Telegram, "@") {
		return fmt.Errorf("%w: telegram username must start with @", ErrInvalidInput)
	}

	return nil
}

// validatePhone проверяет номер телефона: 11 цифр и валидность
// для российского региона
func validatePhone(phone string) error {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits != domain.PhoneDigitsLength {
		return fmt.Errorf("%w: phone must contain %d digits", ErrInvalidInput, domain.PhoneDigitsLength)
	}

	parsed, err := phonenumbers.Parse(phone, "RU")
	if err != nil {
		return fmt.Errorf("%w: invalid phone number: %v", ErrInvalidInput, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
	}

	return nil
}

// validatePricing проверяет персональные цены студента
func validatePricing(req *models.UpdatePricingRequest, constraints domain.CalendarConstraints) error {
	if req.UsualPrice == nil && req.HighPrice == nil {
		return fmt.Errorf("%w: at least one price is required", ErrInvalidInput)
	}

	if req.UsualPrice != nil && (*req.UsualPrice <= 0 || *req.UsualPrice > constraints.MaxPrice) {
		return fmt.Errorf("%w: usualPrice must be in (0, %d]", ErrInvalidInput, constraints.MaxPrice)
	}
	if req.HighPrice != nil && (*req.HighPrice <= 0 || *req.HighPrice > constraints.MaxPrice) {
		return fmt.Errorf("%w: highPrice must be in (0, %d]", ErrInvalidInput, constraints.MaxPrice)
	}
	if req.UsualPrice != nil && req.HighPrice != nil && *req.HighPrice < *req.UsualPrice {
		return fmt.Errorf("%w: highPrice must not be below usualPrice", ErrInvalidInput)
	}

	return nil
}
