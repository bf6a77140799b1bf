package domain

import "time"

// Student represents a student record
type Student struct {
	ID           int64
	Username     string
	FirstName    string
	PasswordHash string
	Phone        string // цифры без форматирования, может быть пустым
	Telegram     string // ник вида "@name", может быть пустым
	IsAdmin      bool

	// Опциональные персональные цены, перекрывают глобальные настройки
	UsualPrice *int
	HighPrice  *int

	CreatedAt time.Time
}

// PricingProfile персональные цены студента, если они заданы
type PricingProfile struct {
	UsualPrice *int
	HighPrice  *int
}

// PricingProfile возвращает ценовой профиль студента
func (s *Student) PricingProfile() PricingProfile {
	return PricingProfile{UsualPrice: s.UsualPrice, HighPrice: s.HighPrice}
}

// HasContact проверяет, что у студента указан хотя бы один способ связи
func (s *Student) HasContact() bool {
	return s.Phone != "" || s.Telegram != ""
}
