package models

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию студента
type RegisterRequest struct {
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	Password  string  `json:"password"`
	Phone     *string `json:"phone,omitempty"`    // 11 цифр, достаточно одного из контактов
	Telegram  *string `json:"telegram,omitempty"` // начинается с @
}

// UpdatePricingRequest запрос на установку персональных цен студента
type UpdatePricingRequest struct {
	UsualPrice *int `json:"usualPrice,omitempty"`
	HighPrice  *int `json:"highPrice,omitempty"`
}

// Response модели

// StudentResponse ответ с данными студента
type StudentResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	Phone     *string `json:"phone,omitempty"`
	Telegram  *string `json:"telegram,omitempty"`
	IsAdmin   bool    `json:"isAdmin"`

	UsualPrice *int `json:"usualPrice,omitempty"` // персональная обычная цена
	HighPrice  *int `json:"highPrice,omitempty"`  // персональная цена с наценкой

	CreatedAt time.Time `json:"createdAt"`
}

// StudentListResponse ответ со списком студентов
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
}

// Методы конвертации

// FromDomainStudent конвертирует domain модель в DTO.
// Хеш пароля наружу не отдается.
func FromDomainStudent(s *domain.Student) *StudentResponse {
	if s == nil {
		return nil
	}

	return &StudentResponse{
		ID:         s.ID,
		Username:   s.Username,
		FirstName:  s.FirstName,
		Phone:      optional(s.Phone),
		Telegram:   optional(s.Telegram),
		IsAdmin:    s.IsAdmin,
		UsualPrice: s.UsualPrice,
		HighPrice:  s.HighPrice,
		CreatedAt:  s.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FromDomainStudentList конвертирует список domain моделей в DTO
func FromDomainStudentList(students []*domain.Student) *StudentListResponse {
	resp := &StudentListResponse{
		Students: make([]StudentResponse, 0, len(students)),
	}
	for _, s := range students {
		resp.Students = append(resp.Students, *FromDomainStudent(s))
	}
	return resp
}
