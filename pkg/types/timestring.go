package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате строки времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

const timeLayout = "15:04"

// TimeString время в пределах суток в формате "HH:MM" (например, "10:00").
// Хранится в БД как TIME, в JSON сериализуется строкой.
// Значение "24:00" допустимо только как результат интервальной арифметики
// (конец слота, упирающийся в конец суток), но не как входное значение.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка соответствует формату "HH:MM"
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// IsZero проверяет, что значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// Hour возвращает час (0-24)
func (ts TimeString) Hour() int {
	h, _ := ts.split()
	return h
}

// Minute возвращает минуты (0-59)
func (ts TimeString) Minute() int {
	_, m := ts.split()
	return m
}

// Minutes возвращает число минут от начала суток.
// Используется для сравнения и интервальной арифметики.
func (ts TimeString) Minutes() int {
	h, m := ts.split()
	return h*60 + m
}

func (ts TimeString) split() (hour, minute int) {
	parts := strings.SplitN(string(ts), ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Возвращает ошибку, если исходное значение некорректно или результат
// выходит за пределы суток.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	if ts.IsZero() {
		return "", fmt.Errorf("%w: empty value", ErrInvalidTimeString)
	}
	total := ts.Minutes() + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes is out of day range", ErrInvalidTimeString, string(ts), minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// OnHour проверяет, что время попадает на границу часа
func (ts TimeString) OnHour() bool {
	return ts.Minute() == 0
}

// IsBefore проверяет, что ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter проверяет, что ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// At совмещает дату и время в один момент time.Time (локация даты сохраняется)
func (ts TimeString) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), ts.Hour(), ts.Minute(), 0, 0, date.Location())
}

// Value реализует driver.Valuer для записи в колонку TIME
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts) + ":00", nil
}

// Scan реализует sql.Scanner для чтения из колонки TIME
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Postgres возвращает TIME как "HH:MM:SS"
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
