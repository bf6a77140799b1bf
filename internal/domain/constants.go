package domain

import "time"

// Длительность урока фиксированная - ровно один час
const (
	LessonDurationMinutes = 60
	LessonDuration        = time.Hour
)

// Default calendar constraints.
// Совпадают с историческими настройками расписания преподавателя.
const (
	DefaultBusinessStart      = "08:00"
	DefaultMorningMarkupEnd   = "10:00"
	DefaultEveningMarkupStart = "21:00"
	DefaultBusinessEnd        = "23:00"

	DefaultMinPrice  = 700
	DefaultHighPrice = 1000
	DefaultMaxPrice  = DefaultMinPrice*10 - 1 // защита от опечатки в цене

	DefaultLeadTimeHours        = 6
	DefaultBookingHorizonDays   = 10
	DefaultDailyLessonThreshold = 8
)

// Business validation constants
const (
	MaxTopicLength    = 100
	DefaultTopic      = "Consultation"
	PhoneDigitsLength = 11
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
