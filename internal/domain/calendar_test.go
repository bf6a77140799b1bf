package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

func testConstraints() CalendarConstraints {
	return CalendarConstraints{
		BusinessStart:        DefaultBusinessStart,
		BusinessEnd:          DefaultBusinessEnd,
		MorningMarkupEnd:     DefaultMorningMarkupEnd,
		EveningMarkupStart:   DefaultEveningMarkupStart,
		MinPrice:             DefaultMinPrice,
		HighPrice:            DefaultHighPrice,
		MaxPrice:             DefaultMaxPrice,
		LeadTime:             DefaultLeadTimeHours * time.Hour,
		BookingHorizon:       DefaultBookingHorizonDays * 24 * time.Hour,
		DailyLessonThreshold: DefaultDailyLessonThreshold,
	}
}

func TestCalendarConstraints_Validate(t *testing.T) {
	require.NoError(t, testConstraints().Validate())

	tests := []struct {
		name   string
		mutate func(*CalendarConstraints)
	}{
		{"invalid time format", func(c *CalendarConstraints) { c.BusinessStart = "8am" }},
		{"markup windows out of order", func(c *CalendarConstraints) { c.MorningMarkupEnd = "07:00" }},
		{"minPrice above highPrice", func(c *CalendarConstraints) { c.MinPrice = 2000 }},
		{"highPrice above maxPrice", func(c *CalendarConstraints) { c.HighPrice = c.MaxPrice + 1 }},
		{"leadTime beyond horizon", func(c *CalendarConstraints) { c.LeadTime = c.BookingHorizon }},
		{"non-positive threshold", func(c *CalendarConstraints) { c.DailyLessonThreshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConstraints()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrConfiguration)
		})
	}
}

func TestCalendarConstraints_MarkupWindows(t *testing.T) {
	c := testConstraints()

	// Утреннее окно [08:00, 10:00)
	assert.True(t, c.InMorningMarkup("08:00"))
	assert.True(t, c.InMorningMarkup("09:00"))
	assert.False(t, c.InMorningMarkup("10:00"))
	assert.False(t, c.InMorningMarkup("07:00"))

	// Вечернее окно [21:00, 23:00): последний слот дня наценке не подлежит
	assert.True(t, c.InEveningMarkup("21:00"))
	assert.True(t, c.InEveningMarkup("22:00"))
	assert.False(t, c.InEveningMarkup("23:00"))
	assert.False(t, c.InEveningMarkup("20:59"))
}

func TestCalendarConstraints_HorizonDate(t *testing.T) {
	c := testConstraints()
	now := time.Date(2026, 9, 5, 17, 45, 0, 0, time.UTC)

	// Горизонт считается от полуночи текущего дня, а не от момента запроса
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), c.HorizonDate(now))
}

func TestTimeStringBoundsStayComparable(t *testing.T) {
	c := testConstraints()

	end, err := c.BusinessEnd.AddMinutes(LessonDurationMinutes)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("24:00"), end)
}
