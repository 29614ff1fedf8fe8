package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2025-11-12 is a Wednesday, 2025-11-09 is a Sunday, 2025-11-15 is a Saturday.
var (
	wednesday = time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)
	sunday    = time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestComputeAvailability(t *testing.T) {
	hours := DefaultBusinessHours()

	tests := []struct {
		name        string
		date        time.Time
		bookings    []Booking
		wantClosed  bool
		wantHours   []int
		wantTotal   int
		wantBooked  int
		wantLabel   string
		wantDayName string
	}{
		{
			name:        "weekday with no bookings yields full 9..17 range",
			date:        wednesday,
			bookings:    nil,
			wantHours:   []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
			wantTotal:   9,
			wantBooked:  0,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
		{
			name:        "saturday with no bookings yields full 8..18 range",
			date:        saturday,
			bookings:    nil,
			wantHours:   []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18},
			wantTotal:   11,
			wantBooked:  0,
			wantLabel:   "8:00 AM - 7:00 PM",
			wantDayName: "Saturday",
		},
		{
			name: "sunday is closed regardless of bookings",
			date: sunday,
			bookings: []Booking{
				{ScheduledAt: at(sunday, 10, 0), Status: "confirmed"},
			},
			wantClosed:  true,
			wantHours:   []int{},
			wantTotal:   0,
			wantBooked:  0,
			wantDayName: "Sunday",
		},
		{
			name: "confirmed booking blocks its hour, completed does not",
			date: wednesday,
			bookings: []Booking{
				{ScheduledAt: at(wednesday, 9, 0), Status: "confirmed"},
				{ScheduledAt: at(wednesday, 14, 0), Status: "completed"},
			},
			wantHours:   []int{10, 11, 12, 13, 14, 15, 16, 17},
			wantTotal:   9,
			wantBooked:  1,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
		{
			name: "cancelled booking does not block its hour",
			date: wednesday,
			bookings: []Booking{
				{ScheduledAt: at(wednesday, 10, 0), Status: "cancelled"},
			},
			wantHours:   []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
			wantTotal:   9,
			wantBooked:  0,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
		{
			name: "duplicate bookings at the same hour count once",
			date: wednesday,
			bookings: []Booking{
				{ScheduledAt: at(wednesday, 11, 0), Status: "scheduled"},
				{ScheduledAt: at(wednesday, 11, 30), Status: "in_progress"},
			},
			wantHours:   []int{9, 10, 12, 13, 14, 15, 16, 17},
			wantTotal:   9,
			wantBooked:  1,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
		{
			name: "minutes are ignored when matching a slot",
			date: wednesday,
			bookings: []Booking{
				{ScheduledAt: at(wednesday, 15, 45), Status: "scheduled"},
			},
			wantHours:   []int{9, 10, 11, 12, 13, 14, 16, 17},
			wantTotal:   9,
			wantBooked:  1,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
		{
			name: "bookings on another day are ignored",
			date: wednesday,
			bookings: []Booking{
				{ScheduledAt: at(saturday, 10, 0), Status: "confirmed"},
			},
			wantHours:   []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
			wantTotal:   9,
			wantBooked:  0,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
		{
			name: "bookings outside business hours do not count as booked",
			date: wednesday,
			bookings: []Booking{
				{ScheduledAt: at(wednesday, 7, 0), Status: "confirmed"},
				{ScheduledAt: at(wednesday, 20, 0), Status: "scheduled"},
			},
			wantHours:   []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
			wantTotal:   9,
			wantBooked:  0,
			wantLabel:   "9:00 AM - 6:00 PM",
			wantDayName: "Wednesday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAvailability(tt.date, tt.bookings, hours)

			require.Equal(t, tt.wantClosed, got.IsClosed)
			require.Equal(t, tt.wantDayName, got.DayName)
			require.Equal(t, tt.wantTotal, got.TotalSlots)
			require.Equal(t, tt.wantBooked, got.BookedSlots)
			require.Equal(t, tt.wantLabel, got.BusinessHoursLabel)

			gotHours := make([]int, len(got.Slots))
			for i, s := range got.Slots {
				gotHours[i] = s.Hour
			}
			require.Equal(t, tt.wantHours, gotHours)
		})
	}
}

func TestComputeAvailabilityIsDeterministic(t *testing.T) {
	hours := DefaultBusinessHours()
	bookings := []Booking{
		{ScheduledAt: at(wednesday, 9, 0), Status: "confirmed"},
		{ScheduledAt: at(wednesday, 13, 0), Status: "scheduled"},
	}

	first := ComputeAvailability(wednesday, bookings, hours)
	second := ComputeAvailability(wednesday, bookings, hours)
	require.True(t, reflect.DeepEqual(first, second))
}

func TestComputeAvailabilityNormalizesToMidnight(t *testing.T) {
	hours := DefaultBusinessHours()

	// A late-evening timestamp must resolve to the same day, not the next.
	lateWednesday := time.Date(2025, 11, 12, 23, 30, 0, 0, time.UTC)
	got := ComputeAvailability(lateWednesday, nil, hours)

	require.Equal(t, "2025-11-12", got.Date)
	require.Equal(t, "Wednesday", got.DayName)
	require.False(t, got.IsClosed)
}

func TestSlotLabels(t *testing.T) {
	hours := DefaultBusinessHours()
	got := ComputeAvailability(wednesday, nil, hours)

	require.Equal(t, []string{
		"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
		"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
	}, got.SlotLabels())
}

func TestParseDate(t *testing.T) {
	loc := time.UTC

	d, err := ParseDate("2025-11-09", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 11, 9, 0, 0, 0, 0, loc), d)

	_, err = ParseDate("not-a-date", loc)
	require.ErrorIs(t, err, ErrInvalidDate)

	// A syntactically valid but impossible calendar date must be rejected.
	_, err = ParseDate("2025-02-30", loc)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestHourLabelBoundaries(t *testing.T) {
	require.Equal(t, "12:00 AM", hourLabel(0))
	require.Equal(t, "12:00 PM", hourLabel(12))
	require.Equal(t, "11:00 PM", hourLabel(23))
	require.Equal(t, "12:00 AM", hourLabel(24))
}
