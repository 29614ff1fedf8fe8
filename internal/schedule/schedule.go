// Package schedule computes bookable appointment slots for a calendar date.
// It is a pure in-memory computation: callers fetch the day's bookings and
// pass them in, so the engine itself performs no I/O and is safe to call
// concurrently.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed as a real
// calendar date.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the wire format for calendar dates (ISO-8601, date only).
const DateLayout = "2006-01-02"

// Interval is a half-open range of opening hours [Start, End) in 24-hour
// local time.
type Interval struct {
	Start int
	End   int
}

// BusinessHours maps a weekday to its opening interval. A missing entry
// means the station is closed that day.
type BusinessHours map[time.Weekday]Interval

// DefaultBusinessHours returns the station's opening policy:
// closed on Sunday, 09-18 on weekdays, 08-19 on Saturday.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		time.Monday:    {Start: 9, End: 18},
		time.Tuesday:   {Start: 9, End: 18},
		time.Wednesday: {Start: 9, End: 18},
		time.Thursday:  {Start: 9, End: 18},
		time.Friday:    {Start: 9, End: 18},
		time.Saturday:  {Start: 8, End: 19},
	}
}

// TimeSlot is one bookable hourly window on a given date.
type TimeSlot struct {
	Hour    int    `json:"hour"`
	Time    string `json:"time"`    // 24-hour form, e.g. "09:00"
	Display string `json:"display"` // 12-hour form, e.g. "9:00 AM"
}

// Availability is the result of computing open slots for one date.
type Availability struct {
	Date               string
	DayName            string
	IsClosed           bool
	BusinessHoursLabel string // empty when closed
	Slots              []TimeSlot
	TotalSlots         int
	BookedSlots        int
}

// Booking is the minimal view of an existing appointment the engine needs.
// Status values follow the appointment module ("scheduled", "confirmed",
// "in_progress", "completed", "cancelled").
type Booking struct {
	ScheduledAt time.Time
	Status      string
}

// Statuses that make a booking occupy its hour. Completed and cancelled
// bookings never block a slot.
var occupyingStatuses = map[string]struct{}{
	"scheduled":   {},
	"confirmed":   {},
	"in_progress": {},
}

// ParseDate parses an ISO date string as a calendar date in the given
// location. It returns ErrInvalidDate for anything that is not a real date.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ComputeAvailability derives the open hourly slots for the calendar date of
// the given time, under the provided business-hours policy. Only the date
// portion of `date` is used; it is normalized to local midnight before the
// weekday is derived, so timestamps near day boundaries cannot shift the day.
//
// Bookings are reduced to the set of distinct occupied hours on that same
// calendar date. Minutes are ignored, duplicate bookings at the same hour
// count once, and hours outside the opening interval are ignored.
func ComputeAvailability(date time.Time, bookings []Booking, hours BusinessHours) Availability {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	result := Availability{
		Date:    day.Format(DateLayout),
		DayName: day.Weekday().String(),
	}

	interval, open := hours[day.Weekday()]
	if !open {
		result.IsClosed = true
		result.Slots = []TimeSlot{}
		return result
	}

	occupied := occupiedHours(day, bookings)

	slots := make([]TimeSlot, 0, interval.End-interval.Start)
	booked := 0
	for h := interval.Start; h < interval.End; h++ {
		if _, taken := occupied[h]; taken {
			booked++
			continue
		}
		slots = append(slots, TimeSlot{
			Hour:    h,
			Time:    fmt.Sprintf("%02d:00", h),
			Display: hourLabel(h),
		})
	}

	result.BusinessHoursLabel = hourLabel(interval.Start) + " - " + hourLabel(interval.End)
	result.Slots = slots
	result.TotalSlots = interval.End - interval.Start
	result.BookedSlots = booked
	return result
}

// SlotLabels returns the display labels of the open slots, in order.
func (a Availability) SlotLabels() []string {
	labels := make([]string, len(a.Slots))
	for i, s := range a.Slots {
		labels[i] = s.Display
	}
	return labels
}

// HourOpen reports whether the given hour is an open slot in the result.
func (a Availability) HourOpen(hour int) bool {
	for _, s := range a.Slots {
		if s.Hour == hour {
			return true
		}
	}
	return false
}

// occupiedHours collects the distinct hours blocked by bookings that fall on
// the same calendar day as `day` and have an occupying status.
func occupiedHours(day time.Time, bookings []Booking) map[int]struct{} {
	occupied := make(map[int]struct{})
	for _, b := range bookings {
		if _, ok := occupyingStatuses[b.Status]; !ok {
			continue
		}
		at := b.ScheduledAt.In(day.Location())
		y, m, d := at.Date()
		if y != day.Year() || m != day.Month() || d != day.Day() {
			continue
		}
		occupied[at.Hour()] = struct{}{}
	}
	return occupied
}

// hourLabel formats an hour of day in 12-hour clock form ("12:00 AM" through
// "11:00 PM"). Hour 24 is treated as midnight for closing-time labels.
func hourLabel(hour int) string {
	suffix := "AM"
	h := hour % 24
	if h >= 12 {
		suffix = "PM"
	}
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}
