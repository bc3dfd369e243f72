package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	DaysAhead     = 7
	SlotInterval  = 30 * time.Minute
	openingHour   = 10
	closingHour   = 21 // last slot starts at 20:30
	dateLayout    = "2006-01-02"
	timeLayout    = "15:04"
	weekdayLayout = "Mon"

	SlotsPerDay = (closingHour - openingHour) * int(time.Hour/SlotInterval)
)

type Slot struct {
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Start time.Time `json:"datetime"`
}

type DaySlots struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Slots   []Slot `json:"slots"`
}

// GenerateSlots returns DaysAhead day buckets starting at today's calendar
// day, each with half-hour slots from 10:00 to 20:30. Times already past on
// the first day are kept; see DaySlots.Upcoming.
func GenerateSlots(today time.Time) []DaySlots {
	y, m, d := today.Date()
	loc := today.Location()

	days := make([]DaySlots, 0, DaysAhead)
	for i := 0; i < DaysAhead; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		bucket := DaySlots{
			Date:    day.Format(dateLayout),
			Weekday: strings.ToUpper(day.Format(weekdayLayout)),
			Slots:   make([]Slot, 0, SlotsPerDay),
		}
		for k := 0; k < SlotsPerDay; k++ {
			start := time.Date(y, m, d+i, openingHour, k*int(SlotInterval/time.Minute), 0, 0, loc)
			bucket.Slots = append(bucket.Slots, Slot{
				Date:  bucket.Date,
				Time:  start.Format(timeLayout),
				Start: start,
			})
		}
		days = append(days, bucket)
	}
	return days
}

// Upcoming drops slots that start before now.
func (d DaySlots) Upcoming(now time.Time) DaySlots {
	out := DaySlots{Date: d.Date, Weekday: d.Weekday, Slots: make([]Slot, 0, len(d.Slots))}
	for _, s := range d.Slots {
		if !s.Start.Before(now) {
			out.Slots = append(out.Slots, s)
		}
	}
	return out
}

// SlotAt resolves a (day index, "HH:MM") selection against generated days.
func SlotAt(days []DaySlots, dayIndex int, hhmm string) (Slot, error) {
	if dayIndex < 0 || dayIndex >= len(days) {
		return Slot{}, &ValidationError{Step: StepSelectSlot, Field: "dayIndex", Reason: fmt.Sprintf("must be between 0 and %d", len(days)-1)}
	}
	for _, s := range days[dayIndex].Slots {
		if s.Time == hhmm {
			return s, nil
		}
	}
	return Slot{}, &ValidationError{Step: StepSelectSlot, Field: "time", Reason: fmt.Sprintf("%q is not an available slot", hhmm)}
}
