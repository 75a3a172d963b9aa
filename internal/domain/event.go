package domain

import (
	"time"
)

// EventStatus is the derived lifecycle state of an event relative to a
// point in time.
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusOngoing  EventStatus = "ongoing"
	EventStatusPast     EventStatus = "past"
)

// Event represents an orientation week event. Start and end times are
// stored as local "HH:MM" strings alongside the calendar date, matching
// how admins enter them.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Location    string    `json:"location,omitempty"`
	IsActive    bool      `json:"is_active"`
	MaxGroups   int       `json:"max_groups"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Groups []*EventGroup `json:"groups,omitempty"`
}

// EventGroup is a time-slotted group within an event with a fixed seat cap.
type EventGroup struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	MaxSeats int    `json:"max_seats"`

	// ConfirmedCount is the number of CONFIRMED registrations in the
	// group, loaded alongside the group by the repository.
	ConfirmedCount int `json:"confirmed_count"`
}

// AvailableSeats returns the number of free seats in the group. Only
// CONFIRMED registrations consume capacity. Clamped at zero so an
// over-booked group never reports a negative value.
func (g *EventGroup) AvailableSeats() int {
	available := g.MaxSeats - g.ConfirmedCount
	if available < 0 {
		return 0
	}
	return available
}

// IsFull reports whether the event has no free seats left. An event
// without groups has nothing to exhaust and is never full.
func (e *Event) IsFull() bool {
	if len(e.Groups) == 0 {
		return false
	}
	for _, g := range e.Groups {
		if g.AvailableSeats() > 0 {
			return false
		}
	}
	return true
}

// StartsAt combines the event date with its start time-of-day.
func (e *Event) StartsAt() time.Time {
	return combine(e.Date, e.StartTime)
}

// EndsAt combines the event date with its end time-of-day.
func (e *Event) EndsAt() time.Time {
	return combine(e.Date, e.EndTime)
}

// StatusAt derives the event status at the given instant:
// now < start -> upcoming, start <= now <= end -> ongoing, else past.
func (e *Event) StatusAt(now time.Time) EventStatus {
	start := e.StartsAt()
	end := e.EndsAt()

	if now.Before(start) {
		return EventStatusUpcoming
	}
	if !now.After(end) {
		return EventStatusOngoing
	}
	return EventStatusPast
}

// combine parses an "HH:MM" time-of-day onto the given date in the
// date's location. A malformed time collapses to midnight.
func combine(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// ValidTimeOfDay reports whether s is a well-formed "HH:MM" string.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
