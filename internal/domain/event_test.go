package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventGroup_AvailableSeats(t *testing.T) {
	tests := []struct {
		name      string
		maxSeats  int
		confirmed int
		want      int
	}{
		{name: "empty group", maxSeats: 20, confirmed: 0, want: 20},
		{name: "partially filled", maxSeats: 20, confirmed: 12, want: 8},
		{name: "exactly full", maxSeats: 20, confirmed: 20, want: 0},
		{name: "overbooked clamps to zero", maxSeats: 20, confirmed: 25, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &EventGroup{MaxSeats: tt.maxSeats, ConfirmedCount: tt.confirmed}
			assert.Equal(t, tt.want, g.AvailableSeats())
		})
	}
}

func TestEvent_IsFull(t *testing.T) {
	t.Run("no groups is never full", func(t *testing.T) {
		e := &Event{}
		assert.False(t, e.IsFull())
	})

	t.Run("one open group keeps the event open", func(t *testing.T) {
		e := &Event{Groups: []*EventGroup{
			{MaxSeats: 10, ConfirmedCount: 10},
			{MaxSeats: 10, ConfirmedCount: 9},
		}}
		assert.False(t, e.IsFull())
	})

	t.Run("all groups full", func(t *testing.T) {
		e := &Event{Groups: []*EventGroup{
			{MaxSeats: 10, ConfirmedCount: 10},
			{MaxSeats: 5, ConfirmedCount: 7},
		}}
		assert.True(t, e.IsFull())
	})
}

func TestEvent_StatusAt(t *testing.T) {
	day := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	e := &Event{Date: day, StartTime: "09:00", EndTime: "11:00"}

	at := func(hour, minute int) time.Time {
		return time.Date(2025, 9, 22, hour, minute, 0, 0, time.UTC)
	}

	assert.Equal(t, EventStatusUpcoming, e.StatusAt(at(8, 0)))
	assert.Equal(t, EventStatusOngoing, e.StatusAt(at(9, 0)), "start is inclusive")
	assert.Equal(t, EventStatusOngoing, e.StatusAt(at(10, 0)))
	assert.Equal(t, EventStatusOngoing, e.StatusAt(at(11, 0)), "end is inclusive")
	assert.Equal(t, EventStatusPast, e.StatusAt(at(12, 0)))

	dayBefore := time.Date(2025, 9, 21, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, EventStatusUpcoming, e.StatusAt(dayBefore))
}

func TestValidTimeOfDay(t *testing.T) {
	assert.True(t, ValidTimeOfDay("09:00"))
	assert.True(t, ValidTimeOfDay("23:59"))
	assert.False(t, ValidTimeOfDay("24:00"))
	assert.False(t, ValidTimeOfDay("9am"))
	assert.False(t, ValidTimeOfDay(""))
}

func TestRegistrationStatus(t *testing.T) {
	assert.True(t, RegistrationStatusConfirmed.ConsumesSeat())
	assert.False(t, RegistrationStatusPending.ConsumesSeat())
	assert.False(t, RegistrationStatusCancelled.ConsumesSeat())
	assert.False(t, RegistrationStatusWaitlist.ConsumesSeat())

	assert.True(t, RegistrationStatus("CONFIRMED").Valid())
	assert.False(t, RegistrationStatus("confirmed").Valid())
	assert.False(t, RegistrationStatus("DELETED").Valid())
}
