package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	i, err := NewInterval(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return i
}

func slot(id int64, start, end string, status SlotStatus) *TimeSlot {
	return &TimeSlot{
		ID:          id,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      status,
		MaxBookings: 1,
	}
}

func TestNewInterval(t *testing.T) {
	_, err := NewInterval("10:00", "09:00")
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval("10:00", "10:00")
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval("bad", "10:00")
	require.ErrorIs(t, err, ErrInvalidInterval)

	i, err := NewInterval("06:00", "07:00")
	require.NoError(t, err)
	assert.Equal(t, 60, i.DurationMinutes())
}

func TestInterval_Overlaps(t *testing.T) {
	existing := mustInterval(t, "09:00", "10:00")

	tests := []struct {
		name     string
		proposed Interval
		want     bool
	}{
		{name: "partial overlap at end", proposed: mustInterval(t, "09:30", "10:30"), want: true},
		{name: "partial overlap at start", proposed: mustInterval(t, "08:30", "09:15"), want: true},
		{name: "contained", proposed: mustInterval(t, "09:15", "09:45"), want: true},
		{name: "containing", proposed: mustInterval(t, "08:00", "11:00"), want: true},
		{name: "same interval", proposed: mustInterval(t, "09:00", "10:00"), want: true},
		{name: "touching end", proposed: mustInterval(t, "10:00", "11:00"), want: false},
		{name: "touching start", proposed: mustInterval(t, "08:00", "09:00"), want: false},
		{name: "disjoint", proposed: mustInterval(t, "12:00", "13:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.proposed.Overlaps(existing))
			assert.Equal(t, tt.want, existing.Overlaps(tt.proposed))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	deletedAt := time.Now()
	deleted := slot(5, "09:00", "10:00", SlotStatusBlocked)
	deleted.DeletedAt = &deletedAt

	slots := []*TimeSlot{
		slot(3, "10:00", "11:00", SlotStatusBlocked),
		slot(1, "09:00", "10:00", SlotStatusBooked),
		slot(2, "09:30", "10:30", SlotStatusAvailable),
		slot(4, "09:45", "10:15", SlotStatusMaintenance),
		deleted,
	}

	conflicts := FindConflicts(slots, mustInterval(t, "09:30", "10:30"), 0)
	require.Len(t, conflicts, 3)
	assert.Equal(t, int64(1), conflicts[0].ID)
	assert.Equal(t, int64(4), conflicts[1].ID)
	assert.Equal(t, int64(3), conflicts[2].ID)

	for _, c := range conflicts {
		assert.NotEqual(t, SlotStatusAvailable, c.Status)
	}

	// Граничащие интервалы не конфликтуют
	assert.Empty(t, FindConflicts([]*TimeSlot{slot(1, "09:00", "10:00", SlotStatusBooked)}, mustInterval(t, "10:00", "11:00"), 0))

	// Исключение самого слота
	assert.Empty(t, FindConflicts([]*TimeSlot{slot(1, "09:00", "10:00", SlotStatusBooked)}, mustInterval(t, "09:00", "10:00"), 1))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(SlotStatusAvailable, SlotStatusBooked))
	assert.True(t, CanTransition(SlotStatusAvailable, SlotStatusBlocked))
	assert.True(t, CanTransition(SlotStatusAvailable, SlotStatusMaintenance))
	assert.True(t, CanTransition(SlotStatusBooked, SlotStatusAvailable))
	assert.True(t, CanTransition(SlotStatusMaintenance, SlotStatusAvailable))

	assert.False(t, CanTransition(SlotStatusBooked, SlotStatusBlocked))
	assert.False(t, CanTransition(SlotStatusBlocked, SlotStatusBooked))
	assert.False(t, CanTransition(SlotStatusBlocked, SlotStatusMaintenance))
}

func TestTimeSlot_IsAvailable(t *testing.T) {
	s := slot(1, "09:00", "10:00", SlotStatusAvailable)
	assert.True(t, s.IsAvailable())

	s.MaxBookings = 2
	s.CurrentBookings = 2
	assert.False(t, s.IsAvailable())

	s.CurrentBookings = 1
	assert.True(t, s.IsAvailable())

	s.Status = SlotStatusBlocked
	assert.False(t, s.IsAvailable())
}

func TestNewTimeSlot(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 2, 15, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))

	s := NewTimeSlot(7, date, mustInterval(t, "06:00", "07:00"), 250, 0, nil, now)

	assert.Equal(t, SlotStatusAvailable, s.Status)
	assert.Equal(t, DefaultMaxBookings, s.MaxBookings)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.UpdatedAt)
}
