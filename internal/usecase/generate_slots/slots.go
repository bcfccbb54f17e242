package generate_slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// generateWindows генерирует интервалы слотов на день
// Слоты идут с начала работы корта с фиксированным шагом slotDuration
// Последний слот должен закончиться не позже закрытия
//
// Пример: 06:00-08:00, 60 минут → 06:00-07:00, 07:00-08:00
func generateWindows(hours domain.Interval, slotDuration int) ([]domain.Interval, error) {
	if slotDuration < domain.MinSlotDurationMinutes || slotDuration > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: slot duration %d minutes", ErrNoWindows, slotDuration)
	}
	if !hours.Start.IsBefore(hours.End) {
		return nil, fmt.Errorf("%w: operating hours %s", ErrNoWindows, hours)
	}
	if hours.DurationMinutes() < slotDuration {
		return nil, fmt.Errorf("%w: %d minutes do not fit into %s", ErrNoWindows, slotDuration, hours)
	}

	windows := make([]domain.Interval, 0)
	current := hours.Start

	for current.IsBefore(hours.End) {
		slotEnd, err := current.AddMinutes(slotDuration)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(hours.End) {
			break
		}

		windows = append(windows, domain.Interval{Start: current, End: slotEnd})
		current = slotEnd
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: %d minutes do not fit into %s", ErrNoWindows, slotDuration, hours)
	}

	return windows, nil
}

// datesInRange возвращает все даты периода [start, end]
func datesInRange(start, end time.Time) []time.Time {
	dates := make([]time.Time, 0)
	for d := domain.DateOnly(start); !d.After(domain.DateOnly(end)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// sortSlots упорядочивает слоты по дате и времени начала
func sortSlots(slots []*domain.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}
