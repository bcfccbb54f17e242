package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

// ErrInvalidInterval возвращается, когда начало интервала не раньше конца
var ErrInvalidInterval = errors.New("domain: start time must be before end time")

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewInterval создает интервал с проверкой формата и порядка границ
func NewInterval(start, end types.TimeString) (Interval, error) {
	if err := start.Validate(); err != nil {
		return Interval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	if err := end.Validate(); err != nil {
		return Interval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	if !start.IsBefore(end) {
		return Interval{}, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
//
// Примеры:
// - 09:00-10:00 и 09:30-10:30 → ЕСТЬ пересечение
// - 09:00-10:00 и 10:00-11:00 → НЕТ пересечения (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Equal проверяет совпадение границ
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// DurationMinutes возвращает длительность интервала в минутах
func (i Interval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// String возвращает интервал в виде "HH:MM-HH:MM"
func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// FindConflicts возвращает слоты, которые пересекаются с proposed и не являются доступными
// Единственное правило конфликта: используется и при бронировании, и при блокировке
// excludeID позволяет не считать конфликтом сам бронируемый слот (0 - не исключать)
func FindConflicts(slots []*TimeSlot, proposed Interval, excludeID int64) []*TimeSlot {
	conflicts := make([]*TimeSlot, 0)

	for _, slot := range slots {
		if slot == nil || slot.IsDeleted() {
			continue
		}
		if excludeID != 0 && slot.ID == excludeID {
			continue
		}
		if slot.Status == SlotStatusAvailable {
			continue
		}
		if proposed.Overlaps(slot.Interval()) {
			conflicts = append(conflicts, slot)
		}
	}

	sort.SliceStable(conflicts, func(a, b int) bool {
		return conflicts[a].StartTime.IsBefore(conflicts[b].StartTime)
	})

	return conflicts
}
