package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	slotRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
	"github.com/m04kA/QuickCourt-SlotService/pkg/metrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/ptr"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

var (
	testNow  = time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	testDate = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeSlotRepo struct {
	slots      map[int64]*domain.TimeSlot
	listFilter domain.SlotFilter
	releaseErr error
	cutoff     time.Time
	purged     int64
	err        error
}

func newFakeSlotRepo(slots ...*domain.TimeSlot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[int64]*domain.TimeSlot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (r *fakeSlotRepo) GetByInterval(_ context.Context, courtID int64, _ time.Time, interval domain.Interval) (*domain.TimeSlot, error) {
	for _, s := range r.slots {
		if s.CourtID == courtID && s.Interval().Equal(interval) {
			return s, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (r *fakeSlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	r.listFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*domain.TimeSlot, 0)
	for _, s := range r.slots {
		if len(filter.Statuses) == 0 {
			result = append(result, s)
			continue
		}
		for _, status := range filter.Statuses {
			if s.Status == status {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id int64, bookingRef string, userID *int64, now time.Time) (*domain.TimeSlot, error) {
	if r.releaseErr != nil {
		return nil, r.releaseErr
	}
	s := r.slots[id]
	if !s.HoldsBookingRef(bookingRef) {
		return nil, slotRepo.ErrSlotNotAvailable
	}
	refs := make([]string, 0, len(s.BookingRefs))
	for _, ref := range s.BookingRefs {
		if ref != bookingRef {
			refs = append(refs, ref)
		}
	}
	s.BookingRefs = refs
	s.CurrentBookings--
	s.Status = domain.SlotStatusAvailable
	if len(refs) == 0 {
		s.BookingRef = nil
	} else {
		s.BookingRef = ptr.Ptr(refs[len(refs)-1])
	}
	s.UpdatedBy = userID
	s.UpdatedAt = now
	return s, nil
}

func (r *fakeSlotRepo) Unblock(_ context.Context, id int64, _ *int64, _ time.Time) (*domain.TimeSlot, error) {
	s := r.slots[id]
	s.Status = domain.SlotStatusAvailable
	s.BlockReason = nil
	return s, nil
}

func (r *fakeSlotRepo) SoftDeleteOlderThan(_ context.Context, cutoff time.Time, _ time.Time) (int64, error) {
	r.cutoff = cutoff
	return r.purged, r.err
}

type fakeNotifier struct {
	types []domain.NotificationType
}

func (n *fakeNotifier) Notify(_ context.Context, _ int64, notificationType domain.NotificationType, _ *domain.TimeSlot) error {
	n.types = append(n.types, notificationType)
	return nil
}

func newTestService(repo *fakeSlotRepo, notifier Notifier) *Service {
	svc := NewService(repo, notifier, (*metrics.Metrics)(nil), domain.DefaultRetentionDays, logger.NewNop())
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func newSlot(id int64, start, end string, status domain.SlotStatus) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          id,
		CourtID:     7,
		Date:        testDate,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      status,
		MaxBookings: 1,
	}
}

func TestService_GetByID(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(newSlot(1, "09:00", "10:00", domain.SlotStatusAvailable)), nil)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", resp.Date)
	assert.Equal(t, 1, resp.AvailableSpots)

	_, err = svc.GetByID(context.Background(), 2)
	require.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID_RepositoryError(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.err = errors.New("connection refused")
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_ListCourtSlots(t *testing.T) {
	repo := newFakeSlotRepo(newSlot(1, "09:00", "10:00", domain.SlotStatusBooked))
	svc := newTestService(repo, nil)

	resp, err := svc.ListCourtSlots(context.Background(), &models.ListCourtSlotsRequest{
		CourtID:   7,
		StartDate: testDate,
		Status:    ptr.Ptr("booked"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
	assert.Equal(t, testDate, repo.listFilter.EndDate)
	assert.Equal(t, []domain.SlotStatus{domain.SlotStatusBooked}, repo.listFilter.Statuses)

	_, err = svc.ListCourtSlots(context.Background(), &models.ListCourtSlotsRequest{
		CourtID:   7,
		StartDate: testDate,
		Status:    ptr.Ptr("reserved"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListCourtSlots(context.Background(), &models.ListCourtSlotsRequest{
		CourtID:   7,
		StartDate: testDate,
		EndDate:   testDate.AddDate(0, 0, -1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_FindConflicts(t *testing.T) {
	repo := newFakeSlotRepo(
		newSlot(1, "09:00", "10:00", domain.SlotStatusBooked),
		newSlot(2, "10:00", "11:00", domain.SlotStatusAvailable),
		newSlot(3, "11:00", "12:00", domain.SlotStatusMaintenance),
	)
	svc := newTestService(repo, nil)

	resp, err := svc.FindConflicts(context.Background(), &models.IntervalRequest{
		CourtID: 7, Date: testDate, StartTime: "09:30", EndTime: "10:30",
	})
	require.NoError(t, err)
	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(1), resp.Conflicts[0].ID)

	// Граничащие интервалы не конфликтуют
	resp, err = svc.FindConflicts(context.Background(), &models.IntervalRequest{
		CourtID: 7, Date: testDate, StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflicts)
	assert.Empty(t, resp.Conflicts)

	_, err = svc.FindConflicts(context.Background(), &models.IntervalRequest{
		CourtID: 7, Date: testDate, StartTime: "11:00", EndTime: "10:00",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_IsAvailable(t *testing.T) {
	full := newSlot(2, "10:00", "11:00", domain.SlotStatusAvailable)
	full.MaxBookings = 2
	full.CurrentBookings = 2

	svc := newTestService(newFakeSlotRepo(
		newSlot(1, "09:00", "10:00", domain.SlotStatusAvailable),
		full,
		newSlot(3, "11:00", "12:00", domain.SlotStatusBlocked),
		newSlot(4, "13:00", "14:00", domain.SlotStatusAvailable),
		newSlot(5, "13:30", "14:30", domain.SlotStatusMaintenance),
	), nil)

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "free slot", start: "09:00", end: "10:00", want: true},
		{name: "full capacity", start: "10:00", end: "11:00", want: false},
		{name: "blocked", start: "11:00", end: "12:00", want: false},
		{name: "no exact slot", start: "09:00", end: "09:30", want: false},
		{name: "free slot overlapped by maintenance", start: "13:00", end: "14:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.IsAvailable(context.Background(), &models.IntervalRequest{
				CourtID: 7, Date: testDate, StartTime: types.TimeString(tt.start), EndTime: types.TimeString(tt.end),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Available)
		})
	}
}

func TestService_Release(t *testing.T) {
	booked := newSlot(1, "09:00", "10:00", domain.SlotStatusBooked)
	booked.CurrentBookings = 1
	booked.BookingRef = ptr.Ptr("b-1")
	booked.BookingRefs = []string{"b-1"}

	notifier := &fakeNotifier{}
	svc := newTestService(newFakeSlotRepo(booked, newSlot(2, "10:00", "11:00", domain.SlotStatusAvailable)), notifier)

	_, err := svc.Release(context.Background(), 1, &models.ReleaseSlotRequest{UserID: 42, BookingRef: "other"})
	require.ErrorIs(t, err, ErrSlotConflict)

	resp, err := svc.Release(context.Background(), 1, &models.ReleaseSlotRequest{UserID: 42, BookingRef: "b-1"})
	require.NoError(t, err)
	assert.Equal(t, "available", resp.Status)
	assert.Nil(t, resp.BookingRef)
	assert.Equal(t, []domain.NotificationType{domain.NotificationSlotReleased}, notifier.types)

	// Слот без бронирований освобождать нечего
	_, err = svc.Release(context.Background(), 2, &models.ReleaseSlotRequest{UserID: 42, BookingRef: "b-1"})
	require.ErrorIs(t, err, ErrSlotConflict)

	_, err = svc.Release(context.Background(), 1, &models.ReleaseSlotRequest{UserID: 42})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Release_MultiSeat(t *testing.T) {
	shared := newSlot(1, "18:00", "19:00", domain.SlotStatusAvailable)
	shared.MaxBookings = 4
	shared.CurrentBookings = 2
	shared.BookingRef = ptr.Ptr("m-2")
	shared.BookingRefs = []string{"m-1", "m-2"}

	svc := newTestService(newFakeSlotRepo(shared), nil)

	// Чужая или никогда не записанная ссылка не освобождает место
	_, err := svc.Release(context.Background(), 1, &models.ReleaseSlotRequest{UserID: 42, BookingRef: "m-9"})
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 2, shared.CurrentBookings)

	resp, err := svc.Release(context.Background(), 1, &models.ReleaseSlotRequest{UserID: 42, BookingRef: "m-2"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentBookings)
	require.NotNil(t, resp.BookingRef)
	assert.Equal(t, "m-1", *resp.BookingRef)

	// Повторное освобождение той же ссылки
	_, err = svc.Release(context.Background(), 1, &models.ReleaseSlotRequest{UserID: 42, BookingRef: "m-2"})
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestService_Unblock(t *testing.T) {
	blocked := newSlot(1, "09:00", "10:00", domain.SlotStatusBlocked)
	blocked.BlockReason = ptr.Ptr("tournament")

	svc := newTestService(newFakeSlotRepo(blocked, newSlot(2, "10:00", "11:00", domain.SlotStatusBooked)), nil)

	resp, err := svc.Unblock(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, "available", resp.Status)
	assert.Nil(t, resp.BlockReason)

	_, err = svc.Unblock(context.Background(), 2, 42)
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestService_DeleteOldSlots(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.purged = 4
	svc := newTestService(repo, nil)

	resp, err := svc.DeleteOldSlots(context.Background(), &models.DeleteOldSlotsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Deleted)
	assert.Equal(t, domain.DefaultRetentionDays, resp.RetentionDays)
	assert.Equal(t, time.Date(2025, 2, 8, 0, 0, 0, 0, time.UTC), repo.cutoff)

	resp, err = svc.DeleteOldSlots(context.Background(), &models.DeleteOldSlotsRequest{RetentionDays: ptr.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Cutoff)

	_, err = svc.DeleteOldSlots(context.Background(), &models.DeleteOldSlotsRequest{RetentionDays: ptr.Ptr(-1)})
	require.ErrorIs(t, err, ErrInvalidInput)
}
