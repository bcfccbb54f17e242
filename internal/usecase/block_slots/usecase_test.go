package block_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	slotRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/slot"
	venueClient "github.com/m04kA/QuickCourt-SlotService/internal/integrations/venueservice"
	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
	"github.com/m04kA/QuickCourt-SlotService/pkg/metrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/ptr"
	"github.com/m04kA/QuickCourt-SlotService/pkg/txmanager"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

var (
	testNow  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTx struct {
	serializable int
	err          error
}

func (tx *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.serializable++
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.err
}

type fakeSlotRepo struct {
	slots   []*domain.TimeSlot
	created []*domain.TimeSlot
	blocked []int64
	lockErr error
	locked  int
}

func (r *fakeSlotRepo) LockCourtDay(context.Context, int64, time.Time) ([]*domain.TimeSlot, error) {
	if r.lockErr != nil {
		return nil, r.lockErr
	}
	r.locked++
	return r.slots, nil
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	for _, s := range r.slots {
		if s.StartTime == slot.StartTime {
			return nil, slotRepo.ErrSlotExists
		}
	}
	slot.ID = 100
	r.created = append(r.created, slot)
	return slot, nil
}

func (r *fakeSlotRepo) Block(_ context.Context, id int64, status domain.SlotStatus, reason, label *string, userID *int64, now time.Time) (*domain.TimeSlot, error) {
	for _, s := range r.slots {
		if s.ID != id {
			continue
		}
		if s.Status != domain.SlotStatusAvailable || s.CurrentBookings > 0 {
			return nil, slotRepo.ErrSlotNotAvailable
		}
		s.Status = status
		s.BlockReason = reason
		s.BlockLabel = label
		s.UpdatedBy = userID
		s.UpdatedAt = now
		r.blocked = append(r.blocked, id)
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotAvailable
}

type fakeVenue struct {
	err error
}

func (v *fakeVenue) GetCourt(_ context.Context, courtID int64) (*domain.Court, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &domain.Court{ID: courtID, PricePerSlot: 250, MaxBookings: 1, OpenTime: "06:00", CloseTime: "22:00", SlotDurationMinutes: 60}, nil
}

type fakeNotifier struct {
	types []domain.NotificationType
}

func (n *fakeNotifier) Notify(_ context.Context, _ int64, notificationType domain.NotificationType, _ *domain.TimeSlot) error {
	n.types = append(n.types, notificationType)
	return nil
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

func newTestUseCase(repo *fakeSlotRepo, venue *fakeVenue, notifier Notifier) *UseCase {
	return newTestUseCaseWithTx(repo, venue, notifier, &fakeTx{})
}

func newTestUseCaseWithTx(repo *fakeSlotRepo, venue *fakeVenue, notifier Notifier, tx TransactionManager) *UseCase {
	uc := NewUseCase(repo, venue, notifier, tx, (*metrics.Metrics)(nil), logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func blockRequest(start, end, status string) *Request {
	return &Request{
		UserID:    1,
		CourtID:   7,
		Date:      testDate,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
		Reason:    ptr.Ptr("tournament"),
	}
}

func TestUseCase_Execute_BlocksAvailableSlots(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.TimeSlot{
		newSlot(1, "09:00", "10:00", domain.SlotStatusAvailable),
		newSlot(2, "10:00", "11:00", domain.SlotStatusAvailable),
		newSlot(3, "11:00", "12:00", domain.SlotStatusBooked),
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, &fakeVenue{}, notifier)

	// 11:00-12:00 граничит с интервалом и не мешает
	resp, err := uc.Execute(context.Background(), blockRequest("09:00", "11:00", "maintenance"))
	require.NoError(t, err)
	assert.False(t, resp.Created)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, []int64{1, 2}, repo.blocked)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotStatusMaintenance, s.Status)
		require.NotNil(t, s.BlockReason)
		assert.Equal(t, "tournament", *s.BlockReason)
	}
	assert.Len(t, notifier.types, 2)
	assert.Equal(t, 1, repo.locked)
}

func TestUseCase_Execute_CreatesBlockedSlot(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &fakeVenue{}, nil)

	resp, err := uc.Execute(context.Background(), blockRequest("14:00", "16:00", "blocked"))
	require.NoError(t, err)
	assert.True(t, resp.Created)
	require.Len(t, resp.Slots, 1)

	s := resp.Slots[0]
	assert.Equal(t, domain.SlotStatusBlocked, s.Status)
	assert.Equal(t, types.TimeString("14:00"), s.StartTime)
	assert.Equal(t, types.TimeString("16:00"), s.EndTime)
	assert.Equal(t, 250.0, s.Price)
	assert.Equal(t, testNow, s.CreatedAt)
}

func TestUseCase_Execute_Conflicts(t *testing.T) {
	partial := newSlot(4, "13:00", "14:00", domain.SlotStatusAvailable)
	partial.MaxBookings = 4
	partial.CurrentBookings = 1

	repo := &fakeSlotRepo{slots: []*domain.TimeSlot{
		newSlot(1, "09:00", "10:00", domain.SlotStatusBooked),
		newSlot(2, "10:00", "11:00", domain.SlotStatusMaintenance),
		partial,
	}}
	uc := newTestUseCase(repo, &fakeVenue{}, nil)

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "booked slot", start: "09:30", end: "10:00"},
		{name: "already in maintenance", start: "10:15", end: "10:45"},
		{name: "partially booked multi-seat slot", start: "13:00", end: "14:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), blockRequest(tt.start, tt.end, "blocked"))
			require.ErrorIs(t, err, ErrSlotConflict)
		})
	}

	assert.Empty(t, repo.blocked)
	assert.Empty(t, repo.created)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeVenue{}, nil)

	_, err := uc.Execute(context.Background(), blockRequest("09:00", "10:00", "booked"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), blockRequest("10:00", "09:00", "blocked"))
	require.ErrorIs(t, err, ErrInvalidInput)

	req := blockRequest("09:00", "10:00", "blocked")
	req.CourtID = 0
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeVenue{err: venueClient.ErrCourtNotFound}, nil)

	_, err := uc.Execute(context.Background(), blockRequest("09:00", "10:00", "blocked"))
	require.ErrorIs(t, err, ErrCourtNotFound)
}

func TestUseCase_Execute_ConcurrentChange(t *testing.T) {
	t.Run("lock rejected", func(t *testing.T) {
		repo := &fakeSlotRepo{lockErr: fmt.Errorf("%w: could not serialize access", slotRepo.ErrConcurrentUpdate)}
		uc := newTestUseCase(repo, &fakeVenue{}, nil)

		_, err := uc.Execute(context.Background(), blockRequest("09:00", "10:00", "blocked"))
		require.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("commit rejected", func(t *testing.T) {
		notifier := &fakeNotifier{}
		tx := &fakeTx{err: txmanager.ErrSerialization}
		uc := newTestUseCaseWithTx(&fakeSlotRepo{}, &fakeVenue{}, notifier, tx)

		_, err := uc.Execute(context.Background(), blockRequest("09:00", "10:00", "blocked"))
		require.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, 1, tx.serializable)
		assert.Empty(t, notifier.types)
	})
}
