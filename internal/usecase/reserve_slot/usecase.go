package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	slotRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/QuickCourt-SlotService/pkg/metrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/ptr"
	"github.com/m04kA/QuickCourt-SlotService/pkg/txmanager"
)

// UseCase use case для бронирования места в слоте
type UseCase struct {
	slotRepo     SlotRepository
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute бронирует одно место в слоте для bookingRef
//
// Выполняется в сериализуемой транзакции: слоты корта на дату блокируются (FOR UPDATE),
// поэтому проверка пересечений и условное обновление видят одно состояние,
// а конкурентные бронирования того же дня выполняются по очереди.
// Проигравшие и отклоненные Postgres транзакции (SQLSTATE 40001) получают ErrSlotConflict.
// Уведомление отправляется после фиксации транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: slot=%d, bookingRef=%s, user=%d", req.SlotID, req.BookingRef, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var userID *int64
	if req.UserID > 0 {
		userID = ptr.Ptr(req.UserID)
	}

	var result *domain.TimeSlot

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ReserveSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("ReserveSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Блокируем слоты корта на дату и берем их актуальное состояние
		daySlots, err := uc.slotRepo.LockCourtDay(txCtx, slot.CourtID, slot.Date)
		if err != nil {
			if errors.Is(err, slotRepo.ErrConcurrentUpdate) {
				uc.logger.Warn("ReserveSlot: court=%d day changed concurrently: %v", slot.CourtID, err)
				return fmt.Errorf("%w: court day changed concurrently", ErrSlotConflict)
			}
			uc.logger.Error("ReserveSlot: failed to lock court slots for court=%d: %v", slot.CourtID, err)
			return fmt.Errorf("%w: failed to lock court slots: %v", ErrInternal, err)
		}
		for _, locked := range daySlots {
			if locked.ID == slot.ID {
				slot = locked
				break
			}
		}

		if !slot.IsAvailable() {
			uc.logger.Warn("ReserveSlot: slot id=%d not available, status=%s, %d/%d spots taken",
				req.SlotID, slot.Status, slot.CurrentBookings, slot.MaxBookings)
			return fmt.Errorf("%w: status=%s", ErrSlotConflict, slot.Status)
		}

		if slot.HoldsBookingRef(req.BookingRef) {
			uc.logger.Warn("ReserveSlot: bookingRef=%s already holds a spot in slot id=%d", req.BookingRef, slot.ID)
			return fmt.Errorf("%w: booking already holds a spot", ErrSlotConflict)
		}

		// 2.3. Проверяем пересечения с занятыми и заблокированными слотами корта
		if conflicts := domain.FindConflicts(daySlots, slot.Interval(), slot.ID); len(conflicts) > 0 {
			uc.logger.Warn("ReserveSlot: slot id=%d %s overlaps %d unavailable slots, first id=%d",
				slot.ID, slot.Interval(), len(conflicts), conflicts[0].ID)
			return fmt.Errorf("%w: overlaps slot id=%d", ErrSlotConflict, conflicts[0].ID)
		}

		// 2.4. Атомарно занимаем место
		reserved, err := uc.slotRepo.Reserve(txCtx, slot.ID, req.BookingRef, userID, now)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) || errors.Is(err, slotRepo.ErrConcurrentUpdate) {
				uc.logger.Warn("ReserveSlot: slot id=%d was taken concurrently", slot.ID)
				return fmt.Errorf("%w: taken concurrently", ErrSlotConflict)
			}
			uc.logger.Error("ReserveSlot: failed to reserve slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		result = reserved
		return nil
	})

	if errors.Is(err, txmanager.ErrSerialization) {
		uc.logger.Warn("ReserveSlot: slot id=%d lost a concurrent reservation: %v", req.SlotID, err)
		err = fmt.Errorf("%w: %v", ErrSlotConflict, err)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			uc.metrics.IncReservation(metrics.ReservationConflict)
			uc.metrics.IncConflict("reserve")
		case errors.Is(err, ErrSlotNotFound):
			// Не учитывается в метриках бронирования
		default:
			uc.metrics.IncReservation(metrics.ReservationFailed)
		}
		return nil, err
	}

	uc.metrics.IncReservation(metrics.ReservationSucceeded)

	// 3. Уведомление после фиксации, ошибка не отменяет бронирование
	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, req.UserID, domain.NotificationSlotBooked, result); err != nil {
			uc.logger.Warn("ReserveSlot: notification for slot id=%d failed: %v", result.ID, err)
		}
	}

	uc.logger.Info("ReserveSlot: slot id=%d reserved, status=%s, %d/%d spots taken",
		result.ID, result.Status, result.CurrentBookings, result.MaxBookings)

	return &Response{Slot: result}, nil
}
