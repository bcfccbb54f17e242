package block_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	slotRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/slot"
	venueClient "github.com/m04kA/QuickCourt-SlotService/internal/integrations/venueservice"
	"github.com/m04kA/QuickCourt-SlotService/pkg/ptr"
	"github.com/m04kA/QuickCourt-SlotService/pkg/txmanager"
)

// UseCase use case для административной блокировки интервала корта
type UseCase struct {
	slotRepo     SlotRepository
	venueClient  VenueServiceClient
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	venueClient VenueServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		venueClient:  venueClient,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит интервал корта в статус blocked или maintenance
//
// Забронированные и уже заблокированные слоты никогда не перекрываются: любой конфликт
// возвращает ErrSlotConflict. Свободные слоты, пересекающиеся с интервалом, блокируются.
// Если интервал не покрыт ни одним слотом, создается новый заблокированный слот.
// Слоты дня корта блокируются (FOR UPDATE) на время сериализуемой транзакции,
// поэтому конкурентное бронирование не проскочит между проверкой и блокировкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockSlots: court=%d, date=%s, interval=%s-%s, status=%s, user=%d",
		req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Status, req.UserID)

	// 1. Валидация входных данных
	interval, status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BlockSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем корт (цена и вместимость для нового слота)
	court, err := uc.venueClient.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) {
			uc.logger.Warn("BlockSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("BlockSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	var userID *int64
	if req.UserID > 0 {
		userID = ptr.Ptr(req.UserID)
	}

	result := &Response{Slots: make([]*domain.TimeSlot, 0)}

	// 3. Выполняем операции с БД в сериализуемой транзакции, слоты дня корта блокируются
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.slotRepo.LockCourtDay(txCtx, req.CourtID, date)
		if err != nil {
			if errors.Is(err, slotRepo.ErrConcurrentUpdate) {
				uc.logger.Warn("BlockSlots: court=%d day changed concurrently: %v", req.CourtID, err)
				return fmt.Errorf("%w: court day changed concurrently", ErrSlotConflict)
			}
			uc.logger.Error("BlockSlots: failed to lock court slots for court=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: failed to lock court slots: %v", ErrInternal, err)
		}

		// 3.1. Любой занятый или заблокированный слот в интервале - конфликт
		if conflicts := domain.FindConflicts(existing, interval, 0); len(conflicts) > 0 {
			uc.logger.Warn("BlockSlots: interval %s on court=%d conflicts with %d slots, first id=%d status=%s",
				interval, req.CourtID, len(conflicts), conflicts[0].ID, conflicts[0].Status)
			return fmt.Errorf("%w: slot id=%d is %s", ErrSlotConflict, conflicts[0].ID, conflicts[0].Status)
		}

		// 3.2. Свободные слоты в интервале, частично забронированные не трогаем
		overlapping := make([]*domain.TimeSlot, 0)
		for _, slot := range existing {
			if slot.IsDeleted() || !interval.Overlaps(slot.Interval()) {
				continue
			}
			if slot.CurrentBookings > 0 || !domain.CanTransition(slot.Status, status) {
				uc.logger.Warn("BlockSlots: slot id=%d has %d bookings", slot.ID, slot.CurrentBookings)
				return fmt.Errorf("%w: slot id=%d has bookings", ErrSlotConflict, slot.ID)
			}
			overlapping = append(overlapping, slot)
		}

		// 3.3. Блокируем существующие слоты
		for _, slot := range overlapping {
			blocked, err := uc.slotRepo.Block(txCtx, slot.ID, status, req.Reason, req.Label, userID, now)
			if err != nil {
				if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
					uc.logger.Warn("BlockSlots: slot id=%d changed concurrently", slot.ID)
					return fmt.Errorf("%w: slot id=%d changed concurrently", ErrSlotConflict, slot.ID)
				}
				uc.logger.Error("BlockSlots: failed to block slot id=%d: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to block slot: %v", ErrInternal, err)
			}
			result.Slots = append(result.Slots, blocked)
		}

		if len(overlapping) > 0 {
			return nil
		}

		// 3.4. Интервал не покрыт слотами - создаем заблокированный слот
		slot := domain.NewTimeSlot(req.CourtID, date, interval, court.PricePerSlot, court.Capacity(), userID, now)
		slot.Status = status
		slot.BlockReason = req.Reason
		slot.BlockLabel = req.Label

		created, err := uc.slotRepo.Create(txCtx, slot)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotExists) {
				uc.logger.Warn("BlockSlots: slot %s on court=%d created concurrently", interval, req.CourtID)
				return fmt.Errorf("%w: slot created concurrently", ErrSlotConflict)
			}
			uc.logger.Error("BlockSlots: failed to create blocked slot: %v", err)
			return fmt.Errorf("%w: failed to create blocked slot: %v", ErrInternal, err)
		}

		result.Slots = append(result.Slots, created)
		result.Created = true
		return nil
	})

	if errors.Is(err, txmanager.ErrSerialization) {
		uc.logger.Warn("BlockSlots: court=%d interval=%s lost to a concurrent change: %v", req.CourtID, interval, err)
		err = fmt.Errorf("%w: %v", ErrSlotConflict, err)
	}

	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncConflict("block")
		}
		return nil, err
	}

	// 4. Уведомления после фиксации
	if uc.notifier != nil {
		for _, slot := range result.Slots {
			if err := uc.notifier.Notify(ctx, req.UserID, domain.NotificationSlotBlocked, slot); err != nil {
				uc.logger.Warn("BlockSlots: notification for slot id=%d failed: %v", slot.ID, err)
			}
		}
	}

	uc.logger.Info("BlockSlots: court=%d interval=%s blocked %d slots, created=%t",
		req.CourtID, interval, len(result.Slots), result.Created)

	return result, nil
}
