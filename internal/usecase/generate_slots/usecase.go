package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	venueClient "github.com/m04kA/QuickCourt-SlotService/internal/integrations/venueservice"
	"github.com/m04kA/QuickCourt-SlotService/pkg/ptr"
)

// UseCase use case для генерации слотов корта
type UseCase struct {
	slotRepo     SlotRepository
	venueClient  VenueServiceClient
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		venueClient:  venueClient,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute генерирует слоты корта на каждую дату периода
//
// Существующие слоты (court, date, start) не меняются, повторный вызов ничего не создает.
// При ClearExisting свободные слоты без бронирований сначала удаляются,
// занятые и заблокированные слоты сохраняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: court=%d, period=%s to %s, clearExisting=%t, user=%d",
		req.CourtID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.ClearExisting, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию корта
	court, err := uc.venueClient.GetActiveCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) || errors.Is(err, venueClient.ErrCourtInactive) {
			uc.logger.Warn("GenerateSlots: court id=%d not available: %v", req.CourtID, err)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 3. Рассчитываем интервалы слотов на день
	windows, err := generateWindows(court.OperatingHours(), court.SlotDurationMinutes)
	if err != nil {
		uc.logger.Warn("GenerateSlots: court id=%d: %v", req.CourtID, err)
		return nil, err
	}

	price := ptr.Deref(req.Price, court.PricePerSlot)
	maxBookings := ptr.Deref(req.MaxBookings, court.Capacity())

	now := uc.timeProvider.Now()
	var createdBy *int64
	if req.UserID > 0 {
		createdBy = ptr.Ptr(req.UserID)
	}

	dates := datesInRange(req.StartDate, req.EndDate)
	result := &Response{
		CourtID: req.CourtID,
		Slots:   make([]*domain.TimeSlot, 0, len(dates)*len(windows)),
	}

	// 4. Очистка и вставка выполняются в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.ClearExisting {
			cleared, err := uc.slotRepo.SoftDeleteAvailableInRange(txCtx, req.CourtID, dates[0], dates[len(dates)-1], createdBy, now)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to clear slots for court=%d: %v", req.CourtID, err)
				return fmt.Errorf("%w: failed to clear slots: %v", ErrInternal, err)
			}
			result.Cleared = cleared
		}

		for _, date := range dates {
			batch := make([]*domain.TimeSlot, 0, len(windows))
			for _, window := range windows {
				batch = append(batch, domain.NewTimeSlot(req.CourtID, date, window, price, maxBookings, createdBy, now))
			}

			created, err := uc.slotRepo.CreateBatch(txCtx, batch)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to create slots for court=%d date=%s: %v",
					req.CourtID, date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
			}

			result.Slots = append(result.Slots, created...)
			result.Skipped += len(batch) - len(created)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sortSlots(result.Slots)
	result.Created = len(result.Slots)
	uc.metrics.AddSlotsGenerated(result.Created)

	uc.logger.Info("GenerateSlots: court=%d created=%d skipped=%d cleared=%d",
		req.CourtID, result.Created, result.Skipped, result.Cleared)

	return result, nil
}
