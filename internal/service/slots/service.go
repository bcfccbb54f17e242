package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	slotRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	"github.com/m04kA/QuickCourt-SlotService/pkg/ptr"
)

// Service сервис для чтения и администрирования слотов
type Service struct {
	slotRepo      SlotRepository
	notifier      Notifier
	metrics       Metrics
	timeProvider  TimeProvider
	retentionDays int
	logger        Logger
}

// NewService создает новый экземпляр сервиса слотов
// retentionDays используется DeleteOldSlots, если в запросе срок не указан
func NewService(
	slotRepo SlotRepository,
	notifier Notifier,
	metrics Metrics,
	retentionDays int,
	logger Logger,
) *Service {
	if retentionDays < 0 {
		retentionDays = domain.DefaultRetentionDays
	}
	return &Service{
		slotRepo:      slotRepo,
		notifier:      notifier,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	slot, err := s.getSlot(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSlot(slot), nil
}

// ListCourtSlots получает слоты корта за дату или период
// Опционально фильтрует по статусу
func (s *Service) ListCourtSlots(ctx context.Context, req *models.ListCourtSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := toSlotFilter(req)
	if err != nil {
		s.logger.Warn("ListCourtSlots: invalid request for court=%d: %v", req.CourtID, err)
		return nil, err
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListCourtSlots: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: ListCourtSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCourtSlots: fetched %d slots for court=%d, period=%s to %s",
		len(slots), req.CourtID, filter.StartDate.Format(domain.DateFormat), filter.EndDate.Format(domain.DateFormat))
	return models.FromDomainSlotList(slots), nil
}

// FindConflicts возвращает занятые и заблокированные слоты, пересекающиеся с интервалом
// Граничащие интервалы конфликтом не считаются
func (s *Service) FindConflicts(ctx context.Context, req *models.IntervalRequest) (*models.ConflictsResponse, error) {
	interval, err := validateIntervalRequest(req)
	if err != nil {
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	existing, err := s.slotRepo.List(ctx, domain.SlotFilter{
		CourtID:   req.CourtID,
		StartDate: date,
		EndDate:   date,
		Statuses:  domain.UnavailableStatuses,
	})
	if err != nil {
		s.logger.Error("FindConflicts: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: FindConflicts - repository error: %v", ErrInternal, err)
	}

	conflicts := domain.FindConflicts(existing, interval, 0)

	s.logger.Info("FindConflicts: court=%d date=%s interval=%s, found %d conflicts",
		req.CourtID, date.Format(domain.DateFormat), interval, len(conflicts))

	return &models.ConflictsResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    models.FromDomainSlots(conflicts),
	}, nil
}

// IsAvailable проверяет, что на интервал существует доступный слот со свободным местом
// Интервал должен точно совпадать с границами слота, а сам слот не должен пересекаться
// с занятыми и заблокированными слотами корта (как при бронировании)
func (s *Service) IsAvailable(ctx context.Context, req *models.IntervalRequest) (*models.AvailabilityResponse, error) {
	interval, err := validateIntervalRequest(req)
	if err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.GetByInterval(ctx, req.CourtID, req.Date, interval)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return &models.AvailabilityResponse{Available: false}, nil
		}
		s.logger.Error("IsAvailable: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: IsAvailable - repository error: %v", ErrInternal, err)
	}

	resp := &models.AvailabilityResponse{
		Available: slot.IsAvailable(),
		SlotID:    ptr.Ptr(slot.ID),
	}

	// Слот, перекрытый занятым или заблокированным, забронировать нельзя
	if resp.Available {
		existing, err := s.slotRepo.List(ctx, domain.SlotFilter{
			CourtID:   req.CourtID,
			StartDate: slot.Date,
			EndDate:   slot.Date,
			Statuses:  domain.UnavailableStatuses,
		})
		if err != nil {
			s.logger.Error("IsAvailable: repository error for court=%d: %v", req.CourtID, err)
			return nil, fmt.Errorf("%w: IsAvailable - repository error: %v", ErrInternal, err)
		}
		if conflicts := domain.FindConflicts(existing, interval, slot.ID); len(conflicts) > 0 {
			s.logger.Info("IsAvailable: slot id=%d overlaps %d unavailable slots, first id=%d",
				slot.ID, len(conflicts), conflicts[0].ID)
			resp.Available = false
		}
	}

	if resp.Available {
		resp.AvailableSpots = slot.MaxBookings - slot.CurrentBookings
	}

	return resp, nil
}

// Release освобождает место в слоте, занятое бронированием bookingRef
// Используется при отмене бронирования или матча
func (s *Service) Release(ctx context.Context, slotID int64, req *models.ReleaseSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Release: releasing slot id=%d, bookingRef=%s by user=%d", slotID, req.BookingRef, req.UserID)

	if err := validateBookingRef(slotID, req.BookingRef); err != nil {
		return nil, err
	}

	slot, err := s.getSlot(ctx, "Release", slotID)
	if err != nil {
		return nil, err
	}

	if slot.CurrentBookings == 0 {
		s.logger.Warn("Release: slot id=%d has no bookings, status=%s", slotID, slot.Status)
		s.metrics.IncConflict("release")
		return nil, fmt.Errorf("%w: slot has no bookings", ErrSlotConflict)
	}

	// Освободить можно только место, занятое этим бронированием
	if !slot.HoldsBookingRef(req.BookingRef) {
		s.logger.Warn("Release: slot id=%d is not held by bookingRef=%s", slotID, req.BookingRef)
		s.metrics.IncConflict("release")
		return nil, fmt.Errorf("%w: slot is not held by this booking", ErrSlotConflict)
	}

	released, err := s.slotRepo.Release(ctx, slotID, req.BookingRef, actingUser(req.UserID), s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
			s.logger.Warn("Release: slot id=%d is not held by bookingRef=%s", slotID, req.BookingRef)
			s.metrics.IncConflict("release")
			return nil, fmt.Errorf("%w: slot is not held by this booking", ErrSlotConflict)
		}
		s.logger.Error("Release: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.notify(ctx, req.UserID, domain.NotificationSlotReleased, released)

	s.logger.Info("Release: slot id=%d released, %d/%d spots taken", slotID, released.CurrentBookings, released.MaxBookings)
	return models.FromDomainSlot(released), nil
}

// Unblock снимает блокировку или обслуживание со слота
// Доступно только администратору или владельцу площадки
func (s *Service) Unblock(ctx context.Context, slotID int64, userID int64) (*models.SlotResponse, error) {
	s.logger.Info("Unblock: unblocking slot id=%d by user=%d", slotID, userID)

	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	slot, err := s.getSlot(ctx, "Unblock", slotID)
	if err != nil {
		return nil, err
	}

	if !slot.IsBlocked() {
		s.logger.Warn("Unblock: slot id=%d is not blocked, status=%s", slotID, slot.Status)
		return nil, fmt.Errorf("%w: slot is not blocked", ErrSlotConflict)
	}

	unblocked, err := s.slotRepo.Unblock(ctx, slotID, actingUser(userID), s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
			s.logger.Warn("Unblock: slot id=%d changed concurrently", slotID)
			return nil, fmt.Errorf("%w: slot is not blocked", ErrSlotConflict)
		}
		s.logger.Error("Unblock: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: slot id=%d is available again", slotID)
	return models.FromDomainSlot(unblocked), nil
}

// DeleteOldSlots помечает удаленными прошедшие слоты старше срока хранения
// Слоты со ссылкой на бронирование не удаляются
func (s *Service) DeleteOldSlots(ctx context.Context, req *models.DeleteOldSlotsRequest) (*models.DeleteOldSlotsResponse, error) {
	retentionDays := s.retentionDays
	if req != nil && req.RetentionDays != nil {
		retentionDays = *req.RetentionDays
	}

	if retentionDays < 0 || retentionDays > domain.MaxRetentionDays {
		return nil, fmt.Errorf("%w: retentionDays must be between 0 and %d", ErrInvalidInput, domain.MaxRetentionDays)
	}

	now := s.timeProvider.Now()
	cutoff := domain.DateOnly(now).AddDate(0, 0, -retentionDays)

	deleted, err := s.slotRepo.SoftDeleteOlderThan(ctx, cutoff, now)
	if err != nil {
		s.logger.Error("DeleteOldSlots: repository error, cutoff=%s: %v", cutoff.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: DeleteOldSlots - repository error: %v", ErrInternal, err)
	}

	s.metrics.AddSlotsPurged(deleted)
	s.logger.Info("DeleteOldSlots: deleted %d slots older than %s", deleted, cutoff.Format(domain.DateFormat))

	return &models.DeleteOldSlotsResponse{
		Deleted:       deleted,
		RetentionDays: retentionDays,
		Cutoff:        cutoff.Format(domain.DateFormat),
	}, nil
}

// Вспомогательные методы

func (s *Service) getSlot(ctx context.Context, op string, id int64) (*domain.TimeSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return slot, nil
}

// notify отправляет уведомление, ошибка только логируется
func (s *Service) notify(ctx context.Context, userID int64, notificationType domain.NotificationType, slot *domain.TimeSlot) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, notificationType, slot); err != nil {
		s.logger.Warn("notify: %s for slot id=%d failed: %v", notificationType, slot.ID, err)
	}
}

func actingUser(userID int64) *int64 {
	if userID <= 0 {
		return nil
	}
	return ptr.Ptr(userID)
}
