package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/psqlbuilder"
)

const tableName = "time_slots"

// onConflictSkip пропускает слоты, которые уже существуют для (court_id, slot_date, start_time)
// Условие совпадает с частичным уникальным индексом uq_time_slots_court_date_start
const onConflictSkip = "ON CONFLICT (court_id, slot_date, start_time) WHERE deleted_at IS NULL DO NOTHING"

var slotColumns = []string{
	"id",
	"court_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"price",
	"booking_ref",
	"block_reason",
	"block_label",
	"max_bookings",
	"current_bookings",
	"created_by",
	"updated_by",
	"deleted_at",
	"created_at",
	"updated_at",
	"booking_refs",
}

var insertColumns = []string{
	"court_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"price",
	"booking_ref",
	"block_reason",
	"block_label",
	"max_bookings",
	"current_bookings",
	"created_by",
	"updated_by",
	"created_at",
	"updated_at",
}

var returning = "RETURNING " + strings.Join(slotColumns, ", ")

// Repository репозиторий для работы со слотами
type Repository struct {
	db Provider
}

// NewRepository создает новый экземпляр репозитория слотов
// Соединение запрашивается у провайдера при каждом запросе (см. pkg/dbconn)
func NewRepository(db Provider) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает пачку слотов одним запросом
// Слоты, которые уже существуют (court_id, slot_date, start_time), пропускаются и не возвращаются
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	if len(slots) == 0 {
		return []*domain.TimeSlot{}, nil
	}

	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	builder := psqlbuilder.Insert(tableName).Columns(insertColumns...)
	for _, s := range slots {
		builder = builder.Values(insertValues(s)...)
	}

	query, args, err := builder.Suffix(onConflictSkip + " " + returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Create создает один слот
// Возвращает ErrSlotExists, если слот на это время уже есть
func (r *Repository) Create(ctx context.Context, s *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(insertColumns...).
		Values(insertValues(s)...).
		Suffix(onConflictSkip + " " + returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает слот по ID (удаленные слоты не возвращаются)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByInterval получает слот корта, точно совпадающий с интервалом на дату
func (r *Repository) GetByInterval(ctx context.Context, courtID int64, date time.Time, interval domain.Interval) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"court_id":   courtID,
			"slot_date":  domain.DateOnly(date),
			"start_time": interval.Start.String(),
			"end_time":   interval.End.String(),
			"deleted_at": nil,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInterval - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInterval - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты корта за период с фильтрацией по статусам
// Результат упорядочен по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"court_id": filter.CourtID, "deleted_at": nil}).
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(filter.StartDate)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(filter.EndDate)})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	query, args, err := selectBuilder.OrderBy("slot_date ASC", "start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// LockCourtDay блокирует все слоты корта на дату (SELECT ... FOR UPDATE) и возвращает их
// Должен вызываться внутри транзакции: конкурентные бронирования и блокировки этого дня
// ждут фиксации и видят уже обновленные строки
func (r *Repository) LockCourtDay(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"court_id":   courtID,
			"slot_date":  domain.DateOnly(date),
			"deleted_at": nil,
		}).
		OrderBy("start_time ASC").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockCourtDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if isSerializationFailure(err) {
		return nil, fmt.Errorf("%w: LockCourtDay: %v", ErrConcurrentUpdate, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: LockCourtDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// SoftDeleteAvailableInRange помечает удаленными свободные слоты корта за период
// Занятые, заблокированные и частично забронированные слоты не затрагиваются
func (r *Repository) SoftDeleteAvailableInRange(ctx context.Context, courtID int64, startDate, endDate time.Time, userID *int64, now time.Time) (int64, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return 0, err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("deleted_at", now).
		Set("updated_by", userID).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"court_id":         courtID,
			"status":           string(domain.SlotStatusAvailable),
			"current_bookings": 0,
			"booking_ref":      nil,
			"deleted_at":       nil,
		}).
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(startDate)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(endDate)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteAvailableInRange - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "SoftDeleteAvailableInRange", query, args)
}

// Reserve атомарно занимает одно место в слоте
//
// Условное обновление выполняется только если слот доступен, есть свободная вместимость
// и bookingRef еще не занимает место в этом слоте.
// Статус становится booked, когда занято последнее место.
// Если ни одна строка не обновлена, возвращает ErrSlotNotAvailable.
func (r *Repository) Reserve(ctx context.Context, id int64, bookingRef string, userID *int64, now time.Time) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("status", squirrel.Expr("CASE WHEN current_bookings + 1 >= max_bookings THEN ? ELSE status END", string(domain.SlotStatusBooked))).
		Set("booking_ref", bookingRef).
		Set("booking_refs", squirrel.Expr("array_append(booking_refs, ?)", bookingRef)).
		Set("updated_by", userID).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"id":         id,
			"status":     string(domain.SlotStatusAvailable),
			"deleted_at": nil,
		}).
		Where("current_bookings < max_bookings").
		Where("NOT (? = ANY(booking_refs))", bookingRef).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if isSerializationFailure(err) {
		return nil, fmt.Errorf("%w: Reserve: %v", ErrConcurrentUpdate, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Release атомарно освобождает одно место в слоте
//
// Освобождается только место, занятое bookingRef (booking_refs хранит ссылку на каждое место).
// booking_ref переходит к предыдущему бронированию и очищается вместе с последним местом.
func (r *Repository) Release(ctx context.Context, id int64, bookingRef string, userID *int64, now time.Time) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Set("status", string(domain.SlotStatusAvailable)).
		Set("booking_ref", squirrel.Expr(
			"CASE WHEN current_bookings - 1 = 0 THEN NULL "+
				"WHEN booking_ref = ? THEN booking_refs[cardinality(booking_refs) - 1] "+
				"ELSE booking_ref END", bookingRef)).
		Set("booking_refs", squirrel.Expr("array_remove(booking_refs, ?)", bookingRef)).
		Set("updated_by", userID).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"id":         id,
			"status":     []string{string(domain.SlotStatusAvailable), string(domain.SlotStatusBooked)},
			"deleted_at": nil,
		}).
		Where("current_bookings > 0").
		Where("? = ANY(booking_refs)", bookingRef).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Block переводит свободный слот без бронирований в статус blocked или maintenance
func (r *Repository) Block(ctx context.Context, id int64, status domain.SlotStatus, reason, label *string, userID *int64, now time.Time) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Set("block_reason", reason).
		Set("block_label", label).
		Set("updated_by", userID).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"id":               id,
			"status":           string(domain.SlotStatusAvailable),
			"current_bookings": 0,
			"deleted_at":       nil,
		}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Block - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Block - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Unblock возвращает заблокированный слот в статус available
func (r *Repository) Unblock(ctx context.Context, id int64, userID *int64, now time.Time) (*domain.TimeSlot, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(domain.SlotStatusAvailable)).
		Set("block_reason", nil).
		Set("block_label", nil).
		Set("updated_by", userID).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"id":         id,
			"status":     []string{string(domain.SlotStatusBlocked), string(domain.SlotStatusMaintenance)},
			"deleted_at": nil,
		}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Unblock - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Unblock - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// SoftDeleteOlderThan помечает удаленными прошедшие слоты без ссылки на бронирование
// Возвращает количество затронутых слотов
func (r *Repository) SoftDeleteOlderThan(ctx context.Context, cutoff time.Time, now time.Time) (int64, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return 0, err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Lt{"slot_date": domain.DateOnly(cutoff)}).
		Where(squirrel.Eq{
			"booking_ref":      nil,
			"current_bookings": 0,
			"deleted_at":       nil,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteOlderThan - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffected(ctx, executor, "SoftDeleteOlderThan", query, args)
}

// Helper methods

func (r *Repository) executor(ctx context.Context) (DBExecutor, error) {
	executor, err := dbmetrics.GetExecutor(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return executor, nil
}

func (r *Repository) execAffected(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return affected, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.CourtID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&status,
		&s.Price,
		&s.BookingRef,
		&s.BlockReason,
		&s.BlockLabel,
		&s.MaxBookings,
		&s.CurrentBookings,
		&s.CreatedBy,
		&s.UpdatedBy,
		&s.DeletedAt,
		&createdAt,
		&updatedAt,
		pq.Array(&s.BookingRefs),
	)
	if err != nil {
		return nil, err
	}

	s.Status = domain.SlotStatus(status)
	s.Date = domain.DateOnly(s.Date)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func insertValues(s *domain.TimeSlot) []interface{} {
	return []interface{}{
		s.CourtID,
		domain.DateOnly(s.Date),
		s.StartTime.String(),
		s.EndTime.String(),
		string(s.Status),
		s.Price,
		s.BookingRef,
		s.BlockReason,
		s.BlockLabel,
		s.MaxBookings,
		s.CurrentBookings,
		s.CreatedBy,
		s.UpdatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	}
}

// isSerializationFailure проверяет SQLSTATE 40001 (serialization_failure) и 40P01 (deadlock_detected)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
