package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, когда не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization возвращается, когда Postgres отклонил фиксацию из-за конкурентной транзакции
	// Операцию можно повторить
	ErrSerialization = errors.New("txmanager: could not serialize transaction")

	// ErrUnsupportedExecutor возвращается, когда исполнитель не умеет начинать транзакции
	ErrUnsupportedExecutor = errors.New("txmanager: executor does not support transactions")
)

// txBeginner реализуется *dbmetrics.DB
type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции
// Транзакция передается через контекст и подхватывается репозиториями через dbmetrics.GetExecutor
type TransactionManager struct {
	provider dbmetrics.Provider
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(provider dbmetrics.Provider) *TransactionManager {
	return &TransactionManager{provider: provider}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, nil, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов выполняется в уже открытой транзакции
	if _, ok := dbmetrics.TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.begin(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

func (m *TransactionManager) begin(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	executor, err := m.provider.Executor(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	switch db := executor.(type) {
	case txBeginner:
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBeginTx, err)
		}
		return tx, nil
	case *sql.DB:
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBeginTx, err)
		}
		return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
	default:
		return nil, ErrUnsupportedExecutor
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
