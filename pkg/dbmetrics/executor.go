package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс для выполнения запросов
// Реализуется *sql.DB, *sql.Tx, *DB и *Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// Provider выдает исполнителя запросов
// Позволяет репозиториям не зависеть от момента установления соединения (см. pkg/dbconn)
type Provider interface {
	Executor(ctx context.Context) (DBExecutor, error)
}

// SqlTxWrapper оборачивает *sql.Tx в TxExecutor
type SqlTxWrapper struct {
	*sql.Tx
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext достает транзакцию из контекста
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok && tx != nil
}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе исполнителя от провайдера
func GetExecutor(ctx context.Context, provider Provider) (DBExecutor, error) {
	if tx, ok := TxFromContext(ctx); ok {
		return tx, nil
	}
	return provider.Executor(ctx)
}

// staticProvider провайдер поверх уже открытого соединения
type staticProvider struct {
	db DBExecutor
}

// Static возвращает провайдер, всегда отдающий переданного исполнителя
func Static(db DBExecutor) Provider {
	return staticProvider{db: db}
}

func (p staticProvider) Executor(context.Context) (DBExecutor, error) {
	return p.db, nil
}
