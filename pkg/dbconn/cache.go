package dbconn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"
)

const connectKey = "connect"

var (
	// ErrConnect возвращается, когда не удалось установить соединение с БД
	ErrConnect = errors.New("dbconn: failed to connect")

	// ErrClosed возвращается при обращении к закрытому кешу
	ErrClosed = errors.New("dbconn: cache is closed")
)

// OpenFunc открывает соединение с БД
type OpenFunc func(ctx context.Context) (*sql.DB, error)

// WrapFunc оборачивает установленное соединение (например, в dbmetrics.DB)
type WrapFunc func(db *sql.DB) dbmetrics.DBExecutor

// ConnectObserver получает результат каждой попытки подключения
type ConnectObserver interface {
	ObserveDBConnect(err error)
}

// Cache лениво устанавливает единственное соединение с БД на процесс
//
// Первое обращение открывает соединение; параллельные первые обращения
// ждут одну и ту же попытку. Неудачная попытка не запоминается:
// следующее обращение подключается заново.
type Cache struct {
	open     OpenFunc
	wrap     WrapFunc
	observer ConnectObserver

	group singleflight.Group

	mu       sync.RWMutex
	db       *sql.DB
	executor dbmetrics.DBExecutor
	closed   bool
}

// Option настройка кеша
type Option func(*Cache)

// WithWrap задает обертку над установленным соединением
func WithWrap(wrap WrapFunc) Option {
	return func(c *Cache) {
		c.wrap = wrap
	}
}

// WithObserver задает получателя результатов подключения
func WithObserver(observer ConnectObserver) Option {
	return func(c *Cache) {
		c.observer = observer
	}
}

// New создает кеш соединения
func New(open OpenFunc, opts ...Option) *Cache {
	c := &Cache{open: open}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Executor возвращает исполнителя запросов, подключаясь при первом вызове
// Реализует dbmetrics.Provider
func (c *Cache) Executor(ctx context.Context) (dbmetrics.DBExecutor, error) {
	if executor, _, ok, err := c.cached(); ok || err != nil {
		return executor, err
	}

	ch := c.group.DoChan(connectKey, func() (interface{}, error) {
		return c.connect(ctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(dbmetrics.DBExecutor), nil
	}
}

// DB возвращает исходное соединение, подключаясь при необходимости
// Нужен для миграций и health-check
func (c *Cache) DB(ctx context.Context) (*sql.DB, error) {
	if _, err := c.Executor(ctx); err != nil {
		return nil, err
	}
	_, db, _, err := c.cached()
	return db, err
}

// Ping проверяет соединение с БД
func (c *Cache) Ping(ctx context.Context) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close закрывает соединение, если оно было установлено
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	c.executor = nil
	return err
}

func (c *Cache) cached() (dbmetrics.DBExecutor, *sql.DB, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, nil, false, ErrClosed
	}
	return c.executor, c.db, c.executor != nil, nil
}

func (c *Cache) connect(ctx context.Context) (dbmetrics.DBExecutor, error) {
	// Соединение могло появиться, пока вызывающий ждал своей очереди в singleflight
	if executor, _, ok, err := c.cached(); ok || err != nil {
		return executor, err
	}

	// Отмена контекста одного запроса не должна прерывать подключение для остальных ожидающих
	db, err := c.open(context.WithoutCancel(ctx))
	if c.observer != nil {
		c.observer.ObserveDBConnect(err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	var executor dbmetrics.DBExecutor = db
	if c.wrap != nil {
		executor = c.wrap(db)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		_ = db.Close()
		return nil, ErrClosed
	}

	c.db = db
	c.executor = executor
	return executor, nil
}

// PoolOptions настройки пула соединений
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// PostgresOpener возвращает OpenFunc для PostgreSQL (драйвер lib/pq должен быть зарегистрирован)
// Соединение считается установленным только после успешного Ping
func PostgresOpener(dsn string, pool PoolOptions) OpenFunc {
	return func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}

		db.SetMaxOpenConns(pool.MaxOpenConns)
		db.SetMaxIdleConns(pool.MaxIdleConns)
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)

		pingCtx := ctx
		if pool.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, pool.ConnectTimeout)
			defer cancel()
		}

		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, err
		}

		return db, nil
	}
}
