// Package txmanager менеджер транзакций для dbmetrics.DB.
//
// Транзакция кладётся в context через dbmetrics.WithTx, поэтому репозитории
// автоматически выполняют запросы внутри неё через dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

// DefaultLockTimeoutMillis тайм-аут ожидания блокировок внутри сериализуемой
// транзакции. По истечении postgres возвращает lock_not_available, и попытка
// завершается retryable-ошибкой вместо зависания.
const DefaultLockTimeoutMillis = 3000

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// Коды ошибок postgres, означающие конфликт конкурентного доступа.
// Обе ошибки безопасно ретраить с тем же запросом.
const (
	pgSerializationFailure = "40001"
	pgLockNotAvailable     = "55P03"
)

// IsSerializationFailure возвращает true, если ошибка вызвана конфликтом
// сериализуемых транзакций или тайм-аутом ожидания блокировки
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgSerializationFailure || pqErr.Code == pgLockNotAvailable
}

// TxBeginner интерфейс для начала транзакций (dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db                TxBeginner
	lockTimeoutMillis int
}

// NewTransactionManager создает менеджер транзакций с тайм-аутом блокировок по умолчанию
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, lockTimeoutMillis: DefaultLockTimeoutMillis}
}

// WithLockTimeout задает тайм-аут ожидания блокировок в миллисекундах
func (m *TransactionManager) WithLockTimeout(millis int) *TransactionManager {
	if millis > 0 {
		m.lockTimeoutMillis = millis
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE-транзакции.
// Используется на пути создания бронирования: проверка конфликтов и вставка
// становятся атомарными, гонка двух конкурентных запросов завершается
// ошибкой сериализации у одного из них (см. IsSerializationFailure).
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	// Ограничиваем ожидание блокировок в рамках этой транзакции
	if !opts.ReadOnly {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", m.lockTimeoutMillis)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: set lock_timeout: %v", ErrBeginTx, err)
		}
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}
