package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Transactor runs fn as one atomic unit of work. Repositories called with the
// ctx handed to fn take part in the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

const retryBaseDelay = 10 * time.Millisecond

type TxManager struct {
	db         *sqlx.DB
	maxRetries int
	logger     logger.ZapLogger
}

func NewTxManager(db *sqlx.DB, maxRetries int, log logger.ZapLogger) *TxManager {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &TxManager{
		db:         db,
		maxRetries: maxRetries,
		logger:     log,
	}
}

// WithinTx runs fn in a SERIALIZABLE transaction. It commits when fn returns
// nil and rolls back otherwise. Serialization failures and deadlocks rerun the
// whole of fn up to maxRetries times; when they keep failing the caller gets an
// apperr StorageConflict. A nested call joins the outer transaction.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	for attempt := 0; ; attempt++ {
		err := m.run(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt >= m.maxRetries {
			m.logger.Warn("transaction retries exhausted", zap.Int("attempts", attempt+1), zap.Error(err))
			return apperr.StorageConflict(err)
		}

		m.logger.Debug("retrying serializable transaction", zap.Int("attempt", attempt+1), zap.Error(err))
		delay := retryBaseDelay<<attempt + time.Duration(rand.Int63n(int64(retryBaseDelay)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Executor returns the transaction bound to ctx, or db when there is none.
func Executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
