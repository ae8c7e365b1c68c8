package postgres

import (
	"context"
	"database/sql"

	"campaign-optimizer/internal/core/port"
)

// AdvisoryLocker implements port.Locker with session-level advisory locks.
// Each held lock pins one connection of db until it is released.
type AdvisoryLocker struct {
	db *sql.DB
}

// NewAdvisoryLocker takes a database/sql handle, typically
// stdlib.OpenDBFromPool over the application pool.
func NewAdvisoryLocker(db *sql.DB) *AdvisoryLocker {
	return &AdvisoryLocker{db: db}
}

func (l *AdvisoryLocker) TryLock(ctx context.Context, key string) (func(context.Context) error, error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	var ok bool
	if err = conn.QueryRowContext(ctx, `SELECT pg_try_advisory_lock(hashtext($1))`, key).Scan(&ok); err != nil {
		conn.Close()
		return nil, err
	}
	if !ok {
		conn.Close()
		return nil, port.ErrLockNotAcquired
	}
	return func(ctx context.Context) error {
		defer conn.Close()
		_, err := conn.ExecContext(ctx, `SELECT pg_advisory_unlock(hashtext($1))`, key)
		return err
	}, nil
}
