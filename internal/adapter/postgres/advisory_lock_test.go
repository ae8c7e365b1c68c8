package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-optimizer/internal/core/port"
)

func TestAdvisoryLocker_AcquireAndRelease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT pg_try_advisory_lock\(hashtext\(\$1\)\)`).
		WithArgs("optimization:o1").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec(`SELECT pg_advisory_unlock\(hashtext\(\$1\)\)`).
		WithArgs("optimization:o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	release, err := NewAdvisoryLocker(db).TryLock(context.Background(), "optimization:o1")
	require.NoError(t, err)
	require.NoError(t, release(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLocker_Held(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT pg_try_advisory_lock`).
		WithArgs("optimization:o1").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

	release, err := NewAdvisoryLocker(db).TryLock(context.Background(), "optimization:o1")
	assert.ErrorIs(t, err, port.ErrLockNotAcquired)
	assert.Nil(t, release)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLocker_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT pg_try_advisory_lock`).WillReturnError(boom)

	_, err = NewAdvisoryLocker(db).TryLock(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}
