package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormStore_CommitInvalidatesTouchedWallets(t *testing.T) {
	db, mock := newMockDB(t)
	cache := newRecordingCache()
	store := NewGormStore(db, cache)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallets"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "wallets"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.ExecuteInTransaction(ctx, func(tx Store) error {
		if err := tx.Wallets().UpdateBalance(ctx, "wallet-1", 10); err != nil {
			return err
		}
		// nothing is invalidated before commit
		assert.Empty(t, cache.deleted)
		return tx.Wallets().UpdateBalance(ctx, "wallet-2", 20)
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wallet-1", "wallet-2"}, cache.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	cache := newRecordingCache()
	store := NewGormStore(db, cache)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallets"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.ExecuteInTransaction(ctx, func(tx Store) error {
		return tx.Wallets().UpdateBalance(ctx, "missing", 10)
	})
	assert.ErrorIs(t, err, ErrBalanceTargetMissing)
	assert.Empty(t, cache.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_NestedJoinsOuter(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db, nil)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := store.ExecuteInTransaction(ctx, func(tx Store) error {
		return tx.ExecuteInTransaction(ctx, func(inner Store) error {
			assert.Same(t, tx, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("other")))
}
