package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	begins   int
	beginErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	b.opts = opts
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	fnErr := errors.New("boom")

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.False(t, beginner.tx.committed)
	assert.True(t, beginner.tx.rolledBack)
}

func TestTransactionManager_NestedCallReusesTransaction(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.begins)
}

func TestTransactionManager_BeginAndCommitErrors(t *testing.T) {
	mgr := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no conn")})
	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)

	beginner := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	mgr = NewTransactionManager(beginner)
	err = mgr.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)
	assert.True(t, beginner.tx.rolledBack)
	assert.True(t, beginner.opts.ReadOnly)
}
