package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
)

type StorageContextKey string

const (
	TRANSACTION StorageContextKey = "transaction"
)

// Tx is a unit of work of a storage backend. Writes become visible to other
// transactions only after Commit. Rollback after Commit is a no-op.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type CreateTxOption func(*sql.TxOptions)

type TransactionInterface interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
}

func TxOptionWithWrite(write bool) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.ReadOnly = !write
	}
}

func TxOptionWithIsolationLevel(level sql.IsolationLevel) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.Isolation = level
	}
}

// BLRecordStorage keeps one custody ledger entry per transport instruction.
// Per instruction mutual exclusion is the caller's job (see package keylock).
type BLRecordStorage interface {
	TransactionInterface
	// GetBLRecord returns model.ErrBLNotIssued when no record exists.
	GetBLRecord(ctx context.Context, tx Tx, instructionID string) (model.BLRecord, error)
	// StoreBLRecord replaces the whole record of rec.InstructionID.
	StoreBLRecord(ctx context.Context, tx Tx, ts int64, rec model.BLRecord) error
	DeleteBLRecord(ctx context.Context, tx Tx, instructionID string) error
}

// BLRecordExists reports whether a record is stored for instructionID.
func BLRecordExists(ctx context.Context, s BLRecordStorage, tx Tx, instructionID string) (bool, error) {
	_, err := s.GetBLRecord(ctx, tx, instructionID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, model.ErrBLNotIssued) {
		return false, nil
	}
	return false, err
}
