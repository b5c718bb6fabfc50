// Package filestore keeps every B/L record in its own JSON file, {dir}/{instruction_id}.json.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/storage"
)

type _FileStorage struct {
	dir string
	mu  sync.RWMutex
}

// _FileTx stages writes in memory. A nil entry stages a delete.
type _FileTx struct {
	s      *_FileStorage
	staged map[string]*model.BLRecord
	order  []string
	closed bool
}

func NewFileStorage(dir string) (*_FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create B/L directory %q: %w", dir, err)
	}
	return &_FileStorage{dir: dir}, nil
}

func (s *_FileStorage) CreateTx(ctx context.Context, options ...storage.CreateTxOption) (storage.Tx, context.Context, error) {
	tx := &_FileTx{s: s, staged: make(map[string]*model.BLRecord)}
	return tx, context.WithValue(ctx, storage.TRANSACTION, tx), nil
}

func (s *_FileStorage) GetBLRecord(ctx context.Context, tx storage.Tx, instructionID string) (model.BLRecord, error) {
	t, err := s.fileTx(tx)
	if err != nil {
		return model.BLRecord{}, err
	}
	if rec, ok := t.staged[instructionID]; ok {
		if rec == nil {
			return model.BLRecord{}, model.ErrBLNotIssued
		}
		return *rec, nil
	}

	path, err := s.path(instructionID)
	if err != nil {
		return model.BLRecord{}, err
	}

	s.mu.RLock()
	blob, err := os.ReadFile(path)
	s.mu.RUnlock()
	if errors.Is(err, os.ErrNotExist) {
		return model.BLRecord{}, model.ErrBLNotIssued
	}
	if err != nil {
		return model.BLRecord{}, err
	}

	loaded, err := ebl.Load(blob)
	if err != nil {
		return model.BLRecord{}, fmt.Errorf("%s: %w", path, err)
	}
	rec := loaded.Record
	rec.InstructionID = instructionID
	return rec, nil
}

func (s *_FileStorage) StoreBLRecord(ctx context.Context, tx storage.Tx, ts int64, rec model.BLRecord) error {
	t, err := s.fileTx(tx)
	if err != nil {
		return err
	}
	if _, err := s.path(rec.InstructionID); err != nil {
		return err
	}
	t.stage(rec.InstructionID, &rec)
	return nil
}

func (s *_FileStorage) DeleteBLRecord(ctx context.Context, tx storage.Tx, instructionID string) error {
	t, err := s.fileTx(tx)
	if err != nil {
		return err
	}
	if _, err := s.path(instructionID); err != nil {
		return err
	}
	t.stage(instructionID, nil)
	return nil
}

func (s *_FileStorage) fileTx(tx storage.Tx) (*_FileTx, error) {
	t, ok := tx.(*_FileTx)
	if !ok || t == nil || t.s != s {
		return nil, fmt.Errorf("filestore: transaction of type %T does not belong to this storage", tx)
	}
	if t.closed {
		return nil, errors.New("filestore: transaction is closed")
	}
	return t, nil
}

func (s *_FileStorage) path(instructionID string) (string, error) {
	if instructionID == "" || strings.ContainsAny(instructionID, `/\`) || instructionID == "." || instructionID == ".." {
		return "", fmt.Errorf("invalid instruction id %q%w", instructionID, model.ErrInvalidParameter)
	}
	return filepath.Join(s.dir, instructionID+".json"), nil
}

// replace writes rec next to its target and renames it over the old file, so readers
// see either the previous record or the new one.
func (s *_FileStorage) replace(path string, rec *model.BLRecord) error {
	blob, err := ebl.Serialize(*rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".bl-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (t *_FileTx) stage(instructionID string, rec *model.BLRecord) {
	if _, ok := t.staged[instructionID]; !ok {
		t.order = append(t.order, instructionID)
	}
	t.staged[instructionID] = rec
}

func (t *_FileTx) Commit(ctx context.Context) error {
	if t.closed {
		return errors.New("filestore: transaction is closed")
	}
	t.closed = true

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, instructionID := range t.order {
		path, _ := t.s.path(instructionID)
		rec := t.staged[instructionID]
		if rec == nil {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			continue
		}
		if err := t.s.replace(path, rec); err != nil {
			return err
		}
	}
	return nil
}

func (t *_FileTx) Rollback(ctx context.Context) error {
	t.closed = true
	t.staged = nil
	return nil
}
