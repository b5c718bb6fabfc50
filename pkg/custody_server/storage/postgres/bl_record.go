package postgres

import (
	"context"
	"errors"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/storage"
	"github.com/cologi/hubcustody/pkg/envelope"
	"github.com/jackc/pgx/v5"
)

func (s *_Storage) GetBLRecord(ctx context.Context, tx storage.Tx, instructionID string) (model.BLRecord, error) {
	t, err := pgTx(tx)
	if err != nil {
		return model.BLRecord{}, err
	}

	query := `
SELECT ledger_id, signed_envelope, current_owner, pending_transfer_to, used
FROM bl_record
WHERE instruction_id = $1`

	rec := model.BLRecord{InstructionID: instructionID}
	var signed []byte
	err = t.queryRow(ctx, query, instructionID).Scan(&rec.LedgerID, &signed, &rec.CurrentOwner, &rec.PendingTransferTo, &rec.Used)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BLRecord{}, model.ErrBLNotIssued
	}
	if err != nil {
		return model.BLRecord{}, err
	}
	rec.SignedBL = signed
	return rec, nil
}

func (s *_Storage) StoreBLRecord(ctx context.Context, tx storage.Tx, ts int64, rec model.BLRecord) error {
	t, err := pgTx(tx)
	if err != nil {
		return err
	}

	digest, err := envelope.Digest(rec.SignedBL)
	if err != nil {
		return err
	}

	query := `
INSERT INTO bl_record (instruction_id, ledger_id, signed_envelope, envelope_digest, current_owner, pending_transfer_to, used, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
ON CONFLICT (instruction_id) DO UPDATE SET
	ledger_id = excluded.ledger_id,
	signed_envelope = excluded.signed_envelope,
	envelope_digest = excluded.envelope_digest,
	current_owner = excluded.current_owner,
	pending_transfer_to = excluded.pending_transfer_to,
	used = excluded.used,
	updated_at = excluded.updated_at`

	_, err = t.exec(ctx, query, rec.InstructionID, int64(rec.LedgerID), []byte(rec.SignedBL), digest, rec.CurrentOwner, rec.PendingTransferTo, rec.Used, ts)
	return err
}

func (s *_Storage) DeleteBLRecord(ctx context.Context, tx storage.Tx, instructionID string) error {
	t, err := pgTx(tx)
	if err != nil {
		return err
	}

	_, err = t.exec(ctx, `DELETE FROM bl_record WHERE instruction_id = $1`, instructionID)
	return err
}
