package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// LedgerID is the id the Trust service assigns to a registered B/L (bl_id on the wire).
// It is accepted as a JSON number or as a numeric string.
type LedgerID int64

func (id LedgerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id *LedgerID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("bl_id %q is not an integer%w", string(b), ErrInvalidParameter)
	}
	*id = LedgerID(v)
	return nil
}

// BLRecord is the custody ledger entry of one transport instruction.
// CurrentOwner is changed only by a receive; PendingTransferTo only records a transfer
// the Trust service accepted and nobody has received yet.
type BLRecord struct {
	InstructionID     string          `json:"-"`
	LedgerID          LedgerID        `json:"bl_id"`
	SignedBL          json.RawMessage `json:"signed_bl"`
	CurrentOwner      string          `json:"current_owner"`
	PendingTransferTo string          `json:"pending_transfer_to,omitempty"`
	Used              bool            `json:"used,omitempty"`
}
