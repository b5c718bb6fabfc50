package custody

import (
	"fmt"

	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
)

// Chain is the custody chain of one B/L. Ownership only moves from Carrier to Shipper to Recipient.
type Chain struct {
	Carrier   string
	Shipper   string
	Recipient string
}

func ChainOf(doc *bill_of_lading.ElectronicBillOfLading) Chain {
	return Chain{
		Carrier:   ebl.IssuerID(doc),
		Shipper:   ebl.ConsignorID(doc),
		Recipient: ebl.ConsigneeID(doc),
	}
}

// Position returns the index of cid in the chain.
func (c Chain) Position(cid string) (int, bool) {
	if cid == "" {
		return -1, false
	}
	switch cid {
	case c.Carrier:
		return 0, true
	case c.Shipper:
		return 1, true
	case c.Recipient:
		return 2, true
	}
	return -1, false
}

// CheckAdvance returns an error unless moving ownership from one holder to another keeps it on
// the chain and does not move it backwards.
func (c Chain) CheckAdvance(from, to string) error {
	toPos, ok := c.Position(to)
	if !ok {
		return fmt.Errorf("%q: %w", to, model.ErrUnknownCustodian)
	}
	fromPos, ok := c.Position(from)
	if ok && toPos < fromPos {
		return fmt.Errorf("%q -> %q: %w", from, to, model.ErrOwnershipRegression)
	}
	return nil
}

type StateKind int

const (
	StateUnowned StateKind = iota
	StateWithCarrier
	StatePendingTransfer
	StateWithShipper
	StateWithRecipient
	StateUsed
)

func (k StateKind) String() string {
	switch k {
	case StateUnowned:
		return "unowned"
	case StateWithCarrier:
		return "with_carrier"
	case StatePendingTransfer:
		return "pending_transfer"
	case StateWithShipper:
		return "with_shipper"
	case StateWithRecipient:
		return "with_recipient"
	case StateUsed:
		return "used"
	}
	return "unknown"
}

// State is where a B/L stands in its custody chain. PendingTo is set only for StatePendingTransfer.
type State struct {
	Kind      StateKind
	Holder    string
	PendingTo string
}

func (s State) String() string {
	if s.Kind == StatePendingTransfer {
		return fmt.Sprintf("%s(%s -> %s)", s.Kind, s.Holder, s.PendingTo)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Holder)
}

// StateOf derives the custody state of rec. A nil record is unowned.
func StateOf(rec *model.BLRecord, chain Chain) State {
	if rec == nil || rec.CurrentOwner == "" {
		return State{Kind: StateUnowned}
	}
	state := State{Holder: rec.CurrentOwner}
	switch {
	case rec.Used:
		state.Kind = StateUsed
	case rec.PendingTransferTo != "" && rec.PendingTransferTo != rec.CurrentOwner:
		state.Kind = StatePendingTransfer
		state.PendingTo = rec.PendingTransferTo
	default:
		pos, _ := chain.Position(rec.CurrentOwner)
		switch pos {
		case 0:
			state.Kind = StateWithCarrier
		case 1:
			state.Kind = StateWithShipper
		case 2:
			state.Kind = StateWithRecipient
		default:
			state.Kind = StateUnowned
		}
	}
	return state
}
