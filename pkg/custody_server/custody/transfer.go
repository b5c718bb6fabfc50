package custody

import (
	"context"
	"fmt"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

func (c *_Custodian) InitiateTransfer(ctx context.Context, fromCID, toCID, instructionID string) error {
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.InitiateTransfer",
		trace.WithAttributes(attribute.String("instruction_id", instructionID), attribute.String("from", fromCID), attribute.String("to", toCID)),
	)
	defer span.End()

	unlock, err := c.lock(ctx, instructionID)
	if err != nil {
		return err
	}
	defer unlock()

	rec, doc, err := c.load(ctx, instructionID)
	if err != nil {
		return err
	}
	return c.initiateTransfer(ctx, &rec, &doc, fromCID, toCID)
}

// initiateTransfer runs with the B/L lock held. On success rec carries the pending transfer.
func (c *_Custodian) initiateTransfer(ctx context.Context, rec *model.BLRecord, doc *bill_of_lading.ElectronicBillOfLading, fromCID, toCID string) error {
	if rec.CurrentOwner != fromCID {
		return fmt.Errorf("Custodian::InitiateTransfer(): %q is held by %q, not %q: %w", rec.InstructionID, rec.CurrentOwner, fromCID, model.ErrNotCurrentOwner)
	}
	if err := ChainOf(doc).CheckAdvance(fromCID, toCID); err != nil {
		return fmt.Errorf("Custodian::InitiateTransfer(): %w", err)
	}

	to, err := c.directory.Lookup(toCID)
	if err != nil {
		return fmt.Errorf("Custodian::InitiateTransfer(): fail to resolve %q: %w", toCID, err)
	}

	req := trust.TransferRequest{CID: fromCID, BLID: rec.LedgerID, ToAddress: to.SettlementAddress}
	if err := c.trust.Transfer(ctx, req); err != nil {
		return fmt.Errorf("Custodian::InitiateTransfer(): fail to transfer %q to %q: %w", rec.InstructionID, toCID, err)
	}
	c.transferCount.Add(ctx, 1, metric.WithAttributes(attribute.String("to", toCID)))

	rec.PendingTransferTo = toCID
	if err := c.store(ctx, *rec); err != nil {
		return fmt.Errorf("Custodian::InitiateTransfer(): fail to record pending transfer of %q: %w", rec.InstructionID, err)
	}
	logrus.Debugf("B/L %s (ledger %s): transfer %s -> %s accepted", rec.InstructionID, rec.LedgerID, fromCID, toCID)
	return nil
}

func (c *_Custodian) Receive(ctx context.Context, cid, instructionID string) (model.BLRecord, error) {
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.Receive",
		trace.WithAttributes(attribute.String("instruction_id", instructionID), attribute.String("cid", cid)),
	)
	defer span.End()

	unlock, err := c.lock(ctx, instructionID)
	if err != nil {
		return model.BLRecord{}, err
	}
	defer unlock()

	rec, doc, err := c.load(ctx, instructionID)
	if err != nil {
		return model.BLRecord{}, err
	}
	if err := c.receive(ctx, &rec, &doc, cid); err != nil {
		return model.BLRecord{}, err
	}
	return rec, nil
}

// receive runs with the B/L lock held. It is the only place that changes the current owner.
func (c *_Custodian) receive(ctx context.Context, rec *model.BLRecord, doc *bill_of_lading.ElectronicBillOfLading, cid string) error {
	if rec.CurrentOwner == cid {
		return nil
	}
	if err := ChainOf(doc).CheckAdvance(rec.CurrentOwner, cid); err != nil {
		return fmt.Errorf("Custodian::Receive(): %w", err)
	}

	req := trust.ApproveRequest{CID: cid, BLID: rec.LedgerID, SignedBL: rec.SignedBL}
	resp, err := c.trust.Approve(ctx, req)
	if err != nil {
		return fmt.Errorf("Custodian::Receive(): fail to approve %q for %q: %w", rec.InstructionID, cid, err)
	}
	c.receiveCount.Add(ctx, 1, metric.WithAttributes(attribute.String("cid", cid)))

	next := *rec
	next.SignedBL = resp.SignedSignedBL
	next.CurrentOwner = cid
	next.PendingTransferTo = ""
	if err := c.store(ctx, next); err != nil {
		return fmt.Errorf("Custodian::Receive(): fail to store %q: %w", rec.InstructionID, err)
	}
	logrus.Debugf("B/L %s (ledger %s): received by %s", rec.InstructionID, rec.LedgerID, cid)
	*rec = next
	return nil
}

func (c *_Custodian) HandOff(ctx context.Context, instructionID, fromCID, toCID string) error {
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.HandOff",
		trace.WithAttributes(attribute.String("instruction_id", instructionID), attribute.String("from", fromCID), attribute.String("to", toCID)),
	)
	defer span.End()

	unlock, err := c.lock(ctx, instructionID)
	if err != nil {
		return err
	}
	defer unlock()

	rec, doc, err := c.load(ctx, instructionID)
	if err != nil {
		return err
	}

	chain := ChainOf(&doc)
	if _, ok := chain.Position(toCID); !ok {
		return fmt.Errorf("Custodian::HandOff(): %q: %w", toCID, model.ErrUnknownCustodian)
	}
	if err := chain.CheckAdvance(rec.CurrentOwner, toCID); err != nil || rec.CurrentOwner == toCID {
		// The B/L already reached toCID or went past it.
		logrus.Debugf("B/L %s: hand off %s -> %s skipped, held by %s", instructionID, fromCID, toCID, rec.CurrentOwner)
		return nil
	}

	if err := c.receive(ctx, &rec, &doc, fromCID); err != nil {
		return err
	}
	if rec.PendingTransferTo == toCID {
		return nil
	}
	return c.initiateTransfer(ctx, &rec, &doc, fromCID, toCID)
}

func (c *_Custodian) MarkUsed(ctx context.Context, cid, instructionID string) {
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.MarkUsed",
		trace.WithAttributes(attribute.String("instruction_id", instructionID)),
	)
	defer span.End()

	if err := c.markUsed(ctx, cid, instructionID); err != nil {
		c.markUsedFailures.Add(ctx, 1)
		logrus.Warnf("Custodian::MarkUsed(): B/L %s: %v", instructionID, err)
	}
}

func (c *_Custodian) markUsed(ctx context.Context, cid, instructionID string) error {
	unlock, err := c.lock(ctx, instructionID)
	if err != nil {
		return err
	}
	defer unlock()

	rec, doc, err := c.load(ctx, instructionID)
	if err != nil {
		return err
	}
	if cid == "" {
		cid = ChainOf(&doc).Recipient
	}

	if err := c.trust.Used(ctx, trust.UsedRequest{CID: cid, BLID: rec.LedgerID}); err != nil {
		return err
	}
	rec.Used = true
	return c.store(ctx, rec)
}
