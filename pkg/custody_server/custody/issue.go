package custody

import (
	"context"
	"fmt"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/custody_server/connector"
	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (c *_Custodian) Issue(ctx context.Context, req IssueRequest) (model.BLRecord, error) {
	if err := ValidateIssueRequest(req); err != nil {
		return model.BLRecord{}, err
	}
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.Issue",
		trace.WithAttributes(attribute.String("instruction_id", req.InstructionID)),
	)
	defer span.End()

	shipper, err := c.directory.Lookup(req.ShipperCID)
	if err != nil {
		return model.BLRecord{}, err
	}
	recipient, err := c.directory.Lookup(req.RecipientCID)
	if err != nil {
		return model.BLRecord{}, err
	}
	if shipper.TractorGIAI == "" {
		return model.BLRecord{}, fmt.Errorf("shipper %q has no tractor%w", req.ShipperCID, model.ErrInvalidParameter)
	}

	unlock, err := c.lock(ctx, req.InstructionID)
	if err != nil {
		return model.BLRecord{}, err
	}
	defer unlock()

	// A stale record must not outlive a failed registration.
	if err := c.remove(ctx, req.InstructionID); err != nil {
		return model.BLRecord{}, fmt.Errorf("Custodian::Issue(): fail to remove previous B/L of %q: %w", req.InstructionID, err)
	}

	doc := ebl.NewDocument()
	ebl.SetConsignee(&doc, recipient.CID, recipient.Name)
	ebl.SetConsignor(&doc, shipper.CID, shipper.Name)
	if req.DepartureHub != "" {
		ebl.SetDepartureHub(&doc, req.DepartureHub, c.directory.HubName(req.DepartureHub))
	}
	if req.ArrivalHub != "" {
		ebl.SetArrivalHub(&doc, req.ArrivalHub, c.directory.HubName(req.ArrivalHub))
	}
	if len(req.TrailerGIAIs) > 0 {
		ebl.SetTrailers(&doc, req.TrailerGIAIs)
	}
	ebl.SetShipperTractor(&doc, shipper.TractorGIAI)
	if recipient.TractorGIAI != "" {
		ebl.SetRecipientTractor(&doc, recipient.TractorGIAI)
	}
	ebl.Issue(&doc, req.CarrierCID, c.now())

	blJSON, err := ebl.Encode(doc)
	if err != nil {
		return model.BLRecord{}, err
	}
	resp, err := c.trust.Register(ctx, trust.RegisterRequest{CID: req.CarrierCID, BLJSON: blJSON})
	if err != nil {
		return model.BLRecord{}, fmt.Errorf("Custodian::Issue(): fail to register %q: %w", req.InstructionID, err)
	}

	rec := model.BLRecord{
		InstructionID: req.InstructionID,
		LedgerID:      resp.BLID,
		SignedBL:      resp.SignedBL,
		CurrentOwner:  req.CarrierCID,
	}
	if err := c.store(ctx, rec); err != nil {
		return model.BLRecord{}, fmt.Errorf("Custodian::Issue(): fail to store %q: %w", req.InstructionID, err)
	}
	logrus.Debugf("B/L %s issued by %s as ledger %s", req.InstructionID, req.CarrierCID, resp.BLID)
	return rec, nil
}

func (c *_Custodian) FetchForParty(ctx context.Context, req FetchForPartyRequest) (connector.FetchEBLResponse, error) {
	if err := ValidateFetchForPartyRequest(req); err != nil {
		return connector.FetchEBLResponse{}, err
	}
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.FetchForParty",
		trace.WithAttributes(attribute.String("instruction_id", req.InstructionID)),
	)
	defer span.End()

	unlock, err := c.lock(ctx, req.InstructionID)
	if err != nil {
		return connector.FetchEBLResponse{}, err
	}
	defer unlock()

	rec, doc, err := c.load(ctx, req.InstructionID)
	if err != nil {
		return connector.FetchEBLResponse{}, err
	}

	chain := ChainOf(&doc)
	if chain.Recipient != req.RecipientCID || chain.Shipper != req.ShipperCID {
		return connector.FetchEBLResponse{}, fmt.Errorf("B/L of %q can not move to %q/%q: %w", req.InstructionID, req.RecipientCID, req.ShipperCID, model.ErrPartyMismatch)
	}

	if rec.CurrentOwner == chain.Carrier && rec.PendingTransferTo != chain.Shipper {
		if err := c.initiateTransfer(ctx, &rec, &doc, chain.Carrier, chain.Shipper); err != nil {
			return connector.FetchEBLResponse{}, err
		}
	}

	return connector.FetchEBLResponse{
		Result:        true,
		CarrierCID:    chain.Carrier,
		RecipientCID:  chain.Recipient,
		ShipperCID:    chain.Shipper,
		InstructionID: req.InstructionID,
		BLNo:          rec.LedgerID,
		BL:            rec.SignedBL,
	}, nil
}

func (c *_Custodian) GetForTractor(ctx context.Context, instructionID, tractorGIAI string) (TractorBL, error) {
	unlock, err := c.lock(ctx, instructionID)
	if err != nil {
		return TractorBL{}, err
	}
	defer unlock()

	rec, doc, err := c.load(ctx, instructionID)
	if err != nil {
		return TractorBL{}, err
	}
	if recipientTractor, _ := ebl.TractorGIAI(&doc, bill_of_lading.StageCodeRecipient); recipientTractor != tractorGIAI {
		return TractorBL{}, fmt.Errorf("%q is not the recipient tractor of %q: %w", tractorGIAI, instructionID, model.ErrTractorMismatch)
	}

	chain := ChainOf(&doc)
	return TractorBL{
		CarrierCID:    chain.Carrier,
		RecipientCID:  chain.Recipient,
		ShipperCID:    chain.Shipper,
		InstructionID: instructionID,
		TractorGIAI:   tractorGIAI,
		TrailerGIAIs:  ebl.TrailerGIAIs(&doc),
		BLCID:         chain.Carrier,
		BLNo:          rec.LedgerID,
		BL:            rec.SignedBL,
	}, nil
}
