package custody

import (
	"context"
	"errors"
	"fmt"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CheckBL verifies a B/L presented at the arrival hub. A B/L that fails a check is reported in
// the result. An error is returned only when the check itself could not be carried out.
func (c *_Custodian) CheckBL(ctx context.Context, req CheckBLRequest) (CheckBLResult, error) {
	if c.skipBLCheck {
		return CheckBLResult{Result: true}, nil
	}
	if err := ValidateCheckBLRequest(req); err != nil {
		return CheckBLResult{ErrMsg: CheckErrParameter}, err
	}
	ctx, span := otlp_util.Start(ctx, "custody_server/custody.CheckBL",
		trace.WithAttributes(attribute.String("instruction_id", req.InstructionID)),
	)
	defer span.End()

	result, err := c.checkBL(ctx, req)
	if err != nil {
		return CheckBLResult{ErrMsg: CheckErrParameter}, err
	}
	return result, nil
}

func (c *_Custodian) checkBL(ctx context.Context, req CheckBLRequest) (CheckBLResult, error) {
	presented, err := ebl.DecodeDocument(req.BL)
	if err != nil {
		return CheckBLResult{}, err
	}

	unlock, err := c.lock(ctx, req.InstructionID)
	if err != nil {
		return CheckBLResult{}, err
	}
	exists, err := c.exists(ctx, req.InstructionID)
	unlock()
	if err != nil {
		return CheckBLResult{}, err
	}
	if !exists {
		return CheckBLResult{}, fmt.Errorf("instruction %s: %w", req.InstructionID, model.ErrBLNotIssued)
	}

	if tractor, _ := ebl.TractorGIAI(&presented, bill_of_lading.StageCodeRecipient); tractor != req.TractorGIAI {
		return CheckBLResult{}, fmt.Errorf("B/L names tractor %q, not %q: %w", tractor, req.TractorGIAI, model.ErrTractorMismatch)
	}

	signature, err := c.trust.VerifySignature(ctx, trust.VerifySignatureRequest{CID: req.RecipientCID, Signature: req.BL})
	if err != nil {
		return CheckBLResult{}, err
	}
	if signature.Status != trust.StatusSuccess || !signature.IsValid {
		logrus.Debugf("B/L %s: signature rejected: %+v", req.InstructionID, signature)
		return CheckBLResult{ErrMsg: CheckErrSignature}, nil
	}

	verified, err := c.trust.VerifyBL(ctx, trust.VerifyBLRequest{CID: req.BLCID, BLID: *req.BLNo, SignedBL: req.BL})
	if err != nil {
		return CheckBLResult{}, err
	}
	if verified.Status != trust.StatusSuccess || !verified.Result {
		logrus.Debugf("B/L %s: content rejected: %+v", req.InstructionID, verified)
		return CheckBLResult{ErrMsg: CheckErrInvalidBL}, nil
	}

	detail, err := c.trust.Detail(ctx, *req.BLNo)
	if err != nil {
		return CheckBLResult{}, err
	}
	recipient, err := c.directory.Lookup(req.RecipientCID)
	if err != nil && !errors.Is(err, model.ErrPartyNotFound) {
		return CheckBLResult{}, err
	}
	if recipient.SettlementAddress == "" || detail.Owner != recipient.SettlementAddress {
		logrus.Debugf("B/L %s: owner %q is not %q", req.InstructionID, detail.Owner, req.RecipientCID)
		return CheckBLResult{ErrMsg: CheckErrSignature}, nil
	}
	if detail.Status != trust.StatusSuccess || detail.Invalidate || detail.Used {
		logrus.Debugf("B/L %s: not usable: %+v", req.InstructionID, detail)
		return CheckBLResult{ErrMsg: CheckErrUsedBL}, nil
	}
	return CheckBLResult{Result: true}, nil
}
