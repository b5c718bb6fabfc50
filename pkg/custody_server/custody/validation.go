package custody

import (
	"fmt"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateIssueRequest(req IssueRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.InstructionID, validation.Required),
		validation.Field(&req.CarrierCID, validation.Required),
		validation.Field(&req.ShipperCID, validation.Required),
		validation.Field(&req.RecipientCID, validation.Required),
		validation.Field(&req.TrailerGIAIs, validation.Each(validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateFetchForPartyRequest(req FetchForPartyRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.InstructionID, validation.Required),
		validation.Field(&req.RecipientCID, validation.Required),
		validation.Field(&req.ShipperCID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateCheckBLRequest(req CheckBLRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.RecipientCID, validation.Required),
		validation.Field(&req.InstructionID, validation.Required),
		validation.Field(&req.TractorGIAI, validation.Required),
		validation.Field(&req.BLCID, validation.Required),
		validation.Field(&req.BLNo, validation.NotNil),
		validation.Field(&req.BL, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}
