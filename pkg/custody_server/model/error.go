package model

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidParameter = errors.New("") // Base error for invalid parameter
var ErrNotFound = errors.New("")         // Base error for missing resources
var ErrForbidden = errors.New("")        // Base error for resources the caller may not see yet
var ErrUpstream = errors.New("")         // Base error for failures of Trust, Hub Management or peer connectors
var ErrConflict = errors.New("")         // Base error for state that cannot accept the request

// BL record errors
var ErrBLNotIssued = fmt.Errorf("B/L is not issued%w", ErrForbidden)
var ErrMalformedBLRecord = fmt.Errorf("malformed B/L record%w", ErrInvalidParameter)
var ErrOwnershipRegression = fmt.Errorf("ownership can not move backwards%w", ErrConflict)
var ErrNotCurrentOwner = fmt.Errorf("party does not hold the B/L%w", ErrConflict)
var ErrUnknownCustodian = fmt.Errorf("party is not part of the custody chain%w", ErrInvalidParameter)
var ErrPartyMismatch = fmt.Errorf("recipient or shipper does not match B/L%w", ErrInvalidParameter)
var ErrTractorMismatch = fmt.Errorf("tractor does not match B/L%w", ErrInvalidParameter)

// Plan errors
var ErrPlanNotFound = fmt.Errorf("plan not found%w", ErrNotFound)
var ErrPlanCancelled = fmt.Errorf("plan is cancelled%w", ErrConflict)
var ErrForeignEquipment = fmt.Errorf("equipment is not assigned to plan%w", ErrInvalidParameter)
var ErrInvalidPlanStatus = fmt.Errorf("invalid plan status%w", ErrInvalidParameter)

// Event errors
var ErrMalformedEvent = fmt.Errorf("malformed handoff event%w", ErrInvalidParameter)

// Directory errors
var ErrPartyNotFound = fmt.Errorf("party not found%w", ErrNotFound)

// Upstream errors
var ErrLedgerRejected = fmt.Errorf("trust service rejected request%w", ErrUpstream)
var ErrHubRejected = fmt.Errorf("hub management rejected request%w", ErrUpstream)
var ErrConnectorRejected = fmt.Errorf("connector rejected request%w", ErrUpstream)

func ErrorToHttpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
