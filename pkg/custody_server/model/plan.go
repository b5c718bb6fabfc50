package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PlanStatus is the state of a HandoffPlan. The zero value is not a valid status.
type PlanStatus int

const (
	PlanStatusCancelled = PlanStatus(-1)
	PlanStatusPlanning  = PlanStatus(1)
	PlanStatusDone      = PlanStatus(2)
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanStatusPlanning, PlanStatusDone, PlanStatusCancelled:
		return true
	}
	return false
}

func (s PlanStatus) String() string {
	switch s {
	case PlanStatusPlanning:
		return "planning"
	case PlanStatusDone:
		return "done"
	case PlanStatusCancelled:
		return "cancelled"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

func (s PlanStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlanStatus, int(s))
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON accepts the status as a number or as a quoted integer.
func (s *PlanStatus) UnmarshalJSON(b []byte) error {
	var v int
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPlanStatus, err.Error())
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPlanStatus, str)
		}
		v = n
	} else if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPlanStatus, err.Error())
	}
	status := PlanStatus(v)
	if !status.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlanStatus, v)
	}
	*s = status
	return nil
}

// Flag is a boolean carried as 0/1 on the Hub Management wire.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "1", "true", `"1"`:
		*f = true
	case "0", "false", `"0"`, "null", `""`:
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s%w", string(b), ErrInvalidParameter)
	}
	return nil
}

type Direction string

const (
	DirectionVanning   = Direction("vanning")
	DirectionDevanning = Direction("devanning")
)

// PlanKey addresses one HandoffPlan at the Hub Management service.
type PlanKey struct {
	HubID         string
	InstructionID string
	Direction     Direction
}

func (k PlanKey) String() string {
	return fmt.Sprintf("plan:%s:%s:%s", k.Direction, k.HubID, k.InstructionID)
}

type HandoffPlan struct {
	HubID          string     `json:"mh"`
	ParkingSpaces  []string   `json:"mh_space_list"`
	ShipperID      string     `json:"shipper_cid"`
	RecipientID    string     `json:"recipient_cid"`
	CarrierID      string     `json:"carrier_cid"`
	InstructionID  string     `json:"trsp_instruction_id"`
	TractorGIAI    string     `json:"tractor_giai"`
	TrailerGIAIs   []string   `json:"trailer_giai_list"`
	RequestedFrom  PlanTime   `json:"req_from_time"`
	RequestedTo    PlanTime   `json:"req_to_time"`
	ActualTime     PlanTime   `json:"actual_time"`
	Status         PlanStatus `json:"status"`
	NeedsBLAction  Flag       `json:"is_bl_need"`
	IsDepartureHub Flag       `json:"is_departure_mh"`
}

// NewDefaultPlan is the plan assumed for a key the Hub Management service does not know yet.
func NewDefaultPlan(key PlanKey) HandoffPlan {
	return HandoffPlan{
		HubID:         key.HubID,
		InstructionID: key.InstructionID,
		ParkingSpaces: []string{},
		TrailerGIAIs:  []string{},
		Status:        PlanStatusPlanning,
	}
}

// HasEquipment reports whether giai is the plan's tractor or one of its trailers.
func (p HandoffPlan) HasEquipment(giai string) bool {
	if giai == "" {
		return false
	}
	if giai == p.TractorGIAI {
		return true
	}
	for _, trailer := range p.TrailerGIAIs {
		if trailer == giai {
			return true
		}
	}
	return false
}
