package handoff

import (
	"context"
	"fmt"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/custody_server/hub"
	"github.com/cologi/hubcustody/pkg/custody_server/keylock"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Window is a requested handoff time range.
type Window struct {
	From model.PlanTime `json:"req_from_time"`
	To   model.PlanTime `json:"req_to_time"`
}

// AssignRouteRequest is sent by the carrier that accepted a transport instruction.
type AssignRouteRequest struct {
	InstructionID   string   `json:"trsp_instruction_id"`
	CarrierCID      string   `json:"carrier_cid"`
	ShipperCID      string   `json:"shipper_cid"`
	RecipientCID    string   `json:"recipient_cid"`
	DepartureHub    string   `json:"departure_mh"`
	DepartureSpaces []string `json:"departure_mh_space_list"`
	ArrivalHub      string   `json:"arrival_mh"`
	ArrivalSpaces   []string `json:"arrival_mh_space_list"`
	TractorGIAI     string   `json:"tractor_giai"`
	TrailerGIAIs    []string `json:"trailer_giai_list"`
	DepartureWindow Window   `json:"departure_window"`
	ArrivalWindow   Window   `json:"arrival_window"`
}

// UpdateRoutePartyRequest carries what the shipper or the recipient decided for its own leg.
// The shipper sets the departure unload and the trailers; the recipient sets the arrival load.
type UpdateRoutePartyRequest struct {
	InstructionID string          `json:"trsp_instruction_id"`
	Role          model.PartyRole `json:"role"`
	ShipperCID    string          `json:"shipper_cid"`
	RecipientCID  string          `json:"recipient_cid"`
	TractorGIAI   string          `json:"tractor_giai"`
	TrailerGIAIs  []string        `json:"trailer_giai_list"`
	Window        Window          `json:"window"`
}

type RemoveRouteRequest struct {
	InstructionID string `json:"trsp_instruction_id"`
	DepartureHub  string `json:"departure_mh"`
	ArrivalHub    string `json:"arrival_mh"`
}

// Route is the four plans of one hub pair.
type Route struct {
	DepartureDevanning model.HandoffPlan `json:"departure_devanning_plan"`
	DepartureVanning   model.HandoffPlan `json:"departure_vanning_plan"`
	ArrivalDevanning   model.HandoffPlan `json:"arrival_devanning_plan"`
	ArrivalVanning     model.HandoffPlan `json:"arrival_vanning_plan"`
}

// RoutePlanner creates and updates the four plans of a route together. Each operation holds
// the locks of all four plan keys.
type RoutePlanner interface {
	AssignRoute(ctx context.Context, req AssignRouteRequest) (Route, error)
	UpdateRouteParty(ctx context.Context, req UpdateRoutePartyRequest) (Route, error)
	RemoveRoute(ctx context.Context, req RemoveRouteRequest) error
}

type _RoutePlanner struct {
	plans  hub.PlanClient
	locker keylock.Locker
}

func NewRoutePlanner(plans hub.PlanClient, locker keylock.Locker) *_RoutePlanner {
	if locker == nil {
		locker = keylock.NewLocalLocker()
	}
	return &_RoutePlanner{plans: plans, locker: locker}
}

func routeKeys(instructionID, departureHub, arrivalHub string) []model.PlanKey {
	return []model.PlanKey{
		{HubID: departureHub, InstructionID: instructionID, Direction: model.DirectionDevanning},
		{HubID: departureHub, InstructionID: instructionID, Direction: model.DirectionVanning},
		{HubID: arrivalHub, InstructionID: instructionID, Direction: model.DirectionDevanning},
		{HubID: arrivalHub, InstructionID: instructionID, Direction: model.DirectionVanning},
	}
}

func (r *_RoutePlanner) lockRoute(ctx context.Context, keys []model.PlanKey) (func(), error) {
	return keylock.LockAll(ctx, r.locker, lo.Map(keys, func(k model.PlanKey, _ int) string { return k.String() })...)
}

func (r *_RoutePlanner) AssignRoute(ctx context.Context, req AssignRouteRequest) (Route, error) {
	if err := ValidateAssignRouteRequest(req); err != nil {
		return Route{}, err
	}
	ctx, span := otlp_util.Start(ctx, "custody_server/handoff.AssignRoute",
		trace.WithAttributes(attribute.String("instruction_id", req.InstructionID)),
	)
	defer span.End()

	keys := routeKeys(req.InstructionID, req.DepartureHub, req.ArrivalHub)
	unlock, err := r.lockRoute(ctx, keys)
	if err != nil {
		return Route{}, err
	}
	defer unlock()

	plans := make([]model.HandoffPlan, len(keys))
	for i, key := range keys {
		if plans[i], err = r.plans.GetPlanOrDefault(ctx, key); err != nil {
			return Route{}, err
		}
		plan := &plans[i]
		plan.HubID = key.HubID
		plan.InstructionID = req.InstructionID
		plan.CarrierID = req.CarrierCID
		plan.ShipperID = req.ShipperCID
		if req.RecipientCID != "" {
			plan.RecipientID = req.RecipientCID
		}
		if req.TrailerGIAIs != nil {
			plan.TrailerGIAIs = req.TrailerGIAIs
		}
		plan.Status = model.PlanStatusPlanning
		plan.IsDepartureHub = i < 2
		plan.NeedsBLAction = false
		if plan.IsDepartureHub {
			plan.ParkingSpaces = req.DepartureSpaces
		} else {
			plan.ParkingSpaces = req.ArrivalSpaces
		}
	}

	route := Route{DepartureDevanning: plans[0], DepartureVanning: plans[1], ArrivalDevanning: plans[2], ArrivalVanning: plans[3]}
	// The carrier loads at the departure hub and unloads at the arrival hub.
	route.DepartureVanning.TractorGIAI = req.TractorGIAI
	route.DepartureVanning.RequestedFrom = req.DepartureWindow.From
	route.DepartureVanning.RequestedTo = req.DepartureWindow.To
	route.ArrivalDevanning.TractorGIAI = req.TractorGIAI
	route.ArrivalDevanning.RequestedFrom = req.ArrivalWindow.From
	route.ArrivalDevanning.RequestedTo = req.ArrivalWindow.To
	route.ArrivalVanning.NeedsBLAction = true

	if err := r.save(ctx, keys, route); err != nil {
		return Route{}, err
	}
	return route, nil
}

func (r *_RoutePlanner) UpdateRouteParty(ctx context.Context, req UpdateRoutePartyRequest) (Route, error) {
	if err := ValidateUpdateRoutePartyRequest(req); err != nil {
		return Route{}, err
	}
	ctx, span := otlp_util.Start(ctx, "custody_server/handoff.UpdateRouteParty",
		trace.WithAttributes(attribute.String("instruction_id", req.InstructionID), attribute.String("role", string(req.Role))),
	)
	defer span.End()

	departure, err := r.plans.SearchPlan(ctx, true, req.InstructionID, model.DirectionDevanning)
	if err != nil {
		return Route{}, err
	}
	arrival, err := r.plans.SearchPlan(ctx, false, req.InstructionID, model.DirectionVanning)
	if err != nil {
		return Route{}, err
	}

	keys := routeKeys(req.InstructionID, departure.HubID, arrival.HubID)
	unlock, err := r.lockRoute(ctx, keys)
	if err != nil {
		return Route{}, err
	}
	defer unlock()

	plans := make([]model.HandoffPlan, len(keys))
	for i, key := range keys {
		if plans[i], err = r.plans.GetPlan(ctx, key); err != nil {
			return Route{}, err
		}
	}
	route := Route{DepartureDevanning: plans[0], DepartureVanning: plans[1], ArrivalDevanning: plans[2], ArrivalVanning: plans[3]}

	var changed []int
	switch req.Role {
	case model.PartyRoleShipper:
		for _, plan := range []*model.HandoffPlan{&route.DepartureDevanning, &route.DepartureVanning, &route.ArrivalDevanning, &route.ArrivalVanning} {
			if req.ShipperCID != "" {
				plan.ShipperID = req.ShipperCID
			}
			if req.RecipientCID != "" {
				plan.RecipientID = req.RecipientCID
			}
			if req.TrailerGIAIs != nil {
				plan.TrailerGIAIs = req.TrailerGIAIs
			}
		}
		// The shipper unloads at the departure hub.
		route.DepartureDevanning.TractorGIAI = req.TractorGIAI
		route.DepartureDevanning.RequestedFrom = req.Window.From
		route.DepartureDevanning.RequestedTo = req.Window.To
		changed = []int{0, 1, 2, 3}
	case model.PartyRoleRecipient:
		// The recipient loads at the arrival hub.
		route.ArrivalVanning.TractorGIAI = req.TractorGIAI
		route.ArrivalVanning.RequestedFrom = req.Window.From
		route.ArrivalVanning.RequestedTo = req.Window.To
		route.ArrivalVanning.NeedsBLAction = true
		changed = []int{3}
	}

	all := []model.HandoffPlan{route.DepartureDevanning, route.DepartureVanning, route.ArrivalDevanning, route.ArrivalVanning}
	for _, i := range changed {
		if err := r.plans.SavePlan(ctx, keys[i], all[i]); err != nil {
			return Route{}, fmt.Errorf("RoutePlanner::UpdateRouteParty(): fail to save %s: %w", keys[i], err)
		}
	}
	return route, nil
}

func (r *_RoutePlanner) RemoveRoute(ctx context.Context, req RemoveRouteRequest) error {
	if err := ValidateRemoveRouteRequest(req); err != nil {
		return err
	}
	keys := routeKeys(req.InstructionID, req.DepartureHub, req.ArrivalHub)
	unlock, err := r.lockRoute(ctx, keys)
	if err != nil {
		return err
	}
	defer unlock()

	for _, key := range keys {
		if err := r.plans.DeletePlan(ctx, key); err != nil {
			return fmt.Errorf("RoutePlanner::RemoveRoute(): fail to delete %s: %w", key, err)
		}
	}
	return nil
}

func (r *_RoutePlanner) save(ctx context.Context, keys []model.PlanKey, route Route) error {
	plans := []model.HandoffPlan{route.DepartureDevanning, route.DepartureVanning, route.ArrivalDevanning, route.ArrivalVanning}
	for i, key := range keys {
		if err := r.plans.SavePlan(ctx, key, plans[i]); err != nil {
			return fmt.Errorf("RoutePlanner::save(): fail to save %s: %w", key, err)
		}
	}
	return nil
}

func ValidateAssignRouteRequest(req AssignRouteRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.InstructionID, validation.Required),
		validation.Field(&req.CarrierCID, validation.Required),
		validation.Field(&req.ShipperCID, validation.Required),
		validation.Field(&req.DepartureHub, validation.Required),
		validation.Field(&req.ArrivalHub, validation.Required, validation.NotIn(req.DepartureHub).Error("must differ from departure_mh")),
		validation.Field(&req.TractorGIAI, validation.Required),
		validation.Field(&req.TrailerGIAIs, validation.Each(validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateUpdateRoutePartyRequest(req UpdateRoutePartyRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.InstructionID, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In(model.PartyRoleShipper, model.PartyRoleRecipient)),
		validation.Field(&req.TractorGIAI, validation.Required),
		validation.Field(&req.TrailerGIAIs, validation.Each(validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateRemoveRouteRequest(req RemoveRouteRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.InstructionID, validation.Required),
		validation.Field(&req.DepartureHub, validation.Required),
		validation.Field(&req.ArrivalHub, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}
