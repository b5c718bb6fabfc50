package handoff

import (
	"context"
	"fmt"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/custody_server/connector"
	"github.com/cologi/hubcustody/pkg/custody_server/custody"
	"github.com/cologi/hubcustody/pkg/custody_server/directory"
	"github.com/cologi/hubcustody/pkg/custody_server/hub"
	"github.com/cologi/hubcustody/pkg/custody_server/keylock"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Processor applies batches of handoff events. A batch is validated as a whole before any
// plan is touched; the first failure while applying stops the batch.
// Both methods return the last plan written, or nil when the batch touched no plan.
type Processor interface {
	// ProcessVanningResult dispatches each record by its bizStep. Records that are neither
	// loading nor unloading are ignored.
	ProcessVanningResult(ctx context.Context, body []byte) (*model.HandoffPlan, error)
	// ProcessDevanningResult treats every record as unloading.
	ProcessDevanningResult(ctx context.Context, body []byte) (*model.HandoffPlan, error)
}

type _Processor struct {
	plans     hub.PlanClient
	custodian custody.Custodian
	connector connector.Client
	directory directory.Directory
	locker    keylock.Locker

	eventCount metric.Int64Counter
}

type ProcessorOption func(*_Processor)

func WithProcessorLocker(locker keylock.Locker) ProcessorOption {
	return func(p *_Processor) {
		p.locker = locker
	}
}

func NewProcessor(plans hub.PlanClient, custodian custody.Custodian, conn connector.Client, dir directory.Directory, options ...ProcessorOption) *_Processor {
	p := &_Processor{
		plans:      plans,
		custodian:  custodian,
		connector:  conn,
		directory:  dir,
		locker:     keylock.NewLocalLocker(),
		eventCount: otlp_util.NewInt64Counter("handoff.event.count", metric.WithDescription("The total number of handoff events applied to plans")),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// step is one event bound to the plan it updates.
type step struct {
	event HandoffEvent
	key   model.PlanKey
}

func (p *_Processor) ProcessVanningResult(ctx context.Context, body []byte) (*model.HandoffPlan, error) {
	return p.process(ctx, "handoff.ProcessVanningResult", body, func(event HandoffEvent) (model.Direction, bool) {
		switch event.BizStep {
		case BizStepLoading:
			return model.DirectionVanning, true
		case BizStepUnloading:
			return model.DirectionDevanning, true
		}
		return "", false
	})
}

func (p *_Processor) ProcessDevanningResult(ctx context.Context, body []byte) (*model.HandoffPlan, error) {
	return p.process(ctx, "handoff.ProcessDevanningResult", body, func(HandoffEvent) (model.Direction, bool) {
		return model.DirectionDevanning, true
	})
}

func (p *_Processor) process(ctx context.Context, name string, body []byte, direction func(HandoffEvent) (model.Direction, bool)) (*model.HandoffPlan, error) {
	ctx, span := otlp_util.Start(ctx, "custody_server/"+name)
	defer span.End()

	events, err := ParseBatch(body)
	if err != nil {
		return nil, err
	}

	steps := make([]step, 0, len(events))
	for _, event := range events {
		dir, ok := direction(event)
		if !ok {
			logrus.Debugf("%s: bizStep %q of %s ignored", name, event.BizStep, event.InstructionID)
			continue
		}
		steps = append(steps, step{
			event: event,
			key:   model.PlanKey{HubID: event.HubID, InstructionID: event.InstructionID, Direction: dir},
		})
	}
	if len(steps) == 0 {
		return nil, nil
	}

	keys := lo.Map(steps, func(s step, _ int) string { return s.key.String() })
	unlock, err := keylock.LockAll(ctx, p.locker, keys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Validate every record against its plan before anything is changed.
	plans := make(map[model.PlanKey]model.HandoffPlan, len(steps))
	for _, s := range steps {
		plan, ok := plans[s.key]
		if !ok {
			plan, err = p.plans.GetPlan(ctx, s.key)
			if err != nil {
				return nil, err
			}
			plans[s.key] = plan
		}
		if err := checkEvent(plan, s.event); err != nil {
			return nil, err
		}
	}

	var updated *model.HandoffPlan
	for _, s := range steps {
		plan, err := p.apply(ctx, s, plans[s.key])
		if err != nil {
			return nil, err
		}
		plans[s.key] = plan
		updated = &plan
	}
	return updated, nil
}

// checkEvent returns an error if event can never be applied to plan.
func checkEvent(plan model.HandoffPlan, event HandoffEvent) error {
	for _, giai := range event.EquipmentGIAIs {
		if !plan.HasEquipment(giai) {
			return fmt.Errorf("%q is not planned for %s: %w", giai, event.InstructionID, model.ErrForeignEquipment)
		}
	}
	if plan.Status == model.PlanStatusCancelled {
		return fmt.Errorf("%s at %s: %w", event.InstructionID, event.HubID, model.ErrPlanCancelled)
	}
	return nil
}

func (p *_Processor) apply(ctx context.Context, s step, plan model.HandoffPlan) (model.HandoffPlan, error) {
	ctx, span := otlp_util.Start(ctx, "custody_server/handoff.apply",
		trace.WithAttributes(attribute.String("plan", s.key.String())),
	)
	defer span.End()

	if plan.Status == model.PlanStatusDone {
		// A repeated notification. The first actual time stays.
		logrus.Debugf("plan %s is already done at %s", s.key, plan.ActualTime)
		return plan, nil
	}

	switch s.key.Direction {
	case model.DirectionVanning:
		if plan.NeedsBLAction {
			p.custodian.MarkUsed(ctx, plan.RecipientID, s.key.InstructionID)
		}
	case model.DirectionDevanning:
		if plan.IsDepartureHub {
			if err := p.startCustody(ctx, plan, s.key.InstructionID); err != nil {
				return plan, err
			}
		}
	}

	plan.Status = model.PlanStatusDone
	plan.ActualTime = model.NewPlanTime(s.event.EventTime)
	if err := p.plans.UpdatePlan(ctx, s.key, plan); err != nil {
		return plan, err
	}
	p.eventCount.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", string(s.key.Direction))))
	return plan, nil
}

// startCustody runs the custody chain of a departure hub unload: the shipper pulls the B/L from
// the carrier, passes it on and the recipient receives it.
func (p *_Processor) startCustody(ctx context.Context, plan model.HandoffPlan, instructionID string) error {
	owner, err := p.custodian.CurrentOwner(ctx, instructionID)
	if err != nil {
		return err
	}

	switch owner {
	case plan.CarrierID:
		carrier, err := p.directory.Lookup(plan.CarrierID)
		if err != nil {
			return err
		}
		req := connector.FetchEBLRequest{InstructionID: instructionID, RecipientCID: plan.RecipientID, ShipperCID: plan.ShipperID}
		if _, err := p.connector.FetchEBL(ctx, carrier.Endpoint, req); err != nil {
			return fmt.Errorf("Processor::startCustody(): fail to fetch B/L of %s: %w", instructionID, err)
		}
	case plan.ShipperID:
		// A previous attempt stopped half way. Finish the chain.
		logrus.Debugf("B/L %s is held by shipper %s, resuming", instructionID, owner)
	default:
		logrus.Debugf("B/L %s is already held by %s", instructionID, owner)
		return nil
	}

	if err := p.custodian.HandOff(ctx, instructionID, plan.ShipperID, plan.RecipientID); err != nil {
		return err
	}
	_, err = p.custodian.Receive(ctx, plan.RecipientID, instructionID)
	return err
}
