// Package hub is the client of the Hub Management service, which stores the vanning and
// devanning plans of every hub.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/util"
)

// PlanClient reads and writes HandoffPlans. Callers serialize access per model.PlanKey.
type PlanClient interface {
	// GetPlan returns model.ErrPlanNotFound when the service has no such plan.
	GetPlan(ctx context.Context, key model.PlanKey) (model.HandoffPlan, error)
	// GetPlanOrDefault returns model.NewDefaultPlan(key) when the service has no such plan.
	GetPlanOrDefault(ctx context.Context, key model.PlanKey) (model.HandoffPlan, error)
	// SavePlan creates or replaces a plan (POST).
	SavePlan(ctx context.Context, key model.PlanKey, plan model.HandoffPlan) error
	// UpdatePlan writes back a plan that was read before (PUT).
	UpdatePlan(ctx context.Context, key model.PlanKey, plan model.HandoffPlan) error
	DeletePlan(ctx context.Context, key model.PlanKey) error
	// SearchPlan finds the plan of one route side without knowing its hub.
	SearchPlan(ctx context.Context, isDepartureHub bool, instructionID string, direction model.Direction) (model.HandoffPlan, error)
}

type planResponse struct {
	Result        bool            `json:"result"`
	ErrorMsg      string          `json:"error_msg"`
	VanningPlan   json.RawMessage `json:"vanning_plan"`
	DevanningPlan json.RawMessage `json:"devanning_plan"`
	Plan          json.RawMessage `json:"plan"`
}

type resultResponse struct {
	Result   bool   `json:"result"`
	ErrorMsg string `json:"error_msg"`
}

type _RestPlanClient struct {
	rest *util.RestClient
}

func NewRestPlanClient(server string, timeout time.Duration) *_RestPlanClient {
	return &_RestPlanClient{rest: util.NewRestClient(server, timeout)}
}

func planPath(key model.PlanKey) string {
	return fmt.Sprintf("%s_plan/%s/%s", key.Direction, url.PathEscape(key.HubID), url.PathEscape(key.InstructionID))
}

func (c *_RestPlanClient) GetPlan(ctx context.Context, key model.PlanKey) (model.HandoffPlan, error) {
	resp := planResponse{}
	err := c.rest.Execute(ctx, http.MethodGet, planPath(key), nil, nil, nil, &resp)
	if isNotFound(err) {
		return model.HandoffPlan{}, fmt.Errorf("%s: %w", key, model.ErrPlanNotFound)
	}
	if err != nil {
		return model.HandoffPlan{}, wrapHubError(planPath(key), err)
	}
	if !resp.Result {
		return model.HandoffPlan{}, fmt.Errorf("%s: %s: %w", key, resp.ErrorMsg, model.ErrPlanNotFound)
	}

	raw := resp.VanningPlan
	if key.Direction == model.DirectionDevanning {
		raw = resp.DevanningPlan
	}
	return decodePlan(planPath(key), raw)
}

func (c *_RestPlanClient) GetPlanOrDefault(ctx context.Context, key model.PlanKey) (model.HandoffPlan, error) {
	plan, err := c.GetPlan(ctx, key)
	if errors.Is(err, model.ErrPlanNotFound) {
		return model.NewDefaultPlan(key), nil
	}
	return plan, err
}

func (c *_RestPlanClient) SavePlan(ctx context.Context, key model.PlanKey, plan model.HandoffPlan) error {
	return c.write(ctx, http.MethodPost, key, plan)
}

func (c *_RestPlanClient) UpdatePlan(ctx context.Context, key model.PlanKey, plan model.HandoffPlan) error {
	return c.write(ctx, http.MethodPut, key, plan)
}

func (c *_RestPlanClient) DeletePlan(ctx context.Context, key model.PlanKey) error {
	err := c.rest.Execute(ctx, http.MethodDelete, planPath(key), nil, nil, nil, nil)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return wrapHubError(planPath(key), err)
	}
	return nil
}

func (c *_RestPlanClient) SearchPlan(ctx context.Context, isDepartureHub bool, instructionID string, direction model.Direction) (model.HandoffPlan, error) {
	query := url.Values{
		"is_departure_mh":     []string{flagParam(isDepartureHub)},
		"trsp_instruction_id": []string{instructionID},
		"is_vanning":          []string{flagParam(direction == model.DirectionVanning)},
	}

	resp := planResponse{}
	err := c.rest.Execute(ctx, http.MethodGet, "plan_search", query, nil, nil, &resp)
	if isNotFound(err) {
		return model.HandoffPlan{}, fmt.Errorf("%s %s departure=%t: %w", direction, instructionID, isDepartureHub, model.ErrPlanNotFound)
	}
	if err != nil {
		return model.HandoffPlan{}, wrapHubError("plan_search", err)
	}
	if !resp.Result {
		return model.HandoffPlan{}, fmt.Errorf("%s %s departure=%t: %s: %w", direction, instructionID, isDepartureHub, resp.ErrorMsg, model.ErrPlanNotFound)
	}
	return decodePlan("plan_search", resp.Plan)
}

func (c *_RestPlanClient) write(ctx context.Context, method string, key model.PlanKey, plan model.HandoffPlan) error {
	resp := resultResponse{Result: true}
	if err := c.rest.Execute(ctx, method, planPath(key), nil, nil, plan, &resp); err != nil {
		return wrapHubError(planPath(key), err)
	}
	if !resp.Result {
		return fmt.Errorf("%s %s: %s: %w", method, planPath(key), resp.ErrorMsg, model.ErrHubRejected)
	}
	return nil
}

func decodePlan(path string, raw json.RawMessage) (model.HandoffPlan, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return model.HandoffPlan{}, fmt.Errorf("%s: plan is missing: %w", path, model.ErrHubRejected)
	}
	plan := model.HandoffPlan{}
	if err := json.Unmarshal(raw, &plan); err != nil {
		return model.HandoffPlan{}, fmt.Errorf("%s: %s: %w", path, err.Error(), model.ErrHubRejected)
	}
	return plan, nil
}

// flagParam encodes a boolean query parameter the way plans carry their flags.
func flagParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func isNotFound(err error) bool {
	var httpErr *util.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}

func wrapHubError(path string, err error) error {
	var httpErr *util.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%s: status %d: %s: %w", path, httpErr.Status, httpErr.Message, model.ErrHubRejected)
	}
	return fmt.Errorf("%s: %s: %w", path, err.Error(), model.ErrHubRejected)
}
