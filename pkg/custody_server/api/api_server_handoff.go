package api

import (
	"context"
	"io"
	"net/http"

	"github.com/cologi/hubcustody/pkg/custody_server/handoff"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/gorilla/mux"
)

// HandoffResult is the answer to a hub controller. Every failure is reported with status 400.
type HandoffResult struct {
	Result      bool               `json:"result"`
	ErrMsg      string             `json:"err_msg"`
	UpdatedPlan *model.HandoffPlan `json:"updated_plan"`
}

func (a *API) vanningResult(w http.ResponseWriter, r *http.Request) {
	a.handoffResult(w, r, a.processor.ProcessVanningResult)
}

func (a *API) devanningResult(w http.ResponseWriter, r *http.Request) {
	a.handoffResult(w, r, a.processor.ProcessDevanningResult)
}

func (a *API) handoffResult(w http.ResponseWriter, r *http.Request, process func(context.Context, []byte) (*model.HandoffPlan, error)) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err == nil {
		var plan *model.HandoffPlan
		plan, err = process(r.Context(), body)
		if err == nil {
			writeJSON(w, r, http.StatusOK, HandoffResult{Result: true, UpdatedPlan: plan})
			return
		}
	}

	logError(r, model.ErrorToHttpStatus(err), err)
	writeJSON(w, r, http.StatusBadRequest, HandoffResult{Result: false, ErrMsg: err.Error()})
}

func (a *API) assignRoute(w http.ResponseWriter, r *http.Request) {
	req := handoff.AssignRouteRequest{}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.InstructionID = mux.Vars(r)["instruction_id"]

	route, err := a.planner.AssignRoute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, route)
}

func (a *API) updateRouteParty(w http.ResponseWriter, r *http.Request) {
	req := handoff.UpdateRoutePartyRequest{}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.InstructionID = mux.Vars(r)["instruction_id"]

	route, err := a.planner.UpdateRouteParty(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, route)
}

func (a *API) removeRoute(w http.ResponseWriter, r *http.Request) {
	req := handoff.RemoveRouteRequest{
		InstructionID: mux.Vars(r)["instruction_id"],
		DepartureHub:  r.URL.Query().Get("departure_mh"),
		ArrivalHub:    r.URL.Query().Get("arrival_mh"),
	}
	if err := a.planner.RemoveRoute(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
