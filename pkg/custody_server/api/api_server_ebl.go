package api

import (
	"net/http"

	"github.com/cologi/hubcustody/pkg/custody_server/custody"
	"github.com/gorilla/mux"
)

func (a *API) issueEBL(w http.ResponseWriter, r *http.Request) {
	req := custody.IssueRequest{}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.InstructionID = mux.Vars(r)["instruction_id"]

	rec, err := a.custodian.Issue(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, rec)
}

func (a *API) getEBLForTractor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	result, err := a.custodian.GetForTractor(r.Context(), vars["instruction_id"], vars["tractor_giai"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// checkBL answers 400 with PARAM_ERROR whenever the check itself could not run.
func (a *API) checkBL(w http.ResponseWriter, r *http.Request) {
	req := custody.CheckBLRequest{}
	err := decodeBody(w, r, &req)
	if err == nil {
		var result custody.CheckBLResult
		result, err = a.custodian.CheckBL(r.Context(), req)
		if err == nil {
			writeJSON(w, r, http.StatusOK, result)
			return
		}
	}

	logError(r, http.StatusBadRequest, err)
	writeJSON(w, r, http.StatusBadRequest, custody.CheckBLResult{Result: false, ErrMsg: custody.CheckErrParameter})
}

// fetchEBL serves peer connectors pulling a B/L on behalf of its shipper.
func (a *API) fetchEBL(w http.ResponseWriter, r *http.Request) {
	req := custody.FetchForPartyRequest{
		InstructionID: mux.Vars(r)["instruction_id"],
		RecipientCID:  r.URL.Query().Get("recipient_cid"),
		ShipperCID:    r.URL.Query().Get("shipper_cid"),
	}
	resp, err := a.custodian.FetchForParty(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}
