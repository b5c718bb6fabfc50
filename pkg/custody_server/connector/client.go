// Package connector is the client of the peer connector that fronts another party's custody server.
package connector

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

type FetchEBLRequest struct {
	InstructionID string
	RecipientCID  string
	ShipperCID    string
}

// FetchEBLResponse is also the body served by the public fetch endpoint of this server.
type FetchEBLResponse struct {
	Result        bool            `json:"result"`
	ErrMsg        string          `json:"err_msg"`
	CarrierCID    string          `json:"carrier_cid"`
	RecipientCID  string          `json:"recipient_cid"`
	ShipperCID    string          `json:"shipper_cid"`
	InstructionID string          `json:"trsp_instruction_id"`
	BLNo          model.LedgerID  `json:"bl_no"`
	BL            json.RawMessage `json:"bl"`
}

type Client interface {
	// FetchEBL asks the connector to pull the B/L from the carrier whose server is at carrierEndpoint.
	// The carrier starts the transfer to the shipper as a side effect.
	// It returns model.ErrBLNotIssued when the carrier has no B/L for the instruction.
	FetchEBL(ctx context.Context, carrierEndpoint string, req FetchEBLRequest) (FetchEBLResponse, error)
}

type _RestClient struct {
	rest *util.RestClient
}

func NewRestClient(server string, timeout time.Duration) *_RestClient {
	return &_RestClient{rest: util.NewRestClient(server, timeout)}
}

func (c *_RestClient) FetchEBL(ctx context.Context, carrierEndpoint string, req FetchEBLRequest) (FetchEBLResponse, error) {
	path := "ebl/" + url.PathEscape(req.InstructionID)
	query := url.Values{
		"recipient_cid": []string{req.RecipientCID},
		"shipper_cid":   []string{req.ShipperCID},
	}
	header := http.Header{"X-ENDPOINT": []string{carrierEndpoint}}

	resp := FetchEBLResponse{}
	err := c.rest.Execute(ctx, http.MethodGet, path, query, header, nil, &resp)
	var httpErr *util.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status == http.StatusForbidden {
			return FetchEBLResponse{}, fmt.Errorf("%s: instruction %s: %w", path, req.InstructionID, model.ErrBLNotIssued)
		}
		return FetchEBLResponse{}, fmt.Errorf("%s: status %d: %s: %w", path, httpErr.Status, httpErr.Message, model.ErrConnectorRejected)
	}
	if err != nil {
		return FetchEBLResponse{}, fmt.Errorf("%s: %s: %w", path, err.Error(), model.ErrConnectorRejected)
	}
	if !resp.Result {
		return FetchEBLResponse{}, fmt.Errorf("%s: %s: %w", path, resp.ErrMsg, model.ErrConnectorRejected)
	}
	return resp, nil
}
