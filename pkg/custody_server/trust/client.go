// Package trust is the client of the Trust service, which signs B/Ls and keeps their ownership ledger.
package trust

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

type RegisterRequest struct {
	CID    string          `json:"cid"`
	BLJSON json.RawMessage `json:"bl_json"`
}

type RegisterResponse struct {
	BLID     model.LedgerID  `json:"bl_id"`
	SignedBL json.RawMessage `json:"signed_bl"`
}

type ApproveRequest struct {
	CID      string          `json:"cid"`
	BLID     model.LedgerID  `json:"bl_id"`
	SignedBL json.RawMessage `json:"signed_bl"`
}

type ApproveResponse struct {
	SignedSignedBL json.RawMessage `json:"signed_signed_bl"`
}

type TransferRequest struct {
	CID       string         `json:"cid"`
	BLID      model.LedgerID `json:"bl_id"`
	ToAddress string         `json:"to_address"`
}

type UsedRequest struct {
	CID  string         `json:"cid"`
	BLID model.LedgerID `json:"bl_id"`
}

type DetailResponse struct {
	Owner      string `json:"owner"`
	Status     string `json:"status"`
	Invalidate bool   `json:"invalidate"`
	Used       bool   `json:"used"`
}

type VerifySignatureRequest struct {
	CID       string          `json:"cid"`
	Signature json.RawMessage `json:"signature"`
}

type VerifySignatureResponse struct {
	Status  string `json:"status"`
	IsValid bool   `json:"isValid"`
}

type VerifyBLRequest struct {
	CID      string          `json:"cid"`
	BLID     model.LedgerID  `json:"bl_id"`
	SignedBL json.RawMessage `json:"signed_bl"`
}

type VerifyBLResponse struct {
	Status string `json:"status"`
	Result bool   `json:"result"`
}

const StatusSuccess = "success"

type resultResponse struct {
	Result *bool `json:"result"`
}

// Client is the Trust service contract. Every non-success answer is reported as an error
// wrapping model.ErrLedgerRejected.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Approve(ctx context.Context, req ApproveRequest) (ApproveResponse, error)
	Transfer(ctx context.Context, req TransferRequest) error
	Used(ctx context.Context, req UsedRequest) error
	Detail(ctx context.Context, blID model.LedgerID) (DetailResponse, error)
	VerifySignature(ctx context.Context, req VerifySignatureRequest) (VerifySignatureResponse, error)
	VerifyBL(ctx context.Context, req VerifyBLRequest) (VerifyBLResponse, error)
}

type _RestClient struct {
	rest *util.RestClient
}

func NewRestClient(server string, timeout time.Duration) *_RestClient {
	return &_RestClient{rest: util.NewRestClient(server, timeout)}
}

func (c *_RestClient) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	resp := RegisterResponse{}
	if err := c.execute(ctx, http.MethodPost, "bl/register", nil, req, &resp); err != nil {
		return RegisterResponse{}, err
	}
	if len(resp.SignedBL) == 0 {
		return RegisterResponse{}, fmt.Errorf("bl/register: signed_bl is missing: %w", model.ErrLedgerRejected)
	}
	return resp, nil
}

func (c *_RestClient) Approve(ctx context.Context, req ApproveRequest) (ApproveResponse, error) {
	resp := ApproveResponse{}
	if err := c.execute(ctx, http.MethodPost, "bl/approve", nil, req, &resp); err != nil {
		return ApproveResponse{}, err
	}
	if len(resp.SignedSignedBL) == 0 || string(resp.SignedSignedBL) == "null" {
		return ApproveResponse{}, fmt.Errorf("bl/approve: signed_signed_bl is missing: %w", model.ErrLedgerRejected)
	}
	return resp, nil
}

func (c *_RestClient) Transfer(ctx context.Context, req TransferRequest) error {
	resp := resultResponse{}
	if err := c.execute(ctx, http.MethodPost, "bl/transfer", nil, req, &resp); err != nil {
		return err
	}
	if resp.Result == nil || !*resp.Result {
		return fmt.Errorf("bl/transfer: result is false: %w", model.ErrLedgerRejected)
	}
	return nil
}

func (c *_RestClient) Used(ctx context.Context, req UsedRequest) error {
	resp := resultResponse{}
	if err := c.execute(ctx, http.MethodPost, "bl/used", nil, req, &resp); err != nil {
		return err
	}
	if resp.Result != nil && !*resp.Result {
		return fmt.Errorf("bl/used: result is false: %w", model.ErrLedgerRejected)
	}
	return nil
}

func (c *_RestClient) Detail(ctx context.Context, blID model.LedgerID) (DetailResponse, error) {
	resp := DetailResponse{}
	query := url.Values{"bl_id": []string{blID.String()}}
	if err := c.execute(ctx, http.MethodGet, "bl/detail", query, nil, &resp); err != nil {
		return DetailResponse{}, err
	}
	return resp, nil
}

func (c *_RestClient) VerifySignature(ctx context.Context, req VerifySignatureRequest) (VerifySignatureResponse, error) {
	resp := VerifySignatureResponse{}
	if err := c.execute(ctx, http.MethodPost, "sign/verify", nil, req, &resp); err != nil {
		return VerifySignatureResponse{}, err
	}
	return resp, nil
}

func (c *_RestClient) VerifyBL(ctx context.Context, req VerifyBLRequest) (VerifyBLResponse, error) {
	resp := VerifyBLResponse{}
	if err := c.execute(ctx, http.MethodPost, "bl/verify", nil, req, &resp); err != nil {
		return VerifyBLResponse{}, err
	}
	return resp, nil
}

func (c *_RestClient) execute(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	err := c.rest.Execute(ctx, method, path, query, nil, body, result)
	if err == nil {
		return nil
	}
	var httpErr *util.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%s: status %d: %s: %w", path, httpErr.Status, httpErr.Message, model.ErrLedgerRejected)
	}
	return fmt.Errorf("%s: %s: %w", path, err.Error(), model.ErrLedgerRejected)
}
