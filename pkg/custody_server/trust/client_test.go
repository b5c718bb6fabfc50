package trust_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"github.com/stretchr/testify/suite"
)

type TrustClientTestSuite struct {
	suite.Suite
	ctx      context.Context
	mux      *http.ServeMux
	server   *httptest.Server
	client   trust.Client
	requests map[string]map[string]any
}

func TestTrustClient(t *testing.T) {
	suite.Run(t, new(TrustClientTestSuite))
}

func (s *TrustClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.client = trust.NewRestClient(s.server.URL+"/trust/", time.Second)
	s.requests = make(map[string]map[string]any)
}

func (s *TrustClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *TrustClientTestSuite) handle(path string, status int, response string) {
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body := map[string]any{}
			s.NoError(json.NewDecoder(r.Body).Decode(&body))
			s.requests[path] = body
		} else {
			s.requests[path] = map[string]any{"bl_id": r.URL.Query().Get("bl_id")}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	})
}

func (s *TrustClientTestSuite) TestRegister() {
	s.handle("/trust/bl/register", http.StatusOK, `{"bl_id": 15, "signed_bl": {"exchanged_document": {"id": "d"}}}`)

	resp, err := s.client.Register(s.ctx, trust.RegisterRequest{CID: "carrier1", BLJSON: json.RawMessage(`{"a":1}`)})
	s.Require().NoError(err)
	s.Assert().Equal(model.LedgerID(15), resp.BLID)
	s.Assert().JSONEq(`{"exchanged_document": {"id": "d"}}`, string(resp.SignedBL))
	s.Assert().Equal("carrier1", s.requests["/trust/bl/register"]["cid"])
	s.Assert().Equal(map[string]any{"a": float64(1)}, s.requests["/trust/bl/register"]["bl_json"])
}

func (s *TrustClientTestSuite) TestApprove() {
	s.handle("/trust/bl/approve", http.StatusOK, `{"signed_signed_bl": {"v": 2}}`)

	resp, err := s.client.Approve(s.ctx, trust.ApproveRequest{CID: "shipper1", BLID: 3, SignedBL: json.RawMessage(`{"v":1}`)})
	s.Require().NoError(err)
	s.Assert().JSONEq(`{"v": 2}`, string(resp.SignedSignedBL))
	s.Assert().Equal(float64(3), s.requests["/trust/bl/approve"]["bl_id"])
}

func (s *TrustClientTestSuite) TestApproveWithoutEnvelope() {
	s.handle("/trust/bl/approve", http.StatusOK, `{}`)

	_, err := s.client.Approve(s.ctx, trust.ApproveRequest{CID: "shipper1", BLID: 3})
	s.Assert().ErrorIs(err, model.ErrLedgerRejected)
}

func (s *TrustClientTestSuite) TestTransfer() {
	s.handle("/trust/bl/transfer", http.StatusOK, `{"result": true}`)

	err := s.client.Transfer(s.ctx, trust.TransferRequest{CID: "shipper1", BLID: 3, ToAddress: "0xrecipient"})
	s.Require().NoError(err)
	s.Assert().Equal("0xrecipient", s.requests["/trust/bl/transfer"]["to_address"])
}

func (s *TrustClientTestSuite) TestTransferRejected() {
	s.handle("/trust/bl/transfer", http.StatusOK, `{"result": false}`)

	err := s.client.Transfer(s.ctx, trust.TransferRequest{CID: "shipper1", BLID: 3, ToAddress: "0xrecipient"})
	s.Assert().ErrorIs(err, model.ErrLedgerRejected)
	s.Assert().ErrorIs(err, model.ErrUpstream)
}

func (s *TrustClientTestSuite) TestUsedFailureStatus() {
	s.handle("/trust/bl/used", http.StatusInternalServerError, `boom`)

	err := s.client.Used(s.ctx, trust.UsedRequest{CID: "recipient1", BLID: 3})
	s.Assert().ErrorIs(err, model.ErrLedgerRejected)
	s.Assert().Contains(err.Error(), "500")
}

func (s *TrustClientTestSuite) TestDetail() {
	s.handle("/trust/bl/detail", http.StatusOK, `{"owner": "0xrecipient", "status": "success", "invalidate": false, "used": true}`)

	resp, err := s.client.Detail(s.ctx, 9)
	s.Require().NoError(err)
	s.Assert().Equal(trust.DetailResponse{Owner: "0xrecipient", Status: trust.StatusSuccess, Used: true}, resp)
	s.Assert().Equal("9", s.requests["/trust/bl/detail"]["bl_id"])
}

func (s *TrustClientTestSuite) TestVerify() {
	s.handle("/trust/sign/verify", http.StatusOK, `{"status": "success", "isValid": true}`)
	s.handle("/trust/bl/verify", http.StatusOK, `{"status": "success", "result": false}`)

	sig, err := s.client.VerifySignature(s.ctx, trust.VerifySignatureRequest{CID: "recipient1", Signature: json.RawMessage(`{}`)})
	s.Require().NoError(err)
	s.Assert().True(sig.IsValid)

	bl, err := s.client.VerifyBL(s.ctx, trust.VerifyBLRequest{CID: "carrier1", BLID: 9, SignedBL: json.RawMessage(`{}`)})
	s.Require().NoError(err)
	s.Assert().False(bl.Result)
}
