package custody_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/custody"
	"github.com/cologi/hubcustody/pkg/custody_server/directory"
	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/cologi/hubcustody/pkg/custody_server/storage"
	"github.com/cologi/hubcustody/pkg/custody_server/storage/filestore"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"github.com/cologi/hubcustody/pkg/util"
	mock_trust "github.com/cologi/hubcustody/test/mock/custody_server/trust"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

const instructionID = "100001"

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

var testParties = []model.Party{
	{CID: "carrier1", Name: "Carrier One", Role: model.PartyRoleCarrier, SettlementAddress: "0xc1"},
	{CID: "shipper1", Name: "Shipper One", Role: model.PartyRoleShipper, SettlementAddress: "0xs1", TractorGIAI: "T1"},
	{CID: "recipient1", Name: "Recipient One", Role: model.PartyRoleRecipient, SettlementAddress: "0xr1", TractorGIAI: "T2"},
}

var testHubs = []model.Hub{
	{GLN: "4149999900010001", Name: "Departure MH"},
	{GLN: "4149999900020001", Name: "Arrival MH"},
}

type CustodianTestSuite struct {
	suite.Suite

	ctx       context.Context
	ctrl      *gomock.Controller
	trust     *mock_trust.MockClient
	storage   storage.BLRecordStorage
	custodian custody.Custodian
}

func TestCustodian(t *testing.T) {
	suite.Run(t, new(CustodianTestSuite))
}

func (s *CustodianTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.trust = mock_trust.NewMockClient(s.ctrl)

	fs, err := filestore.NewFileStorage(s.T().TempDir())
	s.Require().NoError(err)
	s.storage = fs

	s.custodian = custody.NewCustodian(s.storage, s.trust, directory.NewStaticDirectory(testParties, testHubs),
		custody.WithClock(func() time.Time { return testNow }),
	)
}

func (s *CustodianTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CustodianTestSuite) issue(ledgerID model.LedgerID) model.BLRecord {
	s.trust.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req trust.RegisterRequest) (trust.RegisterResponse, error) {
			s.Equal("carrier1", req.CID)
			return trust.RegisterResponse{BLID: ledgerID, SignedBL: req.BLJSON}, nil
		},
	)
	rec, err := s.custodian.Issue(s.ctx, custody.IssueRequest{
		InstructionID: instructionID,
		CarrierCID:    "carrier1",
		ShipperCID:    "shipper1",
		RecipientCID:  "recipient1",
		DepartureHub:  "4149999900010001",
		ArrivalHub:    "4149999900020001",
		TrailerGIAIs:  []string{"R1"},
	})
	s.Require().NoError(err)
	return rec
}

// expectApprove makes the Trust service approve a receipt by cid, echoing the envelope.
func (s *CustodianTestSuite) expectApprove(cid string) *gomock.Call {
	return s.trust.EXPECT().Approve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req trust.ApproveRequest) (trust.ApproveResponse, error) {
			s.Equal(cid, req.CID)
			return trust.ApproveResponse{SignedSignedBL: req.SignedBL}, nil
		},
	)
}

func (s *CustodianTestSuite) stored() model.BLRecord {
	tx, ctx, err := s.storage.CreateTx(s.ctx)
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()
	rec, err := s.storage.GetBLRecord(ctx, tx, instructionID)
	s.Require().NoError(err)
	return rec
}

func (s *CustodianTestSuite) document() bill_of_lading.ElectronicBillOfLading {
	doc, err := ebl.DecodeDocument(s.stored().SignedBL)
	s.Require().NoError(err)
	return doc
}

func (s *CustodianTestSuite) TestIssue() {
	rec := s.issue(42)
	s.Assert().Equal(model.LedgerID(42), rec.LedgerID)
	s.Assert().Equal("carrier1", rec.CurrentOwner)

	owner, err := s.custodian.CurrentOwner(s.ctx, instructionID)
	s.Require().NoError(err)
	s.Assert().Equal("carrier1", owner)

	doc := s.document()
	s.Assert().Equal("carrier1", ebl.IssuerID(&doc))
	s.Assert().Equal("shipper1", ebl.ConsignorID(&doc))
	s.Assert().Equal("recipient1", ebl.ConsigneeID(&doc))
	s.Assert().Equal([]string{"R1"}, ebl.TrailerGIAIs(&doc))
	s.Assert().Equal("4149999900010001:Departure MH", doc.SupplyChainConsignment.CarrierAcceptanceLocation.Name.Value)
	s.Assert().Equal("2025-03-01T09:00:00.000000", doc.ExchangedDocument.IssueDateTime.Value)
	tractor, ok := ebl.TractorGIAI(&doc, bill_of_lading.StageCodeShipper)
	s.Assert().True(ok)
	s.Assert().Equal("T1", tractor)
	tractor, ok = ebl.TractorGIAI(&doc, bill_of_lading.StageCodeRecipient)
	s.Assert().True(ok)
	s.Assert().Equal("T2", tractor)
}

func (s *CustodianTestSuite) TestIssueFailures() {
	_, err := s.custodian.Issue(s.ctx, custody.IssueRequest{InstructionID: instructionID, CarrierCID: "carrier1"})
	s.Assert().ErrorIs(err, model.ErrInvalidParameter)
	s.Assert().Contains(err.Error(), "shipper_cid")

	_, err = s.custodian.Issue(s.ctx, custody.IssueRequest{InstructionID: instructionID, CarrierCID: "carrier1", ShipperCID: "nobody", RecipientCID: "recipient1"})
	s.Assert().ErrorIs(err, model.ErrPartyNotFound)

	s.issue(42)
	s.trust.EXPECT().Register(gomock.Any(), gomock.Any()).Return(trust.RegisterResponse{}, model.ErrLedgerRejected)
	_, err = s.custodian.Issue(s.ctx, custody.IssueRequest{InstructionID: instructionID, CarrierCID: "carrier1", ShipperCID: "shipper1", RecipientCID: "recipient1"})
	s.Assert().ErrorIs(err, model.ErrLedgerRejected)

	_, err = s.custodian.CurrentOwner(s.ctx, instructionID)
	s.Assert().ErrorIs(err, model.ErrBLNotIssued)
}

func (s *CustodianTestSuite) TestReceiveIsIdempotent() {
	s.issue(42)
	s.expectApprove("shipper1").Times(1)

	rec, err := s.custodian.Receive(s.ctx, "shipper1", instructionID)
	s.Require().NoError(err)
	s.Assert().Equal("shipper1", rec.CurrentOwner)

	rec, err = s.custodian.Receive(s.ctx, "shipper1", instructionID)
	s.Require().NoError(err)
	s.Assert().Equal("shipper1", rec.CurrentOwner)
	s.Assert().Equal("shipper1", s.stored().CurrentOwner)
}

func (s *CustodianTestSuite) TestReceiveRejectsRegression() {
	s.issue(42)
	s.expectApprove("recipient1")

	_, err := s.custodian.Receive(s.ctx, "recipient1", instructionID)
	s.Require().NoError(err)

	_, err = s.custodian.Receive(s.ctx, "shipper1", instructionID)
	s.Assert().ErrorIs(err, model.ErrOwnershipRegression)
	_, err = s.custodian.Receive(s.ctx, "stranger", instructionID)
	s.Assert().ErrorIs(err, model.ErrUnknownCustodian)
	s.Assert().Equal("recipient1", s.stored().CurrentOwner)

	_, err = s.custodian.Receive(s.ctx, "shipper1", "999999")
	s.Assert().ErrorIs(err, model.ErrBLNotIssued)
}

func (s *CustodianTestSuite) TestReceiveApproveFailure() {
	s.issue(42)
	s.trust.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(trust.ApproveResponse{}, model.ErrLedgerRejected)

	_, err := s.custodian.Receive(s.ctx, "shipper1", instructionID)
	s.Assert().ErrorIs(err, model.ErrLedgerRejected)
	s.Assert().Equal("carrier1", s.stored().CurrentOwner)
}

func (s *CustodianTestSuite) TestInitiateTransfer() {
	s.issue(42)
	s.trust.EXPECT().Transfer(gomock.Any(), trust.TransferRequest{CID: "carrier1", BLID: 42, ToAddress: "0xs1"}).Return(nil)

	s.Require().NoError(s.custodian.InitiateTransfer(s.ctx, "carrier1", "shipper1", instructionID))

	rec := s.stored()
	s.Assert().Equal("carrier1", rec.CurrentOwner)
	state := custody.StateOf(&rec, custody.Chain{Carrier: "carrier1", Shipper: "shipper1", Recipient: "recipient1"})
	s.Assert().Equal(custody.StatePendingTransfer, state.Kind)
	s.Assert().Equal("shipper1", state.PendingTo)
}

func (s *CustodianTestSuite) TestInitiateTransferFailures() {
	s.issue(42)

	err := s.custodian.InitiateTransfer(s.ctx, "shipper1", "recipient1", instructionID)
	s.Assert().ErrorIs(err, model.ErrNotCurrentOwner)

	s.trust.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(model.ErrLedgerRejected)
	err = s.custodian.InitiateTransfer(s.ctx, "carrier1", "shipper1", instructionID)
	s.Assert().ErrorIs(err, model.ErrLedgerRejected)
	s.Assert().Empty(s.stored().PendingTransferTo)
}

func (s *CustodianTestSuite) TestHandOffThenReceive() {
	s.issue(42)
	gomock.InOrder(
		s.expectApprove("shipper1"),
		s.trust.EXPECT().Transfer(gomock.Any(), trust.TransferRequest{CID: "shipper1", BLID: 42, ToAddress: "0xr1"}).Return(nil),
		s.expectApprove("recipient1"),
	)

	s.Require().NoError(s.custodian.HandOff(s.ctx, instructionID, "shipper1", "recipient1"))
	rec := s.stored()
	s.Assert().Equal("shipper1", rec.CurrentOwner)
	s.Assert().Equal("recipient1", rec.PendingTransferTo)

	_, err := s.custodian.Receive(s.ctx, "recipient1", instructionID)
	s.Require().NoError(err)
	rec = s.stored()
	s.Assert().Equal("recipient1", rec.CurrentOwner)
	s.Assert().Empty(rec.PendingTransferTo)

	// Already at the target: nothing reaches the Trust service.
	s.Require().NoError(s.custodian.HandOff(s.ctx, instructionID, "shipper1", "recipient1"))
	s.Require().NoError(s.custodian.HandOff(s.ctx, instructionID, "carrier1", "shipper1"))
}

func (s *CustodianTestSuite) TestHandOffDoesNotRepeatPendingTransfer() {
	s.issue(42)
	s.expectApprove("shipper1").Times(1)
	s.trust.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s.Require().NoError(s.custodian.HandOff(s.ctx, instructionID, "shipper1", "recipient1"))
	s.Require().NoError(s.custodian.HandOff(s.ctx, instructionID, "shipper1", "recipient1"))
}

func (s *CustodianTestSuite) TestMarkUsed() {
	s.issue(42)
	s.trust.EXPECT().Used(gomock.Any(), trust.UsedRequest{CID: "recipient1", BLID: 42}).Return(nil)

	s.custodian.MarkUsed(s.ctx, "", instructionID)
	s.Assert().True(s.stored().Used)
}

func (s *CustodianTestSuite) TestMarkUsedSwallowsFailures() {
	s.issue(42)
	s.trust.EXPECT().Used(gomock.Any(), trust.UsedRequest{CID: "recipient1", BLID: 42}).Return(model.ErrLedgerRejected)

	s.custodian.MarkUsed(s.ctx, "recipient1", instructionID)
	s.Assert().False(s.stored().Used)

	// No record: nothing reaches the Trust service and nothing is raised.
	s.custodian.MarkUsed(s.ctx, "recipient1", "999999")
}

func (s *CustodianTestSuite) TestFetchForParty() {
	s.issue(42)

	_, err := s.custodian.FetchForParty(s.ctx, custody.FetchForPartyRequest{InstructionID: instructionID, RecipientCID: "shipper1", ShipperCID: "recipient1"})
	s.Assert().ErrorIs(err, model.ErrPartyMismatch)

	_, err = s.custodian.FetchForParty(s.ctx, custody.FetchForPartyRequest{InstructionID: "999999", RecipientCID: "recipient1", ShipperCID: "shipper1"})
	s.Assert().ErrorIs(err, model.ErrBLNotIssued)

	_, err = s.custodian.FetchForParty(s.ctx, custody.FetchForPartyRequest{InstructionID: instructionID})
	s.Assert().ErrorIs(err, model.ErrInvalidParameter)

	s.trust.EXPECT().Transfer(gomock.Any(), trust.TransferRequest{CID: "carrier1", BLID: 42, ToAddress: "0xs1"}).Return(nil).Times(1)
	req := custody.FetchForPartyRequest{InstructionID: instructionID, RecipientCID: "recipient1", ShipperCID: "shipper1"}
	resp, err := s.custodian.FetchForParty(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().True(resp.Result)
	s.Assert().Equal("carrier1", resp.CarrierCID)
	s.Assert().Equal(model.LedgerID(42), resp.BLNo)
	s.Assert().NotEmpty(resp.BL)

	// The transfer is already pending.
	_, err = s.custodian.FetchForParty(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().Equal("carrier1", s.stored().CurrentOwner)
}

func (s *CustodianTestSuite) TestGetForTractor() {
	s.issue(42)

	bl, err := s.custodian.GetForTractor(s.ctx, instructionID, "T2")
	s.Require().NoError(err)
	s.Assert().Equal("carrier1", bl.BLCID)
	s.Assert().Equal([]string{"R1"}, bl.TrailerGIAIs)
	s.Assert().Equal(model.LedgerID(42), bl.BLNo)

	_, err = s.custodian.GetForTractor(s.ctx, instructionID, "T1")
	s.Assert().ErrorIs(err, model.ErrTractorMismatch)
	_, err = s.custodian.GetForTractor(s.ctx, "999999", "T2")
	s.Assert().ErrorIs(err, model.ErrBLNotIssued)
}

func (s *CustodianTestSuite) checkRequest() custody.CheckBLRequest {
	return custody.CheckBLRequest{
		RecipientCID:  "recipient1",
		InstructionID: instructionID,
		TractorGIAI:   "T2",
		BLCID:         "carrier1",
		BLNo:          util.Ptr(model.LedgerID(42)),
		BL:            s.stored().SignedBL,
	}
}

func (s *CustodianTestSuite) TestCheckBL() {
	s.issue(42)
	req := s.checkRequest()

	s.trust.EXPECT().VerifySignature(gomock.Any(), gomock.Any()).Return(trust.VerifySignatureResponse{Status: trust.StatusSuccess, IsValid: true}, nil).Times(4)
	s.trust.EXPECT().VerifyBL(gomock.Any(), gomock.Any()).Return(trust.VerifyBLResponse{Status: trust.StatusSuccess, Result: true}, nil).Times(3)
	gomock.InOrder(
		s.trust.EXPECT().Detail(gomock.Any(), model.LedgerID(42)).Return(trust.DetailResponse{Owner: "0xr1", Status: trust.StatusSuccess}, nil),
		s.trust.EXPECT().Detail(gomock.Any(), model.LedgerID(42)).Return(trust.DetailResponse{Owner: "0xs1", Status: trust.StatusSuccess}, nil),
		s.trust.EXPECT().Detail(gomock.Any(), model.LedgerID(42)).Return(trust.DetailResponse{Owner: "0xr1", Status: trust.StatusSuccess, Used: true}, nil),
	)

	result, err := s.custodian.CheckBL(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().Equal(custody.CheckBLResult{Result: true}, result)

	result, err = s.custodian.CheckBL(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().Equal(custody.CheckBLResult{ErrMsg: custody.CheckErrSignature}, result)

	result, err = s.custodian.CheckBL(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().Equal(custody.CheckBLResult{ErrMsg: custody.CheckErrUsedBL}, result)

	s.trust.EXPECT().VerifyBL(gomock.Any(), gomock.Any()).Return(trust.VerifyBLResponse{Status: trust.StatusSuccess, Result: false}, nil)
	result, err = s.custodian.CheckBL(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().Equal(custody.CheckBLResult{ErrMsg: custody.CheckErrInvalidBL}, result)
}

func (s *CustodianTestSuite) TestCheckBLRejectedEarly() {
	s.issue(42)

	req := s.checkRequest()
	s.trust.EXPECT().VerifySignature(gomock.Any(), gomock.Any()).Return(trust.VerifySignatureResponse{Status: trust.StatusSuccess, IsValid: false}, nil)
	result, err := s.custodian.CheckBL(s.ctx, req)
	s.Require().NoError(err)
	s.Assert().Equal(custody.CheckErrSignature, result.ErrMsg)

	req.TractorGIAI = "T1"
	result, err = s.custodian.CheckBL(s.ctx, req)
	s.Assert().ErrorIs(err, model.ErrTractorMismatch)
	s.Assert().Equal(custody.CheckErrParameter, result.ErrMsg)

	req = s.checkRequest()
	req.BLNo = nil
	_, err = s.custodian.CheckBL(s.ctx, req)
	s.Assert().ErrorIs(err, model.ErrInvalidParameter)
	s.Assert().Contains(err.Error(), "bl_no")

	req = s.checkRequest()
	req.InstructionID = "999999"
	_, err = s.custodian.CheckBL(s.ctx, req)
	s.Assert().ErrorIs(err, model.ErrBLNotIssued)

	req = s.checkRequest()
	req.BL = json.RawMessage(`{"not": "a b/l"}`)
	_, err = s.custodian.CheckBL(s.ctx, req)
	s.Assert().ErrorIs(err, model.ErrMalformedBLRecord)
}

func (s *CustodianTestSuite) TestCheckBLSkipped() {
	custodian := custody.NewCustodian(s.storage, s.trust, directory.NewStaticDirectory(nil, nil), custody.WithSkipBLCheck(true))

	result, err := custodian.CheckBL(s.ctx, custody.CheckBLRequest{})
	s.Require().NoError(err)
	s.Assert().True(result.Result)
}

func (s *CustodianTestSuite) TestTrustErrorsKeepTheirClass() {
	s.issue(42)
	s.trust.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(trust.ApproveResponse{}, errors.New("connection reset"))

	_, err := s.custodian.Receive(s.ctx, "shipper1", instructionID)
	s.Assert().Error(err)
	s.Assert().Equal(500, model.ErrorToHttpStatus(err))
}
