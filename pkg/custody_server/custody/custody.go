// Package custody moves the ownership of B/Ls along their custody chain. It keeps the local
// B/L records in step with the Trust service ledger.
package custody

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/custody_server/connector"
	"github.com/cologi/hubcustody/pkg/custody_server/directory"
	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/keylock"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/cologi/hubcustody/pkg/custody_server/storage"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"go.opentelemetry.io/otel/metric"
)

type IssueRequest struct {
	InstructionID string   `json:"trsp_instruction_id"`
	CarrierCID    string   `json:"carrier_cid"`
	ShipperCID    string   `json:"shipper_cid"`
	RecipientCID  string   `json:"recipient_cid"`
	DepartureHub  string   `json:"departure_mh"`
	ArrivalHub    string   `json:"arrival_mh"`
	TrailerGIAIs  []string `json:"trailer_giai_list"`
}

type FetchForPartyRequest struct {
	InstructionID string `json:"trsp_instruction_id"`
	RecipientCID  string `json:"recipient_cid"`
	ShipperCID    string `json:"shipper_cid"`
}

// TractorBL is what the hub barcode application reads for a tractor.
type TractorBL struct {
	CarrierCID    string          `json:"carrier_cid"`
	RecipientCID  string          `json:"recipient_cid"`
	ShipperCID    string          `json:"shipper_cid"`
	InstructionID string          `json:"trsp_instruction_id"`
	TractorGIAI   string          `json:"tractor_giai"`
	TrailerGIAIs  []string        `json:"trailers_giai"`
	BLCID         string          `json:"bl_cid"`
	BLNo          model.LedgerID  `json:"bl_no"`
	BL            json.RawMessage `json:"bl"`
}

type CheckBLRequest struct {
	RecipientCID  string          `json:"recipient_cid"`
	InstructionID string          `json:"trsp_instruction_id"`
	TractorGIAI   string          `json:"tractor_giai"`
	BLCID         string          `json:"bl_cid"`
	BLNo          *model.LedgerID `json:"bl_no"`
	BL            json.RawMessage `json:"bl"`
}

const (
	CheckErrSignature = "SIGN_ERROR"
	CheckErrInvalidBL = "INVALID_BL"
	CheckErrUsedBL    = "USED_BL"
	CheckErrParameter = "PARAM_ERROR"
)

type CheckBLResult struct {
	Result bool   `json:"result"`
	ErrMsg string `json:"err_msg"`
}

// Custodian is the custody transfer orchestrator. Every public operation holds the B/L lock of
// its instruction for its whole read-modify-write.
type Custodian interface {
	// Issue registers a new B/L for a transport instruction. Any previous record is discarded.
	Issue(ctx context.Context, req IssueRequest) (model.BLRecord, error)
	// InitiateTransfer asks the Trust service to move the B/L to toCID. The current owner is untouched.
	InitiateTransfer(ctx context.Context, fromCID, toCID, instructionID string) error
	// Receive accepts the B/L into cid's custody. It is a no-op when cid already holds it.
	Receive(ctx context.Context, cid, instructionID string) (model.BLRecord, error)
	// HandOff makes fromCID hold the B/L and starts its transfer to toCID.
	// Completing it with Receive(toCID) is the caller's job.
	HandOff(ctx context.Context, instructionID, fromCID, toCID string) error
	// MarkUsed closes the B/L at the Trust service. Failures are logged, never returned.
	MarkUsed(ctx context.Context, cid, instructionID string)
	FetchForParty(ctx context.Context, req FetchForPartyRequest) (connector.FetchEBLResponse, error)
	CurrentOwner(ctx context.Context, instructionID string) (string, error)
	GetForTractor(ctx context.Context, instructionID, tractorGIAI string) (TractorBL, error)
	CheckBL(ctx context.Context, req CheckBLRequest) (CheckBLResult, error)
}

type _Custodian struct {
	storage     storage.BLRecordStorage
	trust       trust.Client
	directory   directory.Directory
	locker      keylock.Locker
	skipBLCheck bool
	now         func() time.Time

	transferCount    metric.Int64Counter
	receiveCount     metric.Int64Counter
	markUsedFailures metric.Int64Counter
}

type Option func(*_Custodian)

func WithLocker(locker keylock.Locker) Option {
	return func(c *_Custodian) {
		c.locker = locker
	}
}

// WithSkipBLCheck makes CheckBL accept every B/L.
func WithSkipBLCheck(skip bool) Option {
	return func(c *_Custodian) {
		c.skipBLCheck = skip
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *_Custodian) {
		c.now = now
	}
}

func NewCustodian(blStorage storage.BLRecordStorage, trustClient trust.Client, dir directory.Directory, options ...Option) *_Custodian {
	c := &_Custodian{
		storage:   blStorage,
		trust:     trustClient,
		directory: dir,
		locker:    keylock.NewLocalLocker(),
		now:       time.Now,

		transferCount:    otlp_util.NewInt64Counter("custody.transfer.count", metric.WithDescription("The total number of B/L transfers accepted by the Trust service")),
		receiveCount:     otlp_util.NewInt64Counter("custody.receive.count", metric.WithDescription("The total number of B/L receipts approved by the Trust service")),
		markUsedFailures: otlp_util.NewInt64Counter("custody.mark_used.failure.count", metric.WithDescription("The total number of tolerated mark-used failures")),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *_Custodian) lock(ctx context.Context, instructionID string) (func(), error) {
	return c.locker.Lock(ctx, "bl:"+instructionID)
}

// load reads the record of instructionID and the document in its envelope.
func (c *_Custodian) load(ctx context.Context, instructionID string) (model.BLRecord, bill_of_lading.ElectronicBillOfLading, error) {
	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return model.BLRecord{}, bill_of_lading.ElectronicBillOfLading{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := c.storage.GetBLRecord(ctx, tx, instructionID)
	if err != nil {
		return model.BLRecord{}, bill_of_lading.ElectronicBillOfLading{}, err
	}
	rec.InstructionID = instructionID
	doc, err := ebl.DecodeDocument(rec.SignedBL)
	if err != nil {
		return model.BLRecord{}, bill_of_lading.ElectronicBillOfLading{}, fmt.Errorf("instruction %s: %w", instructionID, err)
	}
	return rec, doc, nil
}

func (c *_Custodian) exists(ctx context.Context, instructionID string) (bool, error) {
	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return storage.BLRecordExists(ctx, c.storage, tx, instructionID)
}

// store replaces the whole record of rec.InstructionID.
func (c *_Custodian) store(ctx context.Context, rec model.BLRecord) error {
	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := c.storage.StoreBLRecord(ctx, tx, c.now().Unix(), rec); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (c *_Custodian) remove(ctx context.Context, instructionID string) error {
	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := c.storage.DeleteBLRecord(ctx, tx, instructionID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (c *_Custodian) CurrentOwner(ctx context.Context, instructionID string) (string, error) {
	unlock, err := c.lock(ctx, instructionID)
	if err != nil {
		return "", err
	}
	defer unlock()

	rec, _, err := c.load(ctx, instructionID)
	if err != nil {
		return "", err
	}
	return rec.CurrentOwner, nil
}
