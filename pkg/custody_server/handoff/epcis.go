// Package handoff reconciles physical loading and unloading events reported by hub controllers
// with the hub plans, and drives custody transfer at the custody-relevant points of a route.
package handoff

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-json"
)

const (
	sglnPrefix    = "urn:epc:id:sgln:"
	giaiPrefix    = "urn:epc:id:giai:"
	bizStepPrefix = "urn:epcglobal:cbv:bizstep:"

	BizStepLoading   = "loading"
	BizStepUnloading = "unloading"
)

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// HandoffEvent is one record of an inbound batch. It lives only for the request that carried it.
type HandoffEvent struct {
	EventTime      time.Time
	BizStep        string
	HubID          string
	ParkingSpace   string
	EquipmentGIAIs []string
	InstructionID  string
}

type epcisQueryDocument struct {
	EPCISQueryDocument *epcisDocumentBody `json:"EPCISQueryDocument"`
}

type epcisDocumentBody struct {
	EPCISBody *epcisBody `json:"EPCISBody"`
}

type epcisBody struct {
	ResultsBody *[]epcisRecord `json:"resultsBody"`
}

type epcisRecord struct {
	EventTime   string    `json:"eventTime"`
	ChildEPCs   *[]string `json:"childEPCs"`
	ReadPoint   *epcisID  `json:"readPoint"`
	BizLocation *epcisID  `json:"bizLocation"`
	PlanID      planID    `json:"custom:planId"`
	BizStep     string    `json:"bizStep"`
}

type epcisID struct {
	ID string `json:"id"`
}

func (e epcisID) Validate() error {
	return validation.ValidateStruct(&e, validation.Field(&e.ID, validation.Required))
}

// planID is sent either as a string or as a number.
type planID string

func (p *planID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = planID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("custom:planId must be a string or a number")
	}
	*p = planID(n.String())
	return nil
}

func (r epcisRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EventTime, validation.Required),
		validation.Field(&r.ChildEPCs, validation.NotNil),
		validation.Field(&r.ReadPoint, validation.NotNil),
		validation.Field(&r.BizLocation, validation.NotNil),
		validation.Field(&r.PlanID, validation.Required),
		validation.Field(&r.BizStep, validation.Required),
	)
}

// ParseBatch decodes an EPCIS query document. One bad record fails the whole batch with an
// error wrapping model.ErrMalformedEvent that names the record and the field.
func ParseBatch(body []byte) ([]HandoffEvent, error) {
	doc := epcisQueryDocument{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), model.ErrMalformedEvent)
	}
	switch {
	case doc.EPCISQueryDocument == nil:
		return nil, fmt.Errorf("EPCISQueryDocument is missing: %w", model.ErrMalformedEvent)
	case doc.EPCISQueryDocument.EPCISBody == nil:
		return nil, fmt.Errorf("EPCISBody is missing: %w", model.ErrMalformedEvent)
	case doc.EPCISQueryDocument.EPCISBody.ResultsBody == nil:
		return nil, fmt.Errorf("resultsBody is missing: %w", model.ErrMalformedEvent)
	}

	records := *doc.EPCISQueryDocument.EPCISBody.ResultsBody
	events := make([]HandoffEvent, 0, len(records))
	for i, record := range records {
		event, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("resultsBody[%d]: %s: %w", i, err.Error(), model.ErrMalformedEvent)
		}
		events = append(events, event)
	}
	return events, nil
}

func parseRecord(r epcisRecord) (HandoffEvent, error) {
	if err := r.Validate(); err != nil {
		return HandoffEvent{}, err
	}

	location := r.BizLocation.ID
	hubID, ok := strings.CutPrefix(location, sglnPrefix)
	if !ok || hubID == "" || strings.Contains(hubID, sglnPrefix) {
		return HandoffEvent{}, fmt.Errorf("bizLocation: %q is not %s<hub>", location, sglnPrefix)
	}

	space, ok := strings.CutPrefix(r.ReadPoint.ID, location+".")
	if !ok || space == "" {
		return HandoffEvent{}, fmt.Errorf("readPoint: %q is not %s.<space>", r.ReadPoint.ID, location)
	}

	giais := make([]string, 0, len(*r.ChildEPCs))
	for i, epc := range *r.ChildEPCs {
		giai, ok := strings.CutPrefix(epc, giaiPrefix)
		if !ok || giai == "" {
			return HandoffEvent{}, fmt.Errorf("childEPCs[%d]: %q is not %s<giai>", i, epc, giaiPrefix)
		}
		giais = append(giais, giai)
	}

	eventTime, err := parseEventTime(r.EventTime)
	if err != nil {
		return HandoffEvent{}, fmt.Errorf("eventTime: %w", err)
	}

	return HandoffEvent{
		EventTime:      eventTime,
		BizStep:        strings.TrimPrefix(r.BizStep, bizStepPrefix),
		HubID:          hubID,
		ParkingSpace:   space,
		EquipmentGIAIs: giais,
		InstructionID:  string(r.PlanID),
	}, nil
}

// parseEventTime keeps the wall clock of the hub controller; the zone is not converted.
func parseEventTime(s string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a timestamp", s)
}
