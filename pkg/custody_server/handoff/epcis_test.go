package handoff_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/handoff"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	departureHub = "4149999900010001"
	arrivalHub   = "4149999900020001"
)

// epcisRecord renders one resultsBody entry. An empty bizStep is left out.
func epcisRecord(eventTime, bizStep, hub, space, planID string, giais ...string) string {
	epcs := make([]string, 0, len(giais))
	for _, giai := range giais {
		epcs = append(epcs, fmt.Sprintf(`"urn:epc:id:giai:%s"`, giai))
	}
	step := ""
	if bizStep != "" {
		step = fmt.Sprintf(`,"bizStep":"urn:epcglobal:cbv:bizstep:%s"`, bizStep)
	}
	return fmt.Sprintf(`{"eventTime":%q,"childEPCs":[%s],"readPoint":{"id":"urn:epc:id:sgln:%s.%s"},"bizLocation":{"id":"urn:epc:id:sgln:%s"},"custom:planId":%s%s}`,
		eventTime, strings.Join(epcs, ","), hub, space, hub, planID, step)
}

func epcisBatch(records ...string) []byte {
	return []byte(`{"EPCISQueryDocument":{"EPCISBody":{"resultsBody":[` + strings.Join(records, ",") + `]}}}`)
}

func TestParseBatch(t *testing.T) {
	body := epcisBatch(
		epcisRecord("2025-03-01T09:45:12.345+09:00", "loading", departureHub, "A01", `"100001"`, "T1", "TR1"),
		epcisRecord("2025-03-01 10:00:00", "unloading", arrivalHub, "B02", `100002`, "T2"),
		epcisRecord("2025-03-01T11:00:00", "inspecting", arrivalHub, "B02", `" 100003 "`),
	)

	events, err := handoff.ParseBatch(body)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, handoff.BizStepLoading, events[0].BizStep)
	assert.Equal(t, departureHub, events[0].HubID)
	assert.Equal(t, "A01", events[0].ParkingSpace)
	assert.Equal(t, []string{"T1", "TR1"}, events[0].EquipmentGIAIs)
	assert.Equal(t, "100001", events[0].InstructionID)
	// The hub controller's wall clock is kept as is.
	assert.Equal(t, "2025-03-01T09:45:12", model.NewPlanTime(events[0].EventTime).String())

	assert.Equal(t, handoff.BizStepUnloading, events[1].BizStep)
	assert.Equal(t, "100002", events[1].InstructionID)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), events[1].EventTime)

	assert.Equal(t, "inspecting", events[2].BizStep)
	assert.Equal(t, "100003", events[2].InstructionID)
	assert.Empty(t, events[2].EquipmentGIAIs)
}

func TestParseEmptyBatch(t *testing.T) {
	events, err := handoff.ParseBatch(epcisBatch())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseBatchMalformed(t *testing.T) {
	good := epcisRecord("2025-03-01T09:45:12", "loading", departureHub, "A01", `"100001"`, "T1")

	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{name: "not json", body: `{"EPCISQueryDocument":`, message: ""},
		{name: "no document", body: `{}`, message: "EPCISQueryDocument is missing"},
		{name: "no body", body: `{"EPCISQueryDocument":{}}`, message: "EPCISBody is missing"},
		{name: "no results", body: `{"EPCISQueryDocument":{"EPCISBody":{}}}`, message: "resultsBody is missing"},
		{
			name:    "missing eventTime",
			body:    string(epcisBatch(good, `{"childEPCs":[],"readPoint":{"id":"urn:epc:id:sgln:1.A"},"bizLocation":{"id":"urn:epc:id:sgln:1"},"custom:planId":"1","bizStep":"loading"}`)),
			message: "resultsBody[1]: eventTime",
		},
		{
			name:    "missing childEPCs",
			body:    string(epcisBatch(`{"eventTime":"2025-03-01T09:45:12","readPoint":{"id":"urn:epc:id:sgln:1.A"},"bizLocation":{"id":"urn:epc:id:sgln:1"},"custom:planId":"1","bizStep":"loading"}`)),
			message: "resultsBody[0]: childEPCs",
		},
		{
			name:    "missing planId",
			body:    string(epcisBatch(`{"eventTime":"2025-03-01T09:45:12","childEPCs":[],"readPoint":{"id":"urn:epc:id:sgln:1.A"},"bizLocation":{"id":"urn:epc:id:sgln:1"},"bizStep":"loading"}`)),
			message: "custom:planId",
		},
		{
			name:    "missing bizStep",
			body:    string(epcisBatch(epcisRecord("2025-03-01T09:45:12", "", departureHub, "A01", `"100001"`))),
			message: "bizStep",
		},
		{
			name:    "bizLocation without prefix",
			body:    string(epcisBatch(`{"eventTime":"2025-03-01T09:45:12","childEPCs":[],"readPoint":{"id":"1.A"},"bizLocation":{"id":"1"},"custom:planId":"1","bizStep":"loading"}`)),
			message: "bizLocation",
		},
		{
			name:    "readPoint of another hub",
			body:    string(epcisBatch(`{"eventTime":"2025-03-01T09:45:12","childEPCs":[],"readPoint":{"id":"urn:epc:id:sgln:2.A"},"bizLocation":{"id":"urn:epc:id:sgln:1"},"custom:planId":"1","bizStep":"loading"}`)),
			message: "readPoint",
		},
		{
			name:    "childEPC without prefix",
			body:    string(epcisBatch(`{"eventTime":"2025-03-01T09:45:12","childEPCs":["T1"],"readPoint":{"id":"urn:epc:id:sgln:1.A"},"bizLocation":{"id":"urn:epc:id:sgln:1"},"custom:planId":"1","bizStep":"loading"}`)),
			message: "childEPCs[0]",
		},
		{
			name:    "bad eventTime",
			body:    string(epcisBatch(epcisRecord("yesterday", "loading", departureHub, "A01", `"100001"`))),
			message: "eventTime",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := handoff.ParseBatch([]byte(tc.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrMalformedEvent))
			assert.True(t, errors.Is(err, model.ErrInvalidParameter))
			assert.Contains(t, err.Error(), tc.message)
			assert.True(t, strings.HasSuffix(err.Error(), ": malformed handoff event"), err.Error())
			assert.Nil(t, events)
		})
	}
}
