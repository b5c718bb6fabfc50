package ebl_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/ebl"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument() bill_of_lading.ElectronicBillOfLading {
	doc := ebl.NewDocument()
	ebl.SetConsignee(&doc, "recipient1", "Recipient One")
	ebl.SetConsignor(&doc, "shipper1", "")
	ebl.SetDepartureHub(&doc, "4149999900010001", "Tokyo MH")
	ebl.SetArrivalHub(&doc, "4149999900010002", "Osaka MH")
	ebl.SetTrailers(&doc, []string{"R1", "R2"})
	ebl.SetShipperTractor(&doc, "T1")
	ebl.SetRecipientTractor(&doc, "T2")
	return doc
}

func TestIssue(t *testing.T) {
	doc := newTestDocument()
	ts := time.Date(2025, 2, 1, 9, 30, 15, 123456000, time.FixedZone("JST", 9*3600))

	ebl.Issue(&doc, "carrier1", ts)
	firstID := doc.ExchangedDocument.ID
	assert.NotEmpty(t, firstID)
	assert.Equal(t, "carrier1", ebl.IssuerID(&doc))
	assert.Equal(t, "2025-02-01T00:30:15.123456", doc.ExchangedDocument.IssueDateTime.Value)
	assert.Equal(t, ebl.DateTimeFormat, doc.ExchangedDocument.IssueDateTime.Format)
	assert.Equal(t, doc.ExchangedDocument.IssueDateTime, doc.ExchangedDocument.FirstSignatoryAuthentication.ActualDateTime)

	ebl.Issue(&doc, "carrier2", ts.Add(time.Hour))
	assert.NotEqual(t, firstID, doc.ExchangedDocument.ID)
	assert.Equal(t, "carrier2", ebl.IssuerID(&doc))
}

func TestSetTradeParty(t *testing.T) {
	doc := newTestDocument()

	assert.Equal(t, "recipient1", ebl.ConsigneeID(&doc))
	require.NotNil(t, doc.SupplyChainConsignment.Consignee.Name)
	assert.Equal(t, "Recipient One", doc.SupplyChainConsignment.Consignee.Name.Value)

	assert.Equal(t, "shipper1", ebl.ConsignorID(&doc))
	assert.Nil(t, doc.SupplyChainConsignment.Consignor.Name)

	raw, err := json.Marshal(doc.SupplyChainConsignment.Consignor)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"name"`)

	ebl.SetConsignee(&doc, "recipient2", "")
	assert.Equal(t, "recipient2", ebl.ConsigneeID(&doc))
	assert.Nil(t, doc.SupplyChainConsignment.Consignee.Name)
}

func TestSetHubs(t *testing.T) {
	doc := newTestDocument()
	assert.Equal(t, "4149999900010001:Tokyo MH", doc.SupplyChainConsignment.CarrierAcceptanceLocation.Name.Value)
	assert.Equal(t, "4149999900010002:Osaka MH", doc.SupplyChainConsignment.ConsigneeReceiptLocation.Name.Value)

	ebl.SetArrivalHub(&doc, "not-a-gln", "")
	assert.Equal(t, "not-a-gln:", doc.SupplyChainConsignment.ConsigneeReceiptLocation.Name.Value)
}

func TestSetTrailersReplaces(t *testing.T) {
	doc := newTestDocument()
	assert.Equal(t, []string{"R1", "R2"}, ebl.TrailerGIAIs(&doc))

	ebl.SetTrailers(&doc, []string{"R3"})
	assert.Equal(t, []string{"R3"}, ebl.TrailerGIAIs(&doc))

	ebl.SetTrailers(&doc, nil)
	assert.Empty(t, ebl.TrailerGIAIs(&doc))
}

func TestTractors(t *testing.T) {
	doc := ebl.NewDocument()
	_, found := ebl.TractorGIAI(&doc, bill_of_lading.StageCodeShipper)
	assert.False(t, found)

	ebl.SetShipperTractor(&doc, "T1")
	ebl.SetShipperTractor(&doc, "T9")
	assert.Len(t, doc.SupplyChainConsignment.MainCarriageTransportMovement, 2)

	giai, found := ebl.TractorGIAI(&doc, bill_of_lading.StageCodeShipper)
	assert.True(t, found)
	assert.Equal(t, "T1", giai)

	_, found = ebl.TractorGIAI(&doc, bill_of_lading.StageCodeRecipient)
	assert.False(t, found)

	ebl.SetRecipientTractor(&doc, "T2")
	giai, found = ebl.TractorGIAI(&doc, bill_of_lading.StageCodeRecipient)
	assert.True(t, found)
	assert.Equal(t, "T2", giai)
}
