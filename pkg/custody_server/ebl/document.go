// Package ebl builds, reads and (de)serializes electronic bills of lading.
package ebl

import (
	"fmt"
	"time"

	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/google/uuid"
)

const (
	DateTimeFormat = "YYYY-MM-DDTHH:mm:ss.ssssss"
	dateTimeLayout = "2006-01-02T15:04:05.000000"

	defaultLocationID  = "JPTYO"
	defaultCountryCode = "JP"
	defaultLanguage    = "ja"

	userIDScheme    = "USERID"
	userIDAgency    = "COLOGI"
	giaiScheme      = "GIAI"
	giaiAgency      = "GS1"
	tractorTypeCode = "3"

	shipperTractorText   = "荷主トラクター"
	recipientTractorText = "荷受人トラクター"
)

// NewDocument returns an unissued document with every fixed field populated.
func NewDocument() bill_of_lading.ElectronicBillOfLading {
	zeroTime := bill_of_lading.FormattedDateTime{
		Value:  "0000-12-31T00:00:00.000000",
		Format: DateTimeFormat,
	}
	return bill_of_lading.ElectronicBillOfLading{
		ExchangedDocument: bill_of_lading.ExchangedDocument{
			IssueDateTime:          zeroTime,
			OriginalIssuedQuantity: "1",
			DocumentStatus:         bill_of_lading.CodeValue{Value: "TBD"},
			IssueLocation: bill_of_lading.IssueLocation{
				ID:          defaultLocationID,
				CountryCode: defaultCountryCode,
			},
			FirstSignatoryAuthentication: bill_of_lading.FirstSignatoryAuthentication{
				ActualDateTime: zeroTime,
			},
		},
		SupplyChainConsignment: bill_of_lading.SupplyChainConsignment{
			Consignor:                     newTradeParty(),
			Consignee:                     newTradeParty(),
			CarrierAcceptanceLocation:     newLogisticsLocation(),
			ConsigneeReceiptLocation:      newLogisticsLocation(),
			IncludedConsignmentItem:       []bill_of_lading.ConsignmentItem{{AssociatedTransportEquipment: []bill_of_lading.TransportEquipment{}}},
			MainCarriageTransportMovement: []bill_of_lading.MainCarriageTransportMovement{},
		},
	}
}

// Issue stamps a fresh document id and issuance time and records issuerID as the first signatory.
// Issuing again overwrites the previous identity.
func Issue(doc *bill_of_lading.ElectronicBillOfLading, issuerID string, ts time.Time) {
	issuedAt := ts.UTC().Format(dateTimeLayout)
	doc.ExchangedDocument.ID = uuid.NewString()
	doc.ExchangedDocument.IssueDateTime = bill_of_lading.FormattedDateTime{Value: issuedAt, Format: DateTimeFormat}
	doc.ExchangedDocument.FirstSignatoryAuthentication.ActualDateTime = bill_of_lading.FormattedDateTime{Value: issuedAt, Format: DateTimeFormat}
	doc.ExchangedDocument.FirstSignatoryAuthentication.ID = issuerID
}

func SetConsignor(doc *bill_of_lading.ElectronicBillOfLading, id, name string) {
	setTradeParty(&doc.SupplyChainConsignment.Consignor, id, name)
}

func SetConsignee(doc *bill_of_lading.ElectronicBillOfLading, id, name string) {
	setTradeParty(&doc.SupplyChainConsignment.Consignee, id, name)
}

func SetDepartureHub(doc *bill_of_lading.ElectronicBillOfLading, hubID, hubName string) {
	doc.SupplyChainConsignment.CarrierAcceptanceLocation.Name.Value = hubLocation(hubID, hubName)
}

func SetArrivalHub(doc *bill_of_lading.ElectronicBillOfLading, hubID, hubName string) {
	doc.SupplyChainConsignment.ConsigneeReceiptLocation.Name.Value = hubLocation(hubID, hubName)
}

// SetTrailers replaces the trailer list.
func SetTrailers(doc *bill_of_lading.ElectronicBillOfLading, giais []string) {
	equipments := make([]bill_of_lading.TransportEquipment, 0, len(giais))
	for _, giai := range giais {
		equipments = append(equipments, bill_of_lading.TransportEquipment{ID: giaiIdentifier(giai)})
	}
	doc.SupplyChainConsignment.IncludedConsignmentItem = []bill_of_lading.ConsignmentItem{{AssociatedTransportEquipment: equipments}}
}

// SetShipperTractor appends a shipper side tractor movement. Callers set each stage once.
func SetShipperTractor(doc *bill_of_lading.ElectronicBillOfLading, giai string) {
	appendTractor(doc, giai, bill_of_lading.StageCodeShipper, shipperTractorText)
}

// SetRecipientTractor appends a recipient side tractor movement. Callers set each stage once.
func SetRecipientTractor(doc *bill_of_lading.ElectronicBillOfLading, giai string) {
	appendTractor(doc, giai, bill_of_lading.StageCodeRecipient, recipientTractorText)
}

func IssuerID(doc *bill_of_lading.ElectronicBillOfLading) string {
	return doc.ExchangedDocument.FirstSignatoryAuthentication.ID
}

func ConsignorID(doc *bill_of_lading.ElectronicBillOfLading) string {
	return partyID(doc.SupplyChainConsignment.Consignor)
}

func ConsigneeID(doc *bill_of_lading.ElectronicBillOfLading) string {
	return partyID(doc.SupplyChainConsignment.Consignee)
}

func TrailerGIAIs(doc *bill_of_lading.ElectronicBillOfLading) []string {
	giais := make([]string, 0)
	for _, item := range doc.SupplyChainConsignment.IncludedConsignmentItem {
		for _, equipment := range item.AssociatedTransportEquipment {
			giais = append(giais, equipment.ID.Value)
		}
	}
	return giais
}

// TractorGIAI returns the first tractor registered for stage.
func TractorGIAI(doc *bill_of_lading.ElectronicBillOfLading, stage bill_of_lading.StageCode) (string, bool) {
	for _, movement := range doc.SupplyChainConsignment.MainCarriageTransportMovement {
		if movement.StageCode.Value == stage {
			return movement.ID.Value, true
		}
	}
	return "", false
}

func newTradeParty() bill_of_lading.TradeParty {
	return bill_of_lading.TradeParty{
		ID: []bill_of_lading.Identifier{{
			IdentificationScheme:       userIDScheme,
			IdentificationSchemeAgency: userIDAgency,
		}},
		Name:         &bill_of_lading.TextValue{Language: defaultLanguage},
		LanguageCode: bill_of_lading.CodeValue{Value: defaultLanguage},
	}
}

func newLogisticsLocation() bill_of_lading.LogisticsLocation {
	return bill_of_lading.LogisticsLocation{
		ID:          defaultLocationID,
		Name:        bill_of_lading.TextValue{Language: defaultLanguage},
		CountryCode: defaultCountryCode,
	}
}

func setTradeParty(party *bill_of_lading.TradeParty, id, name string) {
	if len(party.ID) == 0 {
		party.ID = newTradeParty().ID
	}
	party.ID[0].Value = id
	if name == "" {
		party.Name = nil
		return
	}
	party.Name = &bill_of_lading.TextValue{Value: name, Language: defaultLanguage}
}

func partyID(party bill_of_lading.TradeParty) string {
	if len(party.ID) == 0 {
		return ""
	}
	return party.ID[0].Value
}

func hubLocation(hubID, hubName string) string {
	return fmt.Sprintf("%s:%s", hubID, hubName)
}

func giaiIdentifier(giai string) bill_of_lading.Identifier {
	return bill_of_lading.Identifier{
		Value:                      giai,
		IdentificationScheme:       giaiScheme,
		IdentificationSchemeAgency: giaiAgency,
	}
}

func appendTractor(doc *bill_of_lading.ElectronicBillOfLading, giai string, stage bill_of_lading.StageCode, text string) {
	doc.SupplyChainConsignment.MainCarriageTransportMovement = append(
		doc.SupplyChainConsignment.MainCarriageTransportMovement,
		bill_of_lading.MainCarriageTransportMovement{
			TypeCode:  bill_of_lading.CodeValue{Value: tractorTypeCode},
			TypeText:  bill_of_lading.TextValue{Value: text, Language: defaultLanguage},
			ID:        giaiIdentifier(giai),
			StageCode: bill_of_lading.Stage{Value: stage},
		},
	)
}
