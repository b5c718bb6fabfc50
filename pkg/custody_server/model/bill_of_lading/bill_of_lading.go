package bill_of_lading

// ElectronicBillOfLading is the document registered with the Trust service.
// The JSON layout follows the UN/CEFACT supply chain vocabulary used by the hub network.
type ElectronicBillOfLading struct {
	ExchangedDocument      ExchangedDocument      `json:"exchanged_document"`
	SupplyChainConsignment SupplyChainConsignment `json:"supply_chain_consignment"`
}

type ExchangedDocument struct {
	ID                           string                       `json:"id"`
	IssueDateTime                FormattedDateTime            `json:"issueDateTime"`
	OriginalIssuedQuantity       string                       `json:"originalIssuedQuantity"`
	DocumentStatus               CodeValue                    `json:"documentStatus"`
	IssueLocation                IssueLocation                `json:"issueLocation"`
	FirstSignatoryAuthentication FirstSignatoryAuthentication `json:"firstSignatoryAuthentication"`
}

type FormattedDateTime struct {
	Value  string `json:"value"`
	Format string `json:"format"`
}

type CodeValue struct {
	Value string `json:"value"`
}

type TextValue struct {
	Value    string `json:"value"`
	Language string `json:"language"`
}

type IssueLocation struct {
	ID          string `json:"id"`
	CountryCode string `json:"countryCode"`
}

type FirstSignatoryAuthentication struct {
	ActualDateTime FormattedDateTime `json:"actualDateTime"`
	ID             string            `json:"id"`
}

type SupplyChainConsignment struct {
	Consignor                     TradeParty                      `json:"consignor"`                 // shipper
	Consignee                     TradeParty                      `json:"consignee"`                 // recipient
	CarrierAcceptanceLocation     LogisticsLocation               `json:"carrierAcceptanceLocation"` // departure hub
	ConsigneeReceiptLocation      LogisticsLocation               `json:"consigneeReceiptLocation"`  // arrival hub
	IncludedConsignmentItem       []ConsignmentItem               `json:"includedConsignmentItem"`
	MainCarriageTransportMovement []MainCarriageTransportMovement `json:"mainCarriageTransportMovement"`
}

type TradeParty struct {
	ID           []Identifier `json:"id"`
	Name         *TextValue   `json:"name,omitempty"` // nil when the party name is unknown
	LanguageCode CodeValue    `json:"languageCode"`
}

type Identifier struct {
	Value                      string `json:"value"`
	IdentificationScheme       string `json:"identificationScheme"`
	IdentificationSchemeAgency string `json:"identificationSchemeAgency"`
}

type LogisticsLocation struct {
	ID          string    `json:"id"`
	Name        TextValue `json:"name"`
	CountryCode string    `json:"countryCode"`
}

type ConsignmentItem struct {
	AssociatedTransportEquipment []TransportEquipment `json:"associatedTransportEquipment"`
}

type TransportEquipment struct {
	ID Identifier `json:"id"`
}

type StageCode string

const (
	StageCodeShipper   = StageCode("1")
	StageCodeRecipient = StageCode("21")
)

type Stage struct {
	Value StageCode `json:"value"`
}

// MainCarriageTransportMovement is one tractor leg, tagged with the stage it serves.
type MainCarriageTransportMovement struct {
	TypeCode  CodeValue  `json:"typeCode"`
	TypeText  TextValue  `json:"typeText"`
	ID        Identifier `json:"id"`
	StageCode Stage      `json:"stageCode"`
}
