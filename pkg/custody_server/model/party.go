package model

type PartyRole string

const (
	PartyRoleCarrier   = PartyRole("carrier")
	PartyRoleShipper   = PartyRole("shipper")
	PartyRoleRecipient = PartyRole("recipient")
)

// Party is one directory entry of a business party.
type Party struct {
	CID               string    `json:"cid" yaml:"cid"`
	Name              string    `json:"name" yaml:"name"`
	Role              PartyRole `json:"role" yaml:"role"`
	Endpoint          string    `json:"endpoint" yaml:"endpoint"`
	SettlementAddress string    `json:"settlement_address" yaml:"settlement_address"`
	TractorGIAI       string    `json:"tractor_giai" yaml:"tractor_giai"`
}

// Hub is a mobility hub addressed by its GLN.
type Hub struct {
	GLN  string `json:"gln" yaml:"gln"`
	Name string `json:"name" yaml:"name"`
}
