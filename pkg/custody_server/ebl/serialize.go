package ebl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/model/bill_of_lading"
	"github.com/cologi/hubcustody/pkg/envelope"
	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Loaded is a persisted B/L record together with the document inside its signed envelope.
type Loaded struct {
	Record   model.BLRecord
	Document bill_of_lading.ElectronicBillOfLading
}

const documentSchemaURL = "https://hubcustody.local/schema/ebl.schema.json"

const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["exchanged_document", "supply_chain_consignment"],
  "properties": {
    "exchanged_document": {
      "type": "object",
      "required": ["id", "firstSignatoryAuthentication"],
      "properties": {
        "id": {"type": "string"},
        "firstSignatoryAuthentication": {
          "type": "object",
          "required": ["id"],
          "properties": {"id": {"type": "string"}}
        }
      }
    },
    "supply_chain_consignment": {
      "type": "object",
      "required": ["consignor", "consignee"],
      "properties": {
        "consignor": {"$ref": "#/$defs/party"},
        "consignee": {"$ref": "#/$defs/party"},
        "includedConsignmentItem": {"type": "array"},
        "mainCarriageTransportMovement": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "stageCode"]
          }
        }
      }
    }
  },
  "$defs": {
    "party": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["value"],
            "properties": {"value": {"type": "string"}}
          }
        }
      }
    }
  }
}`

var compiledDocumentSchema = mustCompileDocumentSchema()

func mustCompileDocumentSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile(documentSchemaURL)
}

// Encode returns the canonical JSON of doc. This is the form registered with the Trust service.
func Encode(doc bill_of_lading.ElectronicBillOfLading) ([]byte, error) {
	return envelope.Canonicalize(doc)
}

// DecodeDocument checks raw against the document schema and decodes it.
// Fields added by the Trust service while signing are ignored.
func DecodeDocument(raw []byte) (bill_of_lading.ElectronicBillOfLading, error) {
	var doc bill_of_lading.ElectronicBillOfLading

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return doc, fmt.Errorf("%s: %w", err.Error(), model.ErrMalformedBLRecord)
	}
	if err := compiledDocumentSchema.Validate(instance); err != nil {
		return doc, fmt.Errorf("%s: %w", err.Error(), model.ErrMalformedBLRecord)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", err.Error(), model.ErrMalformedBLRecord)
	}
	return doc, nil
}

// Serialize encodes a record in its persisted form.
func Serialize(rec model.BLRecord) ([]byte, error) {
	return json.MarshalIndent(rec, "", "    ")
}

// Load decodes a persisted record and the document it carries.
// An empty blob is reported as model.ErrBLNotIssued, anything unreadable as model.ErrMalformedBLRecord.
// The ledger id must be an integer.
func Load(blob []byte) (Loaded, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return Loaded{}, model.ErrBLNotIssued
	}

	var rec model.BLRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return Loaded{}, fmt.Errorf("%s: %w", err.Error(), model.ErrMalformedBLRecord)
	}
	if len(rec.SignedBL) == 0 {
		return Loaded{}, fmt.Errorf("signed_bl is missing: %w", model.ErrMalformedBLRecord)
	}

	doc, err := DecodeDocument(rec.SignedBL)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Record: rec, Document: doc}, nil
}
