// Package envelope prepares documents for the Trust service: canonical JSON encoding and content digests.
package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Canonicalize encodes v as RFC 8785 canonical JSON, so that the same document always
// produces the same bytes no matter how it was built.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return CanonicalizeRaw(raw)
}

func CanonicalizeRaw(raw []byte) ([]byte, error) {
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}
	return out, nil
}
