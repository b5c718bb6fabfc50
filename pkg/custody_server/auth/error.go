package auth

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("") // Base error for requests that can not be attributed to an application

// Mismatched secrets and unknown ids both report ErrUnknownAPIKey.
var ErrMalformedAPIKey = fmt.Errorf("API key is not in ID:SECRET form%w", ErrUnauthorized)
var ErrUnknownAPIKey = fmt.Errorf("API key is not recognised%w", ErrUnauthorized)
var ErrRevokedAPIKey = fmt.Errorf("API key has been revoked%w", ErrUnauthorized)
