// Package auth authenticates hub controllers and barcode applications by API key.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

type APIKeyStatus string

const (
	APIKeyStatusActive  = APIKeyStatus("active")
	APIKeyStatusRevoked = APIKeyStatus("revoked")
)

// APIKeyString is what a client presents. The format is [ID]:[SECRET].
type APIKeyString string

// APIKeyHashedString is the bcrypt hash of an APIKeyString kept in the configuration.
type APIKeyHashedString string

type APIKey struct {
	ID          string             `json:"id" yaml:"id"`
	HashString  APIKeyHashedString `json:"hash_string" yaml:"hash_string"`
	Application string             `json:"application" yaml:"application"`
	Status      APIKeyStatus       `json:"status" yaml:"status"`
}

func (ks APIKeyString) ID() (string, error) {
	parts := strings.Split(string(ks), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrMalformedAPIKey
	}
	return parts[0], nil
}

func (ks APIKeyString) Hash() (APIKeyHashedString, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(string(ks)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return APIKeyHashedString(hashed), nil
}

func NewAPIKeyString() (APIKeyString, error) {
	prefixBytes := make([]byte, 16)
	secretBytes := make([]byte, 32)

	if _, err := rand.Read(prefixBytes); err != nil {
		return "", err
	}
	if _, err := rand.Read(secretBytes); err != nil {
		return "", err
	}

	base64Prefix := base64.RawURLEncoding.EncodeToString(prefixBytes)
	base64Secret := base64.RawURLEncoding.EncodeToString(secretBytes)
	return APIKeyString(fmt.Sprintf("%s:%s", base64Prefix, base64Secret)), nil
}

// NewAPIKey generates a key for application. The returned APIKey holds only the hash.
func NewAPIKey(application string) (APIKey, APIKeyString, error) {
	ks, err := NewAPIKeyString()
	if err != nil {
		return APIKey{}, "", err
	}
	id, _ := ks.ID()
	hashed, err := ks.Hash()
	if err != nil {
		return APIKey{}, "", err
	}
	return APIKey{ID: id, HashString: hashed, Application: application, Status: APIKeyStatusActive}, ks, nil
}

func VerifyAPIKeyString(ks APIKeyString, hashedKs APIKeyHashedString) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedKs), []byte(ks))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrUnknownAPIKey
	}
	return err
}

type APIKeyAuthenticator interface {
	// Authenticate returns the key without its hash, or an error wrapping ErrUnauthorized.
	Authenticate(ctx context.Context, key APIKeyString) (APIKey, error)
}

type _StaticAPIKeyAuthenticator struct {
	keys map[string]APIKey
}

// NewStaticAPIKeyAuthenticator authenticates against a fixed list of keys, usually from the configuration file.
func NewStaticAPIKeyAuthenticator(keys []APIKey) *_StaticAPIKeyAuthenticator {
	return &_StaticAPIKeyAuthenticator{
		keys: lo.SliceToMap(keys, func(k APIKey) (string, APIKey) { return k.ID, k }),
	}
}

func (a *_StaticAPIKeyAuthenticator) Authenticate(ctx context.Context, key APIKeyString) (APIKey, error) {
	id, err := key.ID()
	if err != nil {
		return APIKey{}, err
	}

	apiKey, ok := a.keys[id]
	if !ok {
		return APIKey{}, ErrUnknownAPIKey
	}
	if apiKey.Status == APIKeyStatusRevoked {
		return APIKey{}, ErrRevokedAPIKey
	}
	if err := VerifyAPIKeyString(key, apiKey.HashString); err != nil {
		return APIKey{}, err
	}

	apiKey.HashString = ""
	return apiKey, nil
}
