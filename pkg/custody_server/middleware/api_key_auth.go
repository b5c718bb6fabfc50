package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cologi/hubcustody/pkg/custody_server/auth"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// authFailure is the body of a rejected request, in the shape hub controllers already parse.
type authFailure struct {
	Result bool   `json:"result"`
	ErrMsg string `json:"err_msg"`
}

// APIKeyAuth admits requests carrying "Authorization: Bearer ID:SECRET" and records the
// key's application in the request context under APPLICATION.
type APIKeyAuth struct {
	keys auth.APIKeyAuthenticator
}

func NewAPIKeyAuth(keys auth.APIKeyAuthenticator) *APIKeyAuth {
	return &APIKeyAuth{keys: keys}
}

func (a *APIKeyAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := bearerKey(r)
		if !ok {
			rejectRequest(w, r, http.StatusUnauthorized, "bearer API key is required")
			return
		}

		apiKey, err := a.keys.Authenticate(r.Context(), key)
		switch {
		case errors.Is(err, auth.ErrUnauthorized):
			rejectRequest(w, r, http.StatusUnauthorized, err.Error())
			return
		case err != nil:
			logrus.Errorf("%s %s: authenticate API key: %v", r.Method, r.URL.Path, err)
			rejectRequest(w, r, http.StatusInternalServerError, "API key can not be checked")
			return
		}

		ctx := context.WithValue(r.Context(), APPLICATION, apiKey.Application)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerKey(r *http.Request) (auth.APIKeyString, bool) {
	key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	key = strings.TrimSpace(key)
	return auth.APIKeyString(key), ok && key != ""
}

func rejectRequest(w http.ResponseWriter, r *http.Request, status int, msg string) {
	logrus.Debugf("%s %s rejected with %d: %s", r.Method, r.URL.Path, status, msg)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="hubcustody"`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authFailure{ErrMsg: msg})
}
