package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cologi/hubcustody/pkg/custody_server/auth"
	"github.com/cologi/hubcustody/pkg/custody_server/middleware"
	mock_auth "github.com/cologi/hubcustody/test/mock/custody_server/auth"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type APIKeyAuthTestSuite struct {
	suite.Suite
	ctx           context.Context
	ctrl          *gomock.Controller
	authenticator *mock_auth.MockAPIKeyAuthenticator
	auth          *middleware.APIKeyAuth
}

func TestAPIKeyAuthTestSuite(t *testing.T) {
	suite.Run(t, new(APIKeyAuthTestSuite))
}

var OkHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
})

func (s *APIKeyAuthTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.authenticator = mock_auth.NewMockAPIKeyAuthenticator(s.ctrl)
	s.auth = middleware.NewAPIKeyAuth(s.authenticator)
}

func (s *APIKeyAuthTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *APIKeyAuthTestSuite) TestAuthenticate() {
	apiKeyString := auth.APIKeyString("fake:api-key")
	request := httptest.NewRequest("POST", "/cbapi/v1/vanning_result", nil).WithContext(s.ctx)
	request.Header.Add("Authorization", fmt.Sprintf("Bearer %s", apiKeyString))
	response := httptest.NewRecorder()

	s.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Eq(apiKeyString)).Return(auth.APIKey{Application: "hub-controller"}, nil)

	var application string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		application = r.Context().Value(middleware.APPLICATION).(string)
		w.WriteHeader(http.StatusOK)
	})

	s.auth.Authenticate(handler).ServeHTTP(response, request)
	s.Equal(http.StatusOK, response.Code)
	s.Equal("hub-controller", application)
}

func (s *APIKeyAuthTestSuite) TestAuthenticateWithoutProvidingAPIKey() {
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc:def", "fake:api-key"} {
		request := httptest.NewRequest("POST", "/cbapi/v1/vanning_result", nil)
		if header != "" {
			request.Header.Add("Authorization", header)
		}
		response := httptest.NewRecorder()

		s.auth.Authenticate(OkHandler).ServeHTTP(response, request)
		s.Equal(http.StatusUnauthorized, response.Code, header)
		s.NotEmpty(response.Header().Get("WWW-Authenticate"), header)
		s.JSONEq(`{"result": false, "err_msg": "bearer API key is required"}`, response.Body.String(), header)
	}
}

func (s *APIKeyAuthTestSuite) TestAuthenticateWithRejectedAPIKey() {
	for _, rejection := range []error{auth.ErrUnknownAPIKey, auth.ErrRevokedAPIKey, auth.ErrMalformedAPIKey} {
		apiKeyString := auth.APIKeyString("fake:api-key")
		request := httptest.NewRequest("POST", "/cbapi/v1/vanning_result", nil).WithContext(s.ctx)
		request.Header.Add("Authorization", fmt.Sprintf("Bearer %s", apiKeyString))
		response := httptest.NewRecorder()

		s.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Eq(apiKeyString)).Return(auth.APIKey{}, rejection)

		s.auth.Authenticate(OkHandler).ServeHTTP(response, request)
		s.Equal(http.StatusUnauthorized, response.Code)
		s.JSONEq(fmt.Sprintf(`{"result": false, "err_msg": %q}`, rejection.Error()), response.Body.String())
	}
}

func (s *APIKeyAuthTestSuite) TestAuthenticatorFailure() {
	request := httptest.NewRequest("POST", "/cbapi/v1/vanning_result", nil).WithContext(s.ctx)
	request.Header.Add("Authorization", "Bearer fake:api-key")
	response := httptest.NewRecorder()

	s.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(auth.APIKey{}, errors.New("key store unavailable"))

	s.auth.Authenticate(OkHandler).ServeHTTP(response, request)
	s.Equal(http.StatusInternalServerError, response.Code)
	s.NotContains(response.Body.String(), "key store unavailable")
}
