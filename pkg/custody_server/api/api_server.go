// Package api is the HTTP surface of the custody server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cologi/hubcustody/pkg/custody_server/auth"
	"github.com/cologi/hubcustody/pkg/custody_server/custody"
	"github.com/cologi/hubcustody/pkg/custody_server/handoff"
	"github.com/cologi/hubcustody/pkg/custody_server/middleware"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxRequestBodySize = 4 << 20

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type API struct {
	apiKeyMgr auth.APIKeyAuthenticator
	custodian custody.Custodian
	processor handoff.Processor
	planner   handoff.RoutePlanner

	httpServer *http.Server
}

func NewAPIWithController(
	apiKeyMgr auth.APIKeyAuthenticator,
	custodian custody.Custodian,
	processor handoff.Processor,
	planner handoff.RoutePlanner,
	rateLimit RateLimitConfig,
	localAddress string,
) (*API, error) {
	apiServer := &API{
		apiKeyMgr: apiKeyMgr,
		custodian: custodian,
		processor: processor,
		planner:   planner,
	}

	r := mux.NewRouter()
	r.Use(middleware.Log)
	r.HandleFunc("/health", apiServer.health).Methods(http.MethodGet)
	r.HandleFunc("/public/api/ebl/{instruction_id}", apiServer.fetchEBL).Methods(http.MethodGet)

	keyAuth := middleware.NewAPIKeyAuth(apiServer.apiKeyMgr)

	hubRouter := r.PathPrefix("/cbapi/v1").Subrouter()
	hubRouter.Use(keyAuth.Authenticate, middleware.RateLimit(rateLimit.RequestsPerSecond, rateLimit.Burst))
	hubRouter.HandleFunc("/vanning_result", apiServer.vanningResult).Methods(http.MethodPost)
	hubRouter.HandleFunc("/devanning_result", apiServer.devanningResult).Methods(http.MethodPost)

	eblRouter := r.PathPrefix("/ebl/v1").Subrouter()
	eblRouter.Use(keyAuth.Authenticate)
	eblRouter.HandleFunc("/bl_check", apiServer.checkBL).Methods(http.MethodPost)
	eblRouter.HandleFunc("/{instruction_id}", apiServer.issueEBL).Methods(http.MethodPost)
	eblRouter.HandleFunc("/{instruction_id}/{tractor_giai}", apiServer.getEBLForTractor).Methods(http.MethodGet)

	planRouter := r.PathPrefix("/mhplan/v1").Subrouter()
	planRouter.Use(keyAuth.Authenticate)
	planRouter.HandleFunc("/route/{instruction_id}", apiServer.assignRoute).Methods(http.MethodPost)
	planRouter.HandleFunc("/route/{instruction_id}", apiServer.updateRouteParty).Methods(http.MethodPut)
	planRouter.HandleFunc("/route/{instruction_id}", apiServer.removeRoute).Methods(http.MethodDelete)

	apiServer.httpServer = &http.Server{
		Addr:    localAddress,
		Handler: r,
	}
	return apiServer, nil
}

func (a *API) Run() error {
	err := a.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Close(ctx context.Context) error {
	a.httpServer.SetKeepAlivesEnabled(false)
	return a.httpServer.Shutdown(ctx)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Warnf("%s %s failed to encode/write response: %v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errCode := model.ErrorToHttpStatus(err)
	logError(r, errCode, err)
	http.Error(w, err.Error(), errCode)
}

func logError(r *http.Request, errCode int, err error) {
	if errCode/100 == 5 {
		logrus.Errorf("%s %s returns status code %d with error: %v", r.Method, r.RequestURI, errCode, err.Error())
	} else {
		logrus.Debugf("%s %s returns status code %d with error: %v", r.Method, r.RequestURI, errCode, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(v); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}
