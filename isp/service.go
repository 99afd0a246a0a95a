// Package isp queries the subscriber status API: access plans, PPPoE
// session state and last known addressing.
package isp

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/pkg/models"
)

const statusPath = "/isp/getclistatus/"

// Payload-level outcomes: the API answers 200 and flags these in the body.
var (
	ErrNotFound = errors.New("subscriber not found")
	ErrServer   = errors.New("subscriber API internal error")
)

// APIError carries a validation message the upstream returned inside the
// payload's error field. It is shown to the operator verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

type statusEnvelope struct {
	Error      models.Scalar       `json:"error"`
	StatusCode int                 `json:"status_code"`
	Result     []models.ClientPlan `json:"result"`
}

type Service struct {
	cfg  config.ISPConfig
	http *httpclient.Client
}

func NewService(cfg config.ISPConfig, hc *httpclient.Client) *Service {
	return &Service{cfg: cfg, http: hc}
}

// ClientStatus fetches the access plans of a subscriber.
func (s *Service) ClientStatus(ctx context.Context, clientID string) ([]models.ClientPlan, error) {
	logrus.Infof("Fetching subscriber status for client %s", clientID)

	var env statusEnvelope
	fault := s.http.Get(ctx, s.cfg.BaseURL+statusPath+clientID, nil, &env)
	if fault != nil {
		return nil, fault
	}

	if msg := env.Error.String(); msg != "" {
		logrus.Warnf("Subscriber API returned an error for client %s: %s", clientID, msg)
		return nil, &APIError{Message: msg}
	}
	switch env.StatusCode {
	case 404:
		return nil, ErrNotFound
	case 500:
		return nil, ErrServer
	}

	return env.Result, nil
}
