// Package oncall fetches the current on-call operator roster. This is a
// single unauthenticated endpoint, so the fetch goes through the requests
// builder directly rather than the retrying client.
package oncall

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/sirupsen/logrus"

	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/pkg/models"
)

const rosterPath = "/api/sobreaviso"

type Service struct {
	cfg  config.OnCallConfig
	http *http.Client
}

func NewService(cfg config.OnCallConfig) *Service {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &Service{
		cfg: cfg,
		http: &http.Client{
			Transport: tr,
			Timeout:   20 * time.Second,
		},
	}
}

// Current returns the operator on call right now.
func (s *Service) Current(ctx context.Context) (*models.OnCall, error) {
	var roster models.OnCall
	err := requests.
		URL(s.cfg.BaseURL + rosterPath).
		Client(s.http).
		ToJSON(&roster).
		Fetch(ctx)
	if err != nil {
		logrus.Warnf("On-call roster fetch failed: %v", err)
		return nil, err
	}
	return &roster, nil
}
