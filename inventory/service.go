// Package inventory queries the physical-plant API: distribution boxes,
// their points, subscriber-to-box search and pending reservations. All calls
// carry the static Token header and stay read-only against backend state.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/sirupsen/logrus"

	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/pkg/models"
)

const (
	pathGetPoint     = "/getpoint"
	pathGetBox       = "/getbox"
	pathSearchClient = "/searchclient"
	pathSearchBox    = "/searchbox"
	pathReservations = "/searchreservations"
)

// Payload-level outcomes, distinct from transport faults: the upstream
// answers 200 and flags the condition inside the body.
var (
	ErrNotFound    = errors.New("box not found")
	ErrUnavailable = errors.New("upstream temporarily unavailable")
)

type Service struct {
	cfg        config.InventoryConfig
	http       *httpclient.Client
	boxTimeout time.Duration
}

func NewService(cfg config.InventoryConfig, hc *httpclient.Client) *Service {
	return &Service{
		cfg:        cfg,
		http:       hc,
		boxTimeout: time.Duration(cfg.BoxTimeoutSeconds) * time.Second,
	}
}

func (s *Service) headers() map[string]string {
	return map[string]string{"Token": s.cfg.Token}
}

func (s *Service) url(path string, params interface{}) string {
	v, err := query.Values(params)
	if err != nil {
		logrus.Errorf("Failed to encode query for %s: %v", path, err)
		return s.cfg.BaseURL + path
	}
	return fmt.Sprintf("%s%s?%s", s.cfg.BaseURL, path, v.Encode())
}

// GetBox fetches a box snapshot with its full point list. Box payloads are
// the largest the plant API serves, hence the extended timeout.
func (s *Service) GetBox(ctx context.Context, boxID string) (*models.Box, error) {
	var env boxEnvelope
	fault := s.http.Get(ctx, s.url(pathGetBox, boxQuery{BoxID: boxID}), s.headers(), &env,
		httpclient.WithTimeout(s.boxTimeout))
	if fault != nil {
		return nil, fault
	}
	switch env.StatusCode {
	case 400:
		logrus.Warnf("Box %s not found upstream", boxID)
		return nil, ErrNotFound
	case 500:
		logrus.Warn("Plant API reported itself unavailable")
		return nil, ErrUnavailable
	}
	return &env.Result, nil
}

// GetPoint fetches the point detail used for PON-port validation.
func (s *Service) GetPoint(ctx context.Context, pointID string) (*models.PONInfo, *httpclient.Fault) {
	var env pointEnvelope
	fault := s.http.Get(ctx, s.url(pathGetPoint, pointQuery{PointID: pointID}), s.headers(), &env)
	if fault != nil {
		return nil, fault
	}
	return &env.Result.Point, nil
}

// SearchClient returns the service records bound to a subscriber, in
// backend order.
func (s *Service) SearchClient(ctx context.Context, clientID string) ([]models.ServiceRecord, *httpclient.Fault) {
	var env searchClientEnvelope
	fault := s.http.Get(ctx, s.url(pathSearchClient, clientQuery{ClientCode: clientID}), s.headers(), &env)
	if fault != nil {
		return nil, fault
	}
	return env.Results, nil
}

// SearchBoxByName resolves a box name to its id using the first search hit.
func (s *Service) SearchBoxByName(ctx context.Context, boxName string) (string, *httpclient.Fault) {
	var env searchBoxEnvelope
	fault := s.http.Get(ctx, s.url(pathSearchBox, boxNameQuery{BoxName: boxName}), s.headers(), &env)
	if fault != nil {
		return "", fault
	}
	if len(env.Results) == 0 {
		return "", nil
	}
	return env.Results[0].BoxID.String(), nil
}

// SearchReservations returns the pending reservations recorded for a
// subscriber.
func (s *Service) SearchReservations(ctx context.Context, clientID string) ([]models.Reservation, *httpclient.Fault) {
	var env reservationEnvelope
	fault := s.http.Get(ctx, s.url(pathReservations, reservationQuery{ReservationID: clientID}), s.headers(), &env)
	if fault != nil {
		return nil, fault
	}
	return env.Results, nil
}
