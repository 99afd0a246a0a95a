// Package cpe queries the ACS for live customer-premises-equipment
// telemetry and aggregates it per distribution box.
package cpe

import (
	"context"
	"errors"
	"strings"

	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/pkg/models"
)

const statusPath = "/acs/cpestatus/"

// Equipment ids of the supported ONT hardware families contain one of these
// markers; devices without one are ignored during selection.
var hardwareMarkers = []string{"48", "5a"}

// Payload-level outcomes of a telemetry lookup.
var (
	ErrNotFound     = errors.New("no equipment found for the subscriber")
	ErrInvalidQuery = errors.New("telemetry query rejected upstream")
)

type Service struct {
	cfg           config.CPEConfig
	http          *httpclient.Client
	maxConcurrent int
}

func NewService(cfg config.CPEConfig, hc *httpclient.Client) *Service {
	maxConcurrent := cfg.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{cfg: cfg, http: hc, maxConcurrent: maxConcurrent}
}

// DeviceList fetches every equipment record the ACS holds for a subscriber.
// Used by the equipment-status operation, which renders all devices rather
// than selecting one.
func (s *Service) DeviceList(ctx context.Context, clientID string) ([]models.CPEDevice, error) {
	var env statusEnvelope
	fault := s.http.Get(ctx, s.cfg.BaseURL+statusPath+clientID, nil, &env)
	if fault != nil {
		return nil, fault
	}
	switch env.Result.Code {
	case 400:
		return nil, ErrNotFound
	case 500:
		return nil, ErrInvalidQuery
	}
	return env.Result.Details, nil
}

// selectDevice picks the device matching the expected service id on a
// recognized hardware family. The ACS can list stale or sibling equipment
// under the same subscriber; cid plus the hardware marker disambiguates.
func selectDevice(details []models.CPEDevice, serviceID string) (models.CPEDevice, bool) {
	for _, device := range details {
		if device.CID.String() != serviceID {
			continue
		}
		for _, marker := range hardwareMarkers {
			if strings.Contains(device.CPEID, marker) {
				return device, true
			}
		}
	}
	return models.CPEDevice{}, false
}
