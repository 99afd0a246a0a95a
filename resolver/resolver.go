// Package resolver answers the question "which physical output is this
// subscriber attached to". It walks a prioritized fallback chain: pending
// reservations first, then active service records, validating the PON port
// before trusting any candidate. Every terminal state is a typed outcome;
// nothing here panics or leaks transport errors.
package resolver

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/richardcertto/n2-bot/inventory"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/pkg/models"
)

// Outcome is the terminal state of one resolution. Ambiguous and not-found
// are valid results requiring caller action, not failures.
type Outcome int

const (
	OutcomeResolved Outcome = iota + 1
	OutcomeAmbiguous
	OutcomeInvalidPort
	OutcomeNotFound
	OutcomeError
)

// PortCheck is the tri-state result of PON-port validation. Indeterminate
// means the validation fetch itself failed; the engine's policy decides
// whether that passes or blocks.
type PortCheck int

const (
	PortValid PortCheck = iota + 1
	PortInvalid
	PortIndeterminate
)

// ServiceChoice is one entry of an ambiguity listing, kept verbatim in
// backend order.
type ServiceChoice struct {
	ServiceID string
	BoxName   string
}

// Resolution is the composed answer for one subscriber.
type Resolution struct {
	Outcome   Outcome
	ClientID  string
	ServiceID string
	BoxID     string
	BoxName   string
	PointName string
	Signal    string
	Status    string

	// FromReservation marks results produced by the reservation branch,
	// including invalid-port remediations for a reserved point.
	FromReservation bool

	// PortCheck carries the validation tri-state when the outcome is
	// OutcomeInvalidPort.
	PortCheck PortCheck

	Choices []ServiceChoice
	Fault   *httpclient.Fault
}

// Sentinel errors of the in-box point search.
var (
	errNoBoxFound     = errors.New("no box found for the subscriber")
	ErrSignalNotFound = errors.New("signal not found for the subscriber in the box")
)

type Engine struct {
	inv *inventory.Service

	// strictPorts blocks resolution when PON validation is indeterminate.
	// The default keeps the historical fail-open behavior: upstream
	// flakiness must not lock operators out of a diagnosis.
	strictPorts bool
}

func NewEngine(inv *inventory.Service) *Engine {
	return &Engine{inv: inv}
}

// SetStrictPortValidation makes an indeterminate PON check behave as
// invalid instead of valid.
func (e *Engine) SetStrictPortValidation(strict bool) {
	e.strictPorts = strict
}

// Resolve locates the physical point serving clientID. serviceID narrows
// the search when the subscriber has several services; when empty it is
// adopted from the first matching reservation or the sole active service.
func (e *Engine) Resolve(ctx context.Context, clientID, serviceID string) Resolution {
	logrus.Infof("Resolving attachment for client %s", clientID)

	if res, ok := e.resolveFromReservation(ctx, clientID, serviceID); ok {
		return res
	}

	records, fault := e.inv.SearchClient(ctx, clientID)
	if fault != nil {
		return Resolution{Outcome: OutcomeError, ClientID: clientID, ServiceID: serviceID, Fault: fault}
	}
	if len(records) == 0 {
		return Resolution{Outcome: OutcomeNotFound, ClientID: clientID, ServiceID: serviceID}
	}

	if serviceID == "" && len(records) > 1 {
		choices := make([]ServiceChoice, 0, len(records))
		for _, rec := range records {
			choices = append(choices, ServiceChoice{
				ServiceID: rec.Point.Attributes.ServiceHSI.String(),
				BoxName:   rec.BoxFullName,
			})
		}
		return Resolution{Outcome: OutcomeAmbiguous, ClientID: clientID, Choices: choices}
	}

	var target *models.ServiceRecord
	if serviceID != "" {
		for i := range records {
			if records[i].Point.Attributes.ServiceHSI.String() == serviceID {
				target = &records[i]
				break
			}
		}
	} else {
		target = &records[0]
		serviceID = target.Point.Attributes.ServiceHSI.String()
	}

	if target != nil && target.Point.StatusID == models.PointStatusInService {
		check := e.validatePort(ctx, target.Point.PointID.String())
		if e.blocks(check) {
			return Resolution{
				Outcome:   OutcomeInvalidPort,
				ClientID:  clientID,
				ServiceID: serviceID,
				PortCheck: check,
			}
		}

		res := Resolution{
			Outcome:   OutcomeResolved,
			ClientID:  clientID,
			ServiceID: serviceID,
			BoxID:     target.BoxID.String(),
			BoxName:   target.BoxFullName,
			PointName: target.Point.PointName,
		}
		if info, err := e.pointStatus(ctx, clientID, serviceID, ""); err == nil {
			res.Signal = info.Signal
			res.Status = info.Status
		} else {
			logrus.Warnf("Point status lookup failed for client %s: %v", clientID, err)
		}
		return res
	}

	return Resolution{Outcome: OutcomeNotFound, ClientID: clientID, ServiceID: serviceID}
}

// resolveFromReservation walks the pending reservations of a subscriber.
// Transport failures here fall through to the service lookup: a reservation
// is an optimization of the search, never a gate on it.
func (e *Engine) resolveFromReservation(ctx context.Context, clientID, serviceID string) (Resolution, bool) {
	reservations, fault := e.inv.SearchReservations(ctx, clientID)
	if fault != nil {
		logrus.Warnf("Reservation search failed for client %s: %s", clientID, fault.Message)
		return Resolution{}, false
	}

	for _, res := range reservations {
		if res.StatusID != models.ReservationStatusPending {
			continue
		}
		resServiceID := res.Attributes.ServiceHSI.String()
		if serviceID != "" && resServiceID != serviceID {
			continue
		}
		if serviceID == "" {
			serviceID = resServiceID
		}

		check := e.validatePort(ctx, res.PointID.String())
		if e.blocks(check) {
			return Resolution{
				Outcome:         OutcomeInvalidPort,
				ClientID:        clientID,
				ServiceID:       serviceID,
				FromReservation: true,
				PortCheck:       check,
			}, true
		}

		out := Resolution{
			Outcome:         OutcomeResolved,
			ClientID:        clientID,
			ServiceID:       serviceID,
			BoxID:           res.Box.BoxID.String(),
			BoxName:         res.Box.BoxFullName,
			PointName:       res.PointName,
			Status:          res.StatusName,
			FromReservation: true,
		}
		if out.BoxID != "" {
			if info, err := e.pointStatus(ctx, clientID, serviceID, out.BoxID); err == nil {
				out.Signal = info.Signal
			} else {
				logrus.Warnf("Signal lookup failed for reserved client %s: %v", clientID, err)
			}
		}
		return out, true
	}

	return Resolution{}, false
}

// validatePort fetches the point detail and reads its pon_port attribute.
// An absent attribute counts as valid; a failed fetch is indeterminate.
func (e *Engine) validatePort(ctx context.Context, pointID string) PortCheck {
	info, fault := e.inv.GetPoint(ctx, pointID)
	if fault != nil {
		logrus.Warnf("PON-port validation fetch failed for point %s: %s", pointID, fault.Message)
		return PortIndeterminate
	}
	if info.PONPort == nil {
		return PortValid
	}
	if info.PONPort.Bool() {
		return PortValid
	}
	return PortInvalid
}

// blocks applies the engine's indeterminate policy to a port check.
func (e *Engine) blocks(check PortCheck) bool {
	if check == PortInvalid {
		return true
	}
	return check == PortIndeterminate && e.strictPorts
}

type pointStatusInfo struct {
	BoxID  string
	Signal string
	Status string
}

// pointStatus finds the point of a box that serves the subscriber and
// returns its verified base signal and status name. When boxID is empty the
// box is derived from the subscriber's service records first.
func (e *Engine) pointStatus(ctx context.Context, clientID, serviceID, boxID string) (*pointStatusInfo, error) {
	codeBox := boxID
	if codeBox == "" {
		records, fault := e.inv.SearchClient(ctx, clientID)
		if fault != nil {
			return nil, fault
		}
		if len(records) == 1 {
			codeBox = records[0].BoxID.String()
			if serviceID != "" && records[0].Point.Attributes.ServiceHSI.String() != serviceID {
				codeBox = ""
			}
		} else if serviceID != "" {
			for _, rec := range records {
				if rec.Point.Attributes.ServiceHSI.String() == serviceID {
					codeBox = rec.BoxID.String()
					break
				}
			}
		}
		if codeBox == "" && len(records) > 0 {
			codeBox = records[0].BoxID.String()
		}
	}
	if codeBox == "" {
		return nil, errNoBoxFound
	}

	box, err := e.inv.GetBox(ctx, codeBox)
	if err != nil {
		return nil, err
	}

	for _, point := range box.Points {
		attrs := point.Attributes
		if !attrs.HasActiveClient(clientID) && attrs.Opportunity.String() != clientID {
			continue
		}
		if serviceID != "" && attrs.ServiceHSI.String() != serviceID {
			continue
		}
		return &pointStatusInfo{
			BoxID:  codeBox,
			Signal: point.VerifiedSignal.String(),
			Status: point.StatusName,
		}, nil
	}

	return nil, ErrSignalNotFound
}
