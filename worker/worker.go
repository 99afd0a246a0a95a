// Package worker wires the resolution engine, the telemetry aggregator and
// the lookup services into the operations a front end dispatches. Every
// operation returns a ready-to-send message; no failure escapes as an error.
package worker

import (
	"context"
	"errors"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/richardcertto/n2-bot/auth"
	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/cpe"
	"github.com/richardcertto/n2-bot/inventory"
	"github.com/richardcertto/n2-bot/isp"
	"github.com/richardcertto/n2-bot/oncall"
	"github.com/richardcertto/n2-bot/render"
	"github.com/richardcertto/n2-bot/resolver"
)

// CTONamePattern recognizes box names so dispatchers can tell a box query
// from a subscriber query by the first argument alone.
var CTONamePattern = regexp.MustCompile(`(?i)^([A-Z]{2,4}-A[0-9]{3}-CTO[1-9]{1,3}|[A-Z]{2,4}_A[0-9]{3}_CD[0-9]{1,2}_(C[1-9]{1,2})-(A[0-9]{1,3}|T[0-9]{1,3}|D[0-9]{1,2})-(T[0-9]{1,3}|T[0-9]{1,3}-FTTA_(.*))_CTO[1-9]{1,3}|[A-Z]{2,4}_A[0-9]{3}_CTO[1-9]{1,3})`)

// Reply is an operation result: the message plus, when a box was resolved,
// an action reference the front end can turn into a "view box details"
// control.
type Reply struct {
	Message      string
	DetailsBoxID string
}

type Worker struct {
	cfg       *config.Config
	inventory *inventory.Service
	resolver  *resolver.Engine
	cpe       *cpe.Service
	isp       *isp.Service
	oncall    *oncall.Service
	auth      *auth.Service
}

func New(cfg *config.Config, inv *inventory.Service, eng *resolver.Engine, cpeSvc *cpe.Service, ispSvc *isp.Service, oncallSvc *oncall.Service, authSvc *auth.Service) *Worker {
	return &Worker{
		cfg:       cfg,
		inventory: inv,
		resolver:  eng,
		cpe:       cpeSvc,
		isp:       ispSvc,
		oncall:    oncallSvc,
		auth:      authSvc,
	}
}

// Authorize checks an operator id against the permission table.
func (w *Worker) Authorize(ctx context.Context, userID int64) bool {
	return w.auth.AuthorizedUser(ctx, userID)
}

// CheckAttachment resolves which physical output serves a subscriber and
// renders the outcome.
func (w *Worker) CheckAttachment(ctx context.Context, clientID, serviceID string) Reply {
	res := w.resolver.Resolve(ctx, clientID, serviceID)

	reply := Reply{Message: render.Resolution(res)}
	if res.Outcome == resolver.OutcomeResolved && res.BoxID != "" {
		reply.DetailsBoxID = res.BoxID
	}
	return reply
}

// BoxReportByName resolves a box name to its id and builds the full report.
func (w *Worker) BoxReportByName(ctx context.Context, boxName string) string {
	boxID, fault := w.inventory.SearchBoxByName(ctx, boxName)
	if fault != nil {
		logrus.Errorf("Box name search failed for %s: %s", boxName, fault.Message)
		return render.QueryFailure()
	}
	if boxID == "" {
		return render.BoxNameNotFound()
	}
	return w.BoxReportByID(ctx, boxID)
}

// BoxReportByID fetches a box snapshot, aggregates live CPE telemetry for
// every occupied point and renders the combined report.
func (w *Worker) BoxReportByID(ctx context.Context, boxID string) string {
	box, err := w.inventory.GetBox(ctx, boxID)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return render.BoxNotFound()
	case errors.Is(err, inventory.ErrUnavailable):
		return render.BoxUnavailable()
	case err != nil:
		logrus.Errorf("Box fetch failed for %s: %v", boxID, err)
		return render.QueryFailure()
	}

	status := w.cpe.Aggregate(ctx, boxID, box.Points)
	return render.BoxReport(box, status)
}

// ClientStatus renders the access plans of a subscriber.
func (w *Worker) ClientStatus(ctx context.Context, clientID string) string {
	plans, err := w.isp.ClientStatus(ctx, clientID)
	if err != nil {
		var apiErr *isp.APIError
		switch {
		case errors.As(err, &apiErr):
			return render.InvalidQuery(apiErr.Message)
		case errors.Is(err, isp.ErrNotFound):
			return render.ClientNotFound()
		case errors.Is(err, isp.ErrServer):
			return render.ServerError()
		default:
			return render.QueryFailure()
		}
	}

	message := render.ClientStatusReport(plans)
	if message == "" {
		logrus.Infof("No plan with a PPPoE login found for client %s", clientID)
		return render.ClientNotFound()
	}
	return message
}

// CPEStatus renders every equipment record of a subscriber.
func (w *Worker) CPEStatus(ctx context.Context, clientID string) string {
	devices, err := w.cpe.DeviceList(ctx, clientID)
	if err != nil {
		switch {
		case errors.Is(err, cpe.ErrNotFound):
			return render.EquipmentNotFound()
		case errors.Is(err, cpe.ErrInvalidQuery):
			return render.EquipmentInvalidQuery()
		default:
			return render.QueryFailure()
		}
	}
	return render.CPEReport(devices)
}

// OnCallStatus renders the current on-call roster entry.
func (w *Worker) OnCallStatus(ctx context.Context) string {
	roster, err := w.oncall.Current(ctx)
	if err != nil {
		return render.OnCallError()
	}
	return render.OnCallReport(roster)
}
