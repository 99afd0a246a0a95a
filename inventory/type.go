package inventory

import "github.com/richardcertto/n2-bot/pkg/models"

// Response envelopes for the box/reservation API. Payload-level status codes
// ride inside 200 responses and are mapped to sentinel errors in service.go.

type boxEnvelope struct {
	StatusCode int        `json:"status_code"`
	Result     models.Box `json:"result"`
}

type pointEnvelope struct {
	Result struct {
		Point models.PONInfo `json:"point"`
	} `json:"result"`
}

type searchClientEnvelope struct {
	Results []models.ServiceRecord `json:"results"`
}

type searchBoxEnvelope struct {
	Results []models.Box `json:"results"`
}

type reservationEnvelope struct {
	Results []models.Reservation `json:"results"`
}

// Query parameter structs, encoded with go-querystring.

type boxQuery struct {
	BoxID string `url:"box_id"`
}

type pointQuery struct {
	PointID string `url:"point_id"`
}

type clientQuery struct {
	ClientCode string `url:"cod_cli"`
}

type boxNameQuery struct {
	BoxName string `url:"box_name"`
}

// The reservation search takes the subscriber id through the reservation_id
// parameter; that is the upstream contract, not a mixup here.
type reservationQuery struct {
	ReservationID string `url:"reservation_id"`
}
