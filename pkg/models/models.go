package models

// Status codes carried inside backend payloads. These are the only two
// lifecycle codes the resolution flow branches on.
const (
	ReservationStatusPending = 4
	PointStatusInService     = 8
)

// PointAttributes is the vendor attribute bag attached to every point.
// Field names follow the upstream wire format.
type PointAttributes struct {
	ServiceHSI    Scalar `json:"cod_srv_hsi"`
	ActiveClients string `json:"cod_cli_active"`
	Opportunity   Scalar `json:"cod_opportunity"`
}

// HasActiveClient reports whether the slash-delimited active subscriber list
// contains clientID.
func (a PointAttributes) HasActiveClient(clientID string) bool {
	if clientID == "" {
		return false
	}
	for _, id := range a.ActiveClientList() {
		if id == clientID {
			return true
		}
	}
	return false
}

// ActiveClientList splits the cod_cli_active field into individual ids.
func (a PointAttributes) ActiveClientList() []string {
	if a.ActiveClients == "" {
		return nil
	}
	return splitSlash(a.ActiveClients)
}

// Point is one physical output on a distribution box.
type Point struct {
	PointID        Scalar          `json:"point_id"`
	PointName      string          `json:"point_name"`
	StatusID       int             `json:"status_id"`
	StatusName     string          `json:"status_name"`
	VerifiedSignal Scalar          `json:"verified_signal"`
	Attributes     PointAttributes `json:"attributes"`
}

// Box is a fiber distribution box (CTO) and its ordered point list.
type Box struct {
	BoxID       Scalar  `json:"box_id"`
	BoxFullName string  `json:"box_full_name"`
	Points      []Point `json:"points"`
}

// ServiceRecord is one row of a subscriber-to-box search: the box a service
// terminates on plus the bound point.
type ServiceRecord struct {
	BoxID       Scalar `json:"box_id"`
	BoxFullName string `json:"box_full_name"`
	Point       Point  `json:"point"`
}

// Reservation is a pending allocation of a subscriber+service pair to a
// future point, with its target box embedded.
type Reservation struct {
	StatusID   int             `json:"status_id"`
	StatusName string          `json:"status_name"`
	PointID    Scalar          `json:"point_id"`
	PointName  string          `json:"point_name"`
	Attributes PointAttributes `json:"attributes"`
	Box        Box             `json:"box"`
}

// PONInfo is the slice of a point detail used for PON-port validation.
// PONPort stays a pointer so an absent attribute can default to valid.
type PONInfo struct {
	PONPort *Scalar `json:"pon_port"`
}

// CPEDevice is one equipment entry of a telemetry response. Signal, uptime
// and temperature arrive raw and vendor-encoded; the convert package decodes
// them.
type CPEDevice struct {
	CID    Scalar `json:"cid"`
	CID2   Scalar `json:"cid2"`
	CPEID  string `json:"cpeid"`
	Model  string `json:"Modelo"`
	Signal Scalar `json:"Sinal"`
	Uptime Scalar `json:"Uptime"`
	Temp   Scalar `json:"Temp"`
	State  Scalar `json:"state"`
}

// ClientPlan is one access plan of a subscriber status lookup.
type ClientPlan struct {
	LoginPPPoE  string `json:"login_pppoe"`
	StatusPPPoE string `json:"status_pppoe"`
	PlanNumber  Scalar `json:"numero_plano"`
	PlanName    string `json:"nome_plano"`
	PlanStatus  string `json:"status_plano"`
	LastIP      string `json:"last_ip"`
	AccessPoint string `json:"ponto_acesso"`
}

// OnCall is the current on-call operator roster entry.
type OnCall struct {
	Name        string   `json:"nome"`
	PeriodStart string   `json:"periodo_inicio"`
	PeriodEnd   string   `json:"periodo_fim"`
	DutyPhone   string   `json:"tel_plantao"`
	Phones      []string `json:"tel"`
}
