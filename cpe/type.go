package cpe

import "github.com/richardcertto/n2-bot/pkg/models"

// Telemetry responses wrap everything in a capitalized Result object with a
// payload-level code; 400 and 500 inside the body mean "not found" and
// "invalid query", independent of the HTTP status.
type statusEnvelope struct {
	Result statusResult `json:"Result"`
}

type statusResult struct {
	Code    int                `json:"code"`
	Details []models.CPEDevice `json:"details"`
}

// RecordKind distinguishes a real telemetry reading from the sentinel
// records produced when a per-subscriber fetch degrades. Partial failure of
// one subscriber never aborts the batch; it becomes one of these.
type RecordKind int

const (
	RecordOK RecordKind = iota + 1
	RecordQueryError
	RecordNoData
	RecordCancelled
)

// Record is the normalized telemetry of one subscriber's equipment. Signal
// and temperature have already been through the convert package; State stays
// the raw operational code for the presentation layer to label.
type Record struct {
	Kind        RecordKind
	Signal      string
	State       string
	Model       string
	Serial      string
	Uptime      string
	Temperature string
}
