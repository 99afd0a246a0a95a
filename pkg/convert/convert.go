// Package convert decodes the vendor-specific raw telemetry encodings used
// by the CPE fleet into human-meaningful values. Everything here is pure:
// no I/O, no shared state, and malformed input always yields a sentinel
// instead of an error.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ModelONT142NG is the equipment family whose raw readings are scaled
// fixed-point encodings instead of plain dBm / Celsius values.
const ModelONT142NG = "ONT142NG"

// Signal levels above this threshold render as healthy; at or below, as
// degraded. The threshold is inclusive on the degraded side.
const healthyThresholdDBm = -24.0

// Sentinels rendered when a raw reading cannot be decoded.
const (
	NoData  = "Sem dados"
	Invalid = "Valor inválido"
)

// PowerDBm decodes the compact linear power ratio emitted by the ONT142NG
// family. The raw value is a 2 or 3 character digit string; two characters
// carry a ratio scaled by 1000, three a ratio scaled by 100. The result is
// 10*log10 of the ratio in dBm, rounded to two decimals.
func PowerDBm(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	var padded string
	if len(raw) == 2 {
		padded = "0.00" + raw
	} else {
		padded = "0.0" + raw
	}
	v, err := strconv.ParseFloat(padded, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	dbm := 10 * math.Log10(v)
	return math.Round(dbm*100) / 100, true
}

// Power is PowerDBm with the sentinel convention of the presentation layer:
// empty input means no data, undecodable input is invalid.
func Power(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NoData
	}
	v, ok := PowerDBm(raw)
	if !ok {
		return Invalid
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// PowerPretty appends the unit and a health marker to a decoded signal
// level. Values that do not parse as a number are echoed with a failure
// marker rather than dropped.
func PowerPretty(val string) string {
	if strings.TrimSpace(val) == "" {
		return NoData + " ❌"
	}
	cleaned := strings.TrimSpace(strings.ReplaceAll(val, "dBm", ""))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return val + " ❌"
	}
	if v > healthyThresholdDBm {
		return fmt.Sprintf("%.2f dBm ✅", v)
	}
	return fmt.Sprintf("%.2f dBm ⚠️", v)
}

// Temperature converts a raw temperature reading to whole Celsius degrees.
// The ONT142NG reports Fahrenheit scaled by 100; other models already report
// Celsius and pass through. Undecodable input yields "0".
func Temperature(raw, model string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	if model != ModelONT142NG {
		return raw
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "0"
	}
	fahrenheit := float64(n) / 100
	celsius := (fahrenheit - 32) * 5 / 9
	return strconv.Itoa(int(math.Round(celsius)))
}

// Uptime renders elapsed seconds as a compact "<d>d <h>h <m>m" token. Zero
// leading units are omitted; minutes are always present. Input that does not
// parse as a number is returned unchanged.
func Uptime(raw string) string {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || seconds < 0 {
		return raw
	}
	total := int64(seconds)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%dm", minutes))
	return strings.Join(parts, " ")
}

// cpeStates maps the equipment operational state enumeration to display
// labels. Codes outside the table (and non-numeric input) fall back to the
// cancelled-subscriber label: decommissioned equipment keeps reporting
// unknown codes long after the service is gone.
var cpeStates = map[int]string{
	0: "ONLINE ✅",
	1: "Pendente ⚠️",
	2: "Configurando ⏛",
	3: "Config Inicial ➡️",
	4: "OFFLINE ❌",
	5: "OFFLINE ❌",
	6: "OFFLINE ❌",
	7: "Falha na config ❗",
	8: "Baixando firmware ☁️",
	9: "Reiniciando... ⚡",
}

// StateCancelled is the catch-all label for unknown operational states.
const StateCancelled = "Cliente Cancelado ❌"

// StateLabel maps an operational state code to its display label.
func StateLabel(state string) string {
	code, err := strconv.Atoi(strings.TrimSpace(state))
	if err != nil {
		return StateCancelled
	}
	if label, ok := cpeStates[code]; ok {
		return label
	}
	return StateCancelled
}
