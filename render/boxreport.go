package render

import (
	"fmt"
	"strings"

	"github.com/richardcertto/n2-bot/cpe"
	"github.com/richardcertto/n2-bot/pkg/convert"
	"github.com/richardcertto/n2-bot/pkg/models"
)

const boxDivider = "— — — — — — — — — — — — —"

var statusEmojis = map[string]string{
	"disponível":  "🟢",
	"em operação": "🔵",
	"reservado":   "🟠",
	"bloqueado":   "🔴",
}

// BoxReport renders a full box snapshot: one block per occupied or reserved
// point, enriched with the aggregated CPE telemetry, plus a status summary.
func BoxReport(box *models.Box, status map[string]cpe.Record) string {
	boxName := box.BoxFullName
	if boxName == "" {
		boxName = "N/A"
	}
	if len(box.Points) == 0 {
		return fmt.Sprintf("Nenhuma saída encontrada para a CTO %s.", boxName)
	}

	counts := map[string]int{
		"disponível":  0,
		"em operação": 0,
		"reservado":   0,
		"bloqueado":   0,
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>📡 %s:</b>\n\n%s\n\n", boxName, boxDivider)

	for _, point := range box.Points {
		pointStatus := strings.ToLower(point.StatusName)
		if _, tracked := counts[pointStatus]; tracked {
			counts[pointStatus]++
		}

		attrs := point.Attributes
		baseSignal := orNA(point.VerifiedSignal.String())
		pointName := orNA(point.PointName)
		emoji, ok := statusEmojis[pointStatus]
		if !ok {
			emoji = "⚪"
		}

		switch pointStatus {
		case "em operação":
			signal, ontStatus := recordDisplay(status, attrs.ActiveClients)
			fmt.Fprintf(&sb,
				"<b>🔹 Saída:</b> %s\n"+
					"<b>💡 λ base:</b> %s\n"+
					"<b>👤 Cliente:</b> %s\n"+
					"<b>📶 Plano:</b> %s\n"+
					"<b>📊 Sinal CPE:</b> %s\n"+
					"<b>📟 ONT:</b> %s\n"+
					"<b>📌 Status:</b> %s %s\n\n%s\n\n",
				pointName, baseSignal, orNA(attrs.ActiveClients), orNA(attrs.ServiceHSI.String()),
				signal, ontStatus, emoji, title(pointStatus), boxDivider)
		case "reservado":
			fmt.Fprintf(&sb,
				"<b>🔹 Saída:</b> %s\n"+
					"<b>💡 λ base:</b> %s\n"+
					"<b>👤 Cliente:</b> %s\n"+
					"<b>📶 Plano:</b> %s\n"+
					"<b>📌 Status:</b> %s %s\n\n%s\n\n",
				pointName, baseSignal, orNA(attrs.Opportunity.String()), orNA(attrs.ServiceHSI.String()),
				emoji, title(pointStatus), boxDivider)
		}
	}

	sb.WriteString("<b>📊 Resumo por status:</b>\n")
	for _, key := range []string{"disponível", "em operação"} {
		fmt.Fprintf(&sb, "%s %s: %d\n", statusEmojis[key], title(key), counts[key])
	}
	for _, key := range []string{"reservado", "bloqueado"} {
		if counts[key] > 0 {
			fmt.Fprintf(&sb, "%s %s: %d\n", statusEmojis[key], title(key), counts[key])
		}
	}

	return strings.TrimSpace(sb.String())
}

// recordDisplay maps a telemetry record (or its absence) to the signal and
// equipment-state strings of a box report line.
func recordDisplay(status map[string]cpe.Record, clientKey string) (string, string) {
	record, ok := status[clientKey]
	if !ok {
		return "N/A", "Desconhecido ❓"
	}
	switch record.Kind {
	case cpe.RecordQueryError:
		return "N/A", "Erro na Consulta ❌"
	case cpe.RecordCancelled:
		return "Cliente Cancelado ❌", convert.StateCancelled
	case cpe.RecordNoData:
		return convert.NoData + " ❌", "Desconhecido (sem dados)"
	default:
		return record.Signal, convert.StateLabel(record.State)
	}
}

// title uppercases the first letter of each word, matching the upstream
// status names which are lowercase on the wire.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
