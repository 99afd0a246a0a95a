// Package render turns the core's structured results into the HTML messages
// shown to operators. Nothing here talks to the network; it only consumes
// resolutions, telemetry maps and typed errors produced elsewhere.
package render

import (
	"fmt"
	"strings"

	"github.com/richardcertto/n2-bot/pkg/convert"
	"github.com/richardcertto/n2-bot/pkg/models"
	"github.com/richardcertto/n2-bot/resolver"
)

const divider = "— — — — — — — — — —"

// AccessDenied is shown when an operator id is not in the permission table.
func AccessDenied(name string) string {
	return fmt.Sprintf(
		"<b>🚫 Acesso negado, %s.</b>\n\n"+
			"⚠️ Seu ID não foi encontrado na lista de usuários autorizados.\n"+
			"ℹ️ Se achar que se trata de um erro, contate o setor de Operações.", name)
}

// QueryFailure is the generic message for transport-level failures.
func QueryFailure() string {
	return "🤖❌ <b>Falha na consulta</b>\n\n" +
		"Houve um problema ao consultar o serviço.\n\n" +
		"O sistema pode estar temporariamente indisponível. Por favor, tente novamente em alguns instantes."
}

// InvalidQuery echoes a validation message the upstream returned.
func InvalidQuery(reason string) string {
	return fmt.Sprintf(
		"⚠️ <b>Consulta Inválida</b>\n\n<b>Motivo:</b> \"%s\"\n\n"+
			"Por favor, verifique o código do cliente e tente novamente.", reason)
}

// Resolution renders the outcome of an attachment resolution.
func Resolution(res resolver.Resolution) string {
	switch res.Outcome {
	case resolver.OutcomeResolved:
		return resolvedMessage(res)
	case resolver.OutcomeAmbiguous:
		return ambiguousMessage(res)
	case resolver.OutcomeInvalidPort:
		if res.FromReservation {
			return "A porta reservada para este cliente não possui uma porta PON válida. Revise a reserva deste cliente!"
		}
		return "A porta do cliente não possui uma PON válida. Revise o registro!"
	case resolver.OutcomeNotFound:
		msg := fmt.Sprintf("❌ Nenhuma conexão ativa ou reserva válida encontrada para o cliente <b>%s</b>", res.ClientID)
		if res.ServiceID != "" {
			msg += fmt.Sprintf(" com o serviço <code>%s</code>", res.ServiceID)
		}
		return msg + ". Verifique os dados informados e a documentação."
	default:
		return QueryFailure()
	}
}

func resolvedMessage(res resolver.Resolution) string {
	serviceID := res.ServiceID
	if serviceID == "" {
		serviceID = "N/A"
	}
	boxName := res.BoxName
	if boxName == "" {
		boxName = "CTO desconhecida"
	}
	pointName := res.PointName
	if pointName == "" {
		pointName = "Ponto desconhecido"
	}
	signal := ""
	if res.Signal != "" {
		signal = res.Signal + " dBm\n"
	}
	status := ""
	if res.Status != "" {
		status = res.Status + "\n"
	}

	return fmt.Sprintf(
		"<b>🔍 Resultado da Verificação</b>\n"+
			"<b>👤 Cliente:</b> %s\n"+
			"<b>📡 Serviço:</b> %s\n"+
			"<b>💡 λ base:</b> %s"+
			"<b>📌 Status:</b> %s"+
			"<b>📝 CTO:</b> %s\n"+
			"<b>🔌 Saída:</b> %s",
		res.ClientID, serviceID, signal, status, boxName, pointName)
}

func ambiguousMessage(res resolver.Resolution) string {
	var services []string
	for _, choice := range res.Choices {
		serviceID := choice.ServiceID
		if serviceID == "" {
			serviceID = "N/A"
		}
		boxName := choice.BoxName
		if boxName == "" {
			boxName = "CTO desconhecida"
		}
		services = append(services, fmt.Sprintf("⚙️ Serviço <code>%s</code> na CTO <code>%s</code>", serviceID, boxName))
	}

	return fmt.Sprintf(
		"⚠️ Cliente <b>%s</b> possui múltiplos serviços ativos.\n\n"+
			"Por favor, especifique o código do serviço desejado.\n\n"+
			"<b>Exemplo:</b> <code>/cto %s código_do_serviço</code>\n\n"+
			"<b>Serviços encontrados:</b>\n%s",
		res.ClientID, res.ClientID, strings.Join(services, "\n"))
}

// ClientStatusReport renders the plans of a subscriber. Plans without a
// PPPoE login are administrative records and are skipped; an empty report
// means the subscriber effectively was not found.
func ClientStatusReport(plans []models.ClientPlan) string {
	statusEmoji := map[string]string{
		"Connected":    "✅",
		"Disconnected": "❌",
		"Desconhecido": "❓",
	}

	var blocks []string
	for _, plan := range plans {
		if plan.LoginPPPoE == "" {
			continue
		}
		status := plan.StatusPPPoE
		if status == "" {
			status = "Desconhecido"
		}
		accessPoint := plan.AccessPoint
		if accessPoint == "" {
			accessPoint = "Não informado"
		}
		blocks = append(blocks, fmt.Sprintf(
			"<b>📶 Plano:</b> (%s) %s\n"+
				"<b>ℹ️ Status PPPoE:</b> %s %s\n"+
				"<b>📄 Estado do Contrato:</b> %s\n"+
				"<b>🌐 IP:</b> <code>%s</code>\n"+
				"<b>📍 Ponto de Acesso:</b> %s",
			orNA(plan.PlanNumber.String()), orNA(plan.PlanName), status, statusEmoji[status],
			orNA(plan.PlanStatus), orNA(plan.LastIP), accessPoint))
	}

	if len(blocks) == 0 {
		return ""
	}
	return "👤 <b>Status do Cliente:</b>\n\n" + strings.Join(blocks, "\n\n"+divider+"\n\n")
}

// CPEReport renders every equipment record of a subscriber.
func CPEReport(devices []models.CPEDevice) string {
	if len(devices) == 0 {
		return "⚠️ Nenhum equipamento encontrado para este cliente."
	}

	var blocks []string
	for _, device := range devices {
		signal := device.Signal.String()
		if device.Model == convert.ModelONT142NG {
			signal = convert.Power(signal)
		}
		blocks = append(blocks, fmt.Sprintf(
			"<b>⚙️ Status:</b> <code>%s</code>\n"+
				"<b>🔢 Serial:</b> <code>%s</code>\n"+
				"<b>📍 Modelo:</b> <code>%s</code>\n"+
				"<b>📶 Sinal:</b> <code>%s</code>\n"+
				"<b>⏱️ Uptime:</b> <code>%s</code>\n"+
				"<b>🌡️ Temp:</b> <code>%s°C</code>\n"+
				"<b>👤 Cliente:</b> <code>%s</code>\n"+
				"<b>📡 Plano:</b> <code>%s</code>",
			convert.StateLabel(device.State.String()),
			orSemDados(device.CPEID),
			orSemDados(device.Model),
			convert.PowerPretty(signal),
			convert.Uptime(device.Uptime.String()),
			convert.Temperature(device.Temp.String(), device.Model),
			orSemDados(device.CID2.String()),
			orSemDados(device.CID.String())))
	}

	return "<b>📡 Equipamentos do Cliente:</b>\n\n" + strings.Join(blocks, "\n"+divider+"\n\n")
}

// OnCallReport renders the current on-call roster entry.
func OnCallReport(roster *models.OnCall) string {
	name := roster.Name
	if name == "" {
		name = "Desconhecido"
	}
	periodStart := roster.PeriodStart
	if periodStart == "" {
		periodStart = "Início não informado"
	}
	periodEnd := roster.PeriodEnd
	if periodEnd == "" {
		periodEnd = "Fim não informado"
	}
	dutyPhone := roster.DutyPhone
	if dutyPhone == "" {
		dutyPhone = "Não informado"
	}
	personalPhone := "Não informado"
	if len(roster.Phones) > 0 {
		personalPhone = roster.Phones[0]
	}
	extension := "Não informado"
	if len(roster.Phones) > 1 {
		extension = roster.Phones[1]
	}

	return fmt.Sprintf(
		"⚠️ <b>Sobreaviso</b>\n"+
			"<i>(Válido após horário comercial, sábados, domingos e feriados)</i>\n\n"+
			"<b>Procedimento:</b> Se o plantonista não atender na primeira tentativa, insista com novas ligações a cada 5 minutos e registre o ocorrido no Redmine.\n\n"+
			"• <b>Período:</b> %s até %s\n"+
			"• <b>Plantonista:</b> %s\n"+
			"• <b>Telefone de plantão:</b> %s\n"+
			"• <b>Telefone particular:</b> %s\n"+
			"• <b>Ramal interno:</b> %s",
		periodStart, periodEnd, name, dutyPhone, personalPhone, extension)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func orSemDados(v string) string {
	if v == "" {
		return "Sem dados"
	}
	return v
}
