package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richardcertto/n2-bot/cpe"
	"github.com/richardcertto/n2-bot/pkg/models"
)

func testBox() *models.Box {
	return &models.Box{
		BoxID:       "77",
		BoxFullName: "POA_A001_CTO1",
		Points: []models.Point{
			{PointName: "Saída 1", StatusName: "disponível"},
			{
				PointName:      "Saída 2",
				StatusName:     "em operação",
				VerifiedSignal: "-19.5",
				Attributes: models.PointAttributes{
					ActiveClients: "123",
					ServiceHSI:    "9001",
				},
			},
			{
				PointName:      "Saída 3",
				StatusName:     "reservado",
				VerifiedSignal: "-21.0",
				Attributes: models.PointAttributes{
					Opportunity: "456",
					ServiceHSI:  "9002",
				},
			},
			{PointName: "Saída 4", StatusName: "disponível"},
		},
	}
}

func TestBoxReport(t *testing.T) {
	status := map[string]cpe.Record{
		"123": {
			Kind:   cpe.RecordOK,
			Signal: "-22.10 dBm ✅",
			State:  "0",
		},
	}

	msg := BoxReport(testBox(), status)

	assert.Contains(t, msg, "<b>📡 POA_A001_CTO1:</b>")
	assert.Contains(t, msg, "<b>🔹 Saída:</b> Saída 2")
	assert.Contains(t, msg, "<b>👤 Cliente:</b> 123")
	assert.Contains(t, msg, "<b>📊 Sinal CPE:</b> -22.10 dBm ✅")
	assert.Contains(t, msg, "<b>📟 ONT:</b> ONLINE ✅")
	assert.Contains(t, msg, "<b>🔹 Saída:</b> Saída 3")
	assert.Contains(t, msg, "<b>👤 Cliente:</b> 456")

	assert.NotContains(t, msg, "Saída 1", "free points are summarized, not listed")

	assert.Contains(t, msg, "🟢 Disponível: 2")
	assert.Contains(t, msg, "🔵 Em Operação: 1")
	assert.Contains(t, msg, "🟠 Reservado: 1")
	assert.NotContains(t, msg, "Bloqueado", "zero-count blocked line is omitted")
}

func TestBoxReportRecordSentinels(t *testing.T) {
	box := &models.Box{
		BoxFullName: "POA_A001_CTO1",
		Points: []models.Point{
			{
				PointName:  "Saída 1",
				StatusName: "em operação",
				Attributes: models.PointAttributes{ActiveClients: "111"},
			},
			{
				PointName:  "Saída 2",
				StatusName: "em operação",
				Attributes: models.PointAttributes{ActiveClients: "222"},
			},
			{
				PointName:  "Saída 3",
				StatusName: "em operação",
				Attributes: models.PointAttributes{ActiveClients: "333"},
			},
			{
				PointName:  "Saída 4",
				StatusName: "em operação",
				Attributes: models.PointAttributes{ActiveClients: "444"},
			},
		},
	}
	status := map[string]cpe.Record{
		"111": {Kind: cpe.RecordQueryError},
		"222": {Kind: cpe.RecordCancelled},
		"333": {Kind: cpe.RecordNoData},
	}

	msg := BoxReport(box, status)

	assert.Contains(t, msg, "Erro na Consulta ❌")
	assert.Contains(t, msg, "Cliente Cancelado ❌")
	assert.Contains(t, msg, "Desconhecido (sem dados)")
	assert.Contains(t, msg, "Desconhecido ❓", "a point missing from the status map stays unknown")
}

func TestBoxReportEmpty(t *testing.T) {
	msg := BoxReport(&models.Box{BoxFullName: "POA_A001_CTO1"}, nil)
	assert.Contains(t, msg, "Nenhuma saída encontrada")
	assert.Contains(t, msg, "POA_A001_CTO1")
}

func TestBoxReportBlockedCountShown(t *testing.T) {
	box := &models.Box{
		BoxFullName: "POA_A001_CTO1",
		Points: []models.Point{
			{PointName: "Saída 1", StatusName: "bloqueado"},
		},
	}

	msg := BoxReport(box, nil)
	assert.Contains(t, msg, "🔴 Bloqueado: 1")
	assert.Equal(t, 1, strings.Count(msg, "Resumo por status"))
}
