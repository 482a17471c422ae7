package analytics

import (
	"fmt"
	"hotelrp/cmd/internal/domain/entity"
	"math"
	"strconv"
)

type CompleteAnalysis struct {
	KPIs          KPIs                  `json:"kpis"`
	SectorTrends  []SectorTrend         `json:"tendencias_setor"`
	Projections   []Projection          `json:"projecoes"`
	Seasonality   []MonthSeasonality    `json:"sazonalidade"`
	EventsSummary entity.EventSummary   `json:"eventos_resumo"`
	Market        entity.MarketAnalysis `json:"mercado"`
	ProposedHotel entity.ProposedHotel  `json:"hotel_proposto"`
}

// Complete derives every dashboard block from the same snapshot.
func (e *Engine) Complete(s *Snapshot) CompleteAnalysis {
	if s == nil {
		s = &Snapshot{}
	}

	var summary entity.EventSummary
	if s.Events != nil {
		summary = s.Events.Summary
	}
	var market entity.MarketAnalysis
	var hotel entity.ProposedHotel
	if s.Market != nil {
		market = s.Market.Analysis
		hotel = s.Market.ProposedHotel
	}

	return CompleteAnalysis{
		KPIs:          e.KPIs(s.Companies, s.Events, s.Market),
		SectorTrends:  e.SectorTrends(s.Companies),
		Projections:   Projections(&hotel),
		Seasonality:   Seasonality(s.events()),
		EventsSummary: summary,
		Market:        market,
		ProposedHotel: hotel,
	}
}

type ScoreFactor struct {
	Value      any    `json:"valor"`
	Weight     string `json:"peso"`
	Evaluation string `json:"avaliacao"`
}

type ScoreDetail struct {
	Score          float64                `json:"score"`
	Classification string                 `json:"classificacao"`
	Recommendation string                 `json:"recomendacao"`
	Breakdown      ScoreBreakdown         `json:"componentes"`
	Factors        map[string]ScoreFactor `json:"fatores"`
	Strengths      []string               `json:"pontos_fortes"`
	AttentionItems []string               `json:"pontos_atencao"`
}

// DetailScore explains a KPI bundle's score: its band, a recommendation and
// the evaluation of every weighted factor.
func DetailScore(k KPIs) ScoreDetail {
	classification, recommendation := scoreBand(k.ViabilityScore)

	growthEval := "Neutro"
	if k.OverallGrowthPercent > 10 {
		growthEval = "Positivo"
	}
	eventsEval := "Bom"
	if k.TotalEvents > 100 {
		eventsEval = "Excelente"
	}
	attendanceEval := "Bom"
	if k.TotalEventAttendance > 300000 {
		attendanceEval = "Excelente"
	}

	return ScoreDetail{
		Score:          k.ViabilityScore,
		Classification: classification,
		Recommendation: recommendation,
		Breakdown: Breakdown(ScoreInputs{
			GrowthPercent:   k.OverallGrowthPercent,
			TotalEvents:     k.TotalEvents,
			TotalAttendance: k.TotalEventAttendance,
			AvailableBeds:   k.AvailableBedsInCity,
		}),
		Factors: map[string]ScoreFactor{
			"crescimento_empresarial": {Value: k.OverallGrowthPercent, Weight: "20%", Evaluation: growthEval},
			"volume_eventos":          {Value: k.TotalEvents, Weight: "25%", Evaluation: eventsEval},
			"publico_turistico":       {Value: k.TotalEventAttendance, Weight: "25%", Evaluation: attendanceEval},
			"gap_mercado": {
				Value:      fmt.Sprintf("%d leitos para %s visitantes", k.AvailableBedsInCity, groupThousands(k.TotalEventAttendance)),
				Weight:     "30%",
				Evaluation: "Crítico - alta oportunidade",
			},
		},
		Strengths: []string{
			fmt.Sprintf("%d mil visitantes anuais com apenas %d leitos disponíveis", k.TotalEventAttendance/1000, k.AvailableBedsInCity),
			fmt.Sprintf("%d eventos programados no calendário municipal", k.TotalEvents),
			"Ausência de hotel upscale e centro de convenções",
			"Crescimento econômico contínuo (300+ empresas/ano)",
			"8ª estância turística do Estado de SP",
			"Apoio institucional (R$5M investimento anual em turismo)",
		},
		AttentionItems: []string{
			"Necessidade de diferenciação clara da concorrência",
			"Dependência de eventos sazonais (Festival do Chocolate concentra 57% do público)",
			"Perfil predominante MEI pode limitar demanda corporativa de alto ticket",
		},
	}
}

func scoreBand(score float64) (string, string) {
	switch {
	case score >= 80:
		return "Excelente", "Projeto altamente viável. Recomenda-se avançar com estudos de engenharia e financeiro."
	case score >= 60:
		return "Bom", "Projeto viável com boas perspectivas. Algumas melhorias podem ser consideradas."
	case score >= 40:
		return "Moderado", "Projeto viável com ressalvas. Requer análise mais aprofundada de riscos."
	default:
		return "Baixo", "Projeto apresenta riscos significativos. Reavaliação necessária."
	}
}

// groupThousands renders n with comma separators (315000 -> "315,000").
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

type DemandSegment struct {
	Description     string         `json:"descricao"`
	Basis           map[string]any `json:"base"`
	PotentialNights int            `json:"diarias_potenciais"`
	AverageTicket   float64        `json:"ticket_medio"`
}

type HotelCapacity struct {
	Rooms         int `json:"quartos"`
	NightsPerYear int `json:"diarias_ano"`
	NightsAt60    int `json:"capacidade_60_ocupacao"`
}

type DemandEstimate struct {
	Segments       map[string]DemandSegment `json:"demanda_por_segmento"`
	TotalPotential int                      `json:"total_diarias_potenciais"`
	Capacity       HotelCapacity            `json:"capacidade_hotel"`
	Conclusion     string                   `json:"conclusao"`
}

// Segment assumptions from the demand study.
const (
	eventOvernightRate   = 0.02
	nightsPerStay        = 1.5
	corporateCompanies   = 600
	corporateVisits      = 3
	socialEventsPerMonth = 15
	guestsPerSocialEvent = 8
	localLeisureAudience = 50000
	localLeisureNights   = 500
)

// EstimateDemand splits potential room nights by segment and compares the
// sum against the proposed hotel's capacity at 60% occupancy.
func EstimateDemand(k KPIs, hotel *entity.ProposedHotel) DemandEstimate {
	if hotel == nil {
		hotel = &entity.ProposedHotel{}
	}
	attendance := k.TotalEventAttendance

	eventNights := float64(attendance) * eventOvernightRate * nightsPerStay
	corporateNights := corporateCompanies * corporateVisits * nightsPerStay
	socialNights := socialEventsPerMonth * 12 * guestsPerSocialEvent

	segments := map[string]DemandSegment{
		"turismo_eventos": {
			Description:     "Visitantes de eventos culturais que pernoitam",
			Basis:           map[string]any{"publico_base": attendance, "taxa_pernoite": "2%"},
			PotentialNights: int(eventNights),
			AverageTicket:   280,
		},
		"corporativo": {
			Description:     "Visitantes a trabalho (fornecedores, consultores)",
			Basis:           map[string]any{"empresas_base": corporateCompanies, "visitas_por_empresa": corporateVisits},
			PotentialNights: int(corporateNights),
			AverageTicket:   300,
		},
		"eventos_sociais": {
			Description:     "Casamentos, formaturas e festas",
			Basis:           map[string]any{"eventos_mes": socialEventsPerMonth, "hospedes_por_evento": guestsPerSocialEvent},
			PotentialNights: socialNights,
			AverageTicket:   260,
		},
		"leisure_local": {
			Description:     "Moradores da região para experiências (rooftop, restaurante)",
			Basis:           map[string]any{"publico_potencial": localLeisureAudience, "taxa_conversao_hospedagem": "1%"},
			PotentialNights: localLeisureNights,
			AverageTicket:   250,
		},
	}

	total := int(math.Floor(eventNights + corporateNights + float64(socialNights) + localLeisureNights))
	rooms := hotel.RoomsOrDefault()
	capacity := HotelCapacity{
		Rooms:         rooms,
		NightsPerYear: rooms * 365,
		NightsAt60:    int(float64(rooms) * 365 * 0.6),
	}

	conclusion := "Demanda potencial supera capacidade do hotel projetado, indicando viabilidade comercial"
	if total < capacity.NightsAt60 {
		conclusion = "Demanda potencial abaixo da capacidade do hotel projetado, exige estratégia comercial ativa"
	}

	return DemandEstimate{
		Segments:       segments,
		TotalPotential: total,
		Capacity:       capacity,
		Conclusion:     conclusion,
	}
}
