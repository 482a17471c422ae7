package analytics

import (
	"hotelrp/cmd/internal/domain/entity"
	"math"
)

type KPIs struct {
	TotalStrategicCompanies int     `json:"total_empresas_estrategicas"`
	CompaniesOpenedLastYear int     `json:"empresas_abertas_ultimo_ano"`
	OverallGrowthPercent    float64 `json:"crescimento_geral"`
	TotalEvents             int     `json:"total_eventos_ano"`
	TotalEventAttendance    int     `json:"publico_total_eventos"`
	AvailableBedsInCity     int     `json:"leitos_disponiveis_cidade"`
	EstimatedMarketGap      int     `json:"gap_mercado_estimado"`
	ViabilityScore          float64 `json:"score_viabilidade"`
}

// KPIs builds the dashboard headline figures. Missing reference values fall
// back to the study defaults (127 events, 315000 visitors, 200 beds).
func (e *Engine) KPIs(companies []*entity.Company, events *entity.EventCatalog, market *entity.MarketCatalog) KPIs {
	cutoff := e.yearCutoff()
	opened := 0
	for _, c := range companies {
		if openedAfter(c, cutoff) {
			opened++
		}
	}

	totalEvents := DefaultTotalEvents
	attendance := DefaultTotalAttendance
	if events != nil {
		if events.Summary.TotalEventsPerYear != nil {
			totalEvents = *events.Summary.TotalEventsPerYear
		}
		if events.Summary.EstimatedAttendance != nil {
			attendance = *events.Summary.EstimatedAttendance
		}
	}

	beds := DefaultCityBeds
	if market != nil && market.Analysis.CityBeds != nil {
		beds = *market.Analysis.CityBeds
	}

	return KPIs{
		TotalStrategicCompanies: len(companies),
		CompaniesOpenedLastYear: opened,
		OverallGrowthPercent:    OverallGrowthPercent,
		TotalEvents:             totalEvents,
		TotalEventAttendance:    attendance,
		AvailableBedsInCity:     beds,
		EstimatedMarketGap:      MarketGap(attendance, beds),
		ViabilityScore: ViabilityScore(ScoreInputs{
			GrowthPercent:   OverallGrowthPercent,
			TotalEvents:     totalEvents,
			TotalAttendance: attendance,
			AvailableBeds:   beds,
		}),
	}
}

// MarketGap estimates overnight stays not served by the city's beds: 2% of
// visitors staying over, against the beds at 50% occupancy.
func MarketGap(attendance, beds int) int {
	demand := int(math.Floor(float64(attendance) * 0.02))
	supply := int(math.Floor(float64(beds) * 365 * 0.5))
	return max(0, demand-supply)
}
