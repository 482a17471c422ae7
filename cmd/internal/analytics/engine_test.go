package analytics

import (
	"hotelrp/cmd/internal/domain/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.October, 1, 15, 30, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngineWithClock(func() time.Time { return fixedNow })
}

func intPtr(v int) *int { return &v }

func createTestCompanies() []*entity.Company {
	return []*entity.Company{
		{ID: 1, LegalName: "Buffet Alfa", ActivityCode: "5620-1/02", Sector: "Buffets", RegistrationDate: "2025-06-10"},
		{ID: 2, LegalName: "Buffet Beta", ActivityCode: "5620-1/02", Sector: "Buffets", RegistrationDate: "2019-03-01"},
		{ID: 3, LegalName: "Buffet Gama", ActivityCode: "5620-1/01", Sector: "Buffets", RegistrationDate: "2024-12-24"},
		{ID: 4, LegalName: "Restaurante Delta", ActivityCode: "5611-2/01", Sector: "Restaurantes", RegistrationDate: "2010-01-15"},
		{ID: 5, LegalName: "Sem Setor", ActivityCode: "0000-0/00", Sector: "", RegistrationDate: "data invalida"},
	}
}

func TestKPIs_Defaults(t *testing.T) {
	k := testEngine().KPIs(nil, nil, nil)

	assert.Equal(t, 0, k.TotalStrategicCompanies)
	assert.Equal(t, 0, k.CompaniesOpenedLastYear)
	assert.Equal(t, 15.2, k.OverallGrowthPercent)
	assert.Equal(t, 127, k.TotalEvents)
	assert.Equal(t, 315000, k.TotalEventAttendance)
	assert.Equal(t, 200, k.AvailableBedsInCity)
	assert.Equal(t, 0, k.EstimatedMarketGap)
	assert.Equal(t, 100.0, k.ViabilityScore)
}

func TestKPIs_UsesReferenceBlocks(t *testing.T) {
	events := &entity.EventCatalog{Summary: entity.EventSummary{
		TotalEventsPerYear:  intPtr(40),
		EstimatedAttendance: intPtr(1000000),
	}}
	market := &entity.MarketCatalog{Analysis: entity.MarketAnalysis{CityBeds: intPtr(10)}}

	k := testEngine().KPIs(createTestCompanies(), events, market)

	assert.Equal(t, 5, k.TotalStrategicCompanies)
	assert.Equal(t, 2, k.CompaniesOpenedLastYear)
	assert.Equal(t, 40, k.TotalEvents)
	assert.Equal(t, 1000000, k.TotalEventAttendance)
	assert.Equal(t, 10, k.AvailableBedsInCity)
	// 20000 potential stays against 1825 bed nights
	assert.Equal(t, 18175, k.EstimatedMarketGap)
}

func TestKPIs_ZeroValuesAreNotDefaults(t *testing.T) {
	events := &entity.EventCatalog{Summary: entity.EventSummary{
		TotalEventsPerYear:  intPtr(0),
		EstimatedAttendance: intPtr(0),
	}}
	market := &entity.MarketCatalog{Analysis: entity.MarketAnalysis{CityBeds: intPtr(0)}}

	k := testEngine().KPIs(nil, events, market)
	assert.Equal(t, 0, k.TotalEvents)
	assert.Equal(t, 0, k.TotalEventAttendance)
	assert.Equal(t, 0, k.AvailableBedsInCity)
	assert.GreaterOrEqual(t, k.ViabilityScore, 0.0)
}

func TestOpenedLastYear_StrictCutoff(t *testing.T) {
	// today - 365 days = 2024-10-01
	tests := []struct {
		date string
		want int
	}{
		{"2024-10-01", 0},
		{"2024-10-02", 1},
		{"2025-10-01", 1},
		{"", 0},
		{"01/01/2025", 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			k := testEngine().KPIs([]*entity.Company{{RegistrationDate: tt.date}}, nil, nil)
			assert.Equal(t, tt.want, k.CompaniesOpenedLastYear)
		})
	}
}

func TestMarketGap(t *testing.T) {
	assert.Equal(t, 0, MarketGap(315000, 200))
	assert.Equal(t, 0, MarketGap(0, 0))
	assert.Equal(t, 6300, MarketGap(315000, 0))
	assert.Equal(t, 6300-182, MarketGap(315000, 1))
}

func TestViabilityScore_Bounds(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInputs
	}{
		{"all zero", ScoreInputs{}},
		{"defaults", ScoreInputs{GrowthPercent: 15.2, TotalEvents: 127, TotalAttendance: 315000, AvailableBeds: 200}},
		{"huge", ScoreInputs{GrowthPercent: 1e6, TotalEvents: 1e6, TotalAttendance: 1e9, AvailableBeds: 1e6}},
		{"negative growth", ScoreInputs{GrowthPercent: -500, TotalEvents: 0, TotalAttendance: 0, AvailableBeds: 10000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ViabilityScore(tt.in)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		})
	}
}

func TestViabilityScore_Components(t *testing.T) {
	b := Breakdown(ScoreInputs{GrowthPercent: 10, TotalEvents: 40, TotalAttendance: 150000, AvailableBeds: 1500})

	assert.InDelta(t, 13.3, b.Growth, 1e-9)
	assert.InDelta(t, 10.0, b.Events, 1e-9)
	assert.InDelta(t, 12.5, b.Attendance, 1e-9)
	// 10 beds per thousand visitors
	assert.InDelta(t, 3.0, b.Gap, 1e-9)
	assert.Equal(t, 38.8, b.Total)
}

func TestViabilityScore_NoBedsHitsGapCap(t *testing.T) {
	b := Breakdown(ScoreInputs{TotalAttendance: 1000, AvailableBeds: 0})
	assert.Equal(t, 30.0, b.Gap)
}

func TestViabilityScore_MonotonicInAttendance(t *testing.T) {
	prev := -1.0
	for att := 0; att <= 1000000; att += 12500 {
		s := ViabilityScore(ScoreInputs{GrowthPercent: 5, TotalEvents: 20, TotalAttendance: att, AvailableBeds: 800})
		assert.GreaterOrEqual(t, s, prev, "attendance %d", att)
		prev = s
	}
}

func TestSectorTrends(t *testing.T) {
	trends := testEngine().SectorTrends(createTestCompanies())
	require.Len(t, trends, 3)

	buffets := trends[0]
	assert.Equal(t, "Buffets", buffets.Sector)
	assert.Equal(t, "5620-1/02", buffets.DominantCode)
	assert.Equal(t, 3, buffets.TotalCompanies)
	assert.Equal(t, 2, buffets.OpeningsLast12)
	assert.Equal(t, 200.0, buffets.GrowthPercent)
	assert.Equal(t, 0.17, buffets.MonthlyAverage)

	// equal sizes keep discovery order
	assert.Equal(t, "Restaurantes", trends[1].Sector)
	assert.Equal(t, "Outros", trends[2].Sector)
	assert.Equal(t, 0.0, trends[2].GrowthPercent)
}

func TestSectorTrends_PartitionsEveryCompany(t *testing.T) {
	companies := createTestCompanies()
	total := 0
	for _, tr := range testEngine().SectorTrends(companies) {
		total += tr.TotalCompanies
	}
	assert.Equal(t, len(companies), total)
}

func TestSectorTrends_Empty(t *testing.T) {
	trends := testEngine().SectorTrends(nil)
	assert.NotNil(t, trends)
	assert.Empty(t, trends)
}

func TestDominantCode_TieGoesToFirstSeen(t *testing.T) {
	list := []*entity.Company{
		{ActivityCode: "B"}, {ActivityCode: "A"}, {ActivityCode: "A"}, {ActivityCode: "B"},
	}
	assert.Equal(t, "B", dominantCode(list))
}

func TestProjections(t *testing.T) {
	p := Projections(&entity.ProposedHotel{Rooms: intPtr(55)})
	require.Len(t, p, 3)

	assert.Equal(t, "conservador", p[0].Scenario)
	assert.Equal(t, 50.0, p[0].AverageOccupancy)
	assert.InDelta(t, 126.0, p[0].RevPAR, 1e-9)

	moderate := p[1]
	assert.Equal(t, "moderado", moderate.Scenario)
	assert.Equal(t, 60.0, moderate.AverageOccupancy)
	assert.Equal(t, 168.0, moderate.RevPAR)
	assert.InDelta(t, 4721640.0, moderate.AnnualRevenue, 0.005)
	assert.Nil(t, moderate.PaybackYears)

	assert.Equal(t, "otimista", p[2].Scenario)
	assert.Equal(t, 72.0, p[2].AverageOccupancy)
	assert.InDelta(t, 221.76, p[2].RevPAR, 1e-9)
}

func TestProjections_NilHotelUsesDefaults(t *testing.T) {
	assert.Equal(t, Projections(&entity.ProposedHotel{}), Projections(nil))
}

func TestSeasonality_NoEvents(t *testing.T) {
	s := Seasonality(nil)
	require.Len(t, s, 12)
	for i, m := range s {
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, MonthNames[i], m.MonthName)
		assert.Equal(t, 0, m.EventAttendance)
		assert.Equal(t, 0.0, m.Index)
		assert.Equal(t, "baixa", m.Classification)
	}
}

func TestSeasonality_MultiMonthEventCountsFullAttendance(t *testing.T) {
	s := Seasonality([]entity.Event{{ID: 1, StartMonth: 1, EndMonth: 3, EstimatedAttendance: 300}})

	for _, m := range s[:3] {
		assert.Equal(t, 300, m.EventAttendance)
		assert.Equal(t, 1, m.EventCount)
		// 300 against a monthly average of 75
		assert.Equal(t, 400.0, m.Index)
		assert.Equal(t, 90.0, m.ProjectedOccupancy)
		assert.Equal(t, "alta", m.Classification)
	}
	assert.Equal(t, 0, s[3].EventAttendance)
}

func TestSeasonality_Classification(t *testing.T) {
	assert.Equal(t, "alta", classifySeason(120.1))
	assert.Equal(t, "media", classifySeason(120))
	assert.Equal(t, "media", classifySeason(80.1))
	assert.Equal(t, "baixa", classifySeason(80))
}

func TestEventsByMonth_MissingEndMonth(t *testing.T) {
	byMonth := EventsByMonth([]entity.Event{{ID: 7, Name: "Carnaval", StartMonth: 2, EstimatedAttendance: 15000}})
	require.Len(t, byMonth, 1)
	assert.Equal(t, "Carnaval", byMonth[2][0].Name)
}

func TestComplete(t *testing.T) {
	snap := &Snapshot{
		Companies: createTestCompanies(),
		Events: &entity.EventCatalog{
			Events:  []entity.Event{{ID: 1, StartMonth: 8, EndMonth: 8, EstimatedAttendance: 180000}},
			Summary: entity.EventSummary{TotalEventsPerYear: intPtr(127)},
		},
		Market: &entity.MarketCatalog{ProposedHotel: entity.ProposedHotel{Rooms: intPtr(40)}},
	}

	c := testEngine().Complete(snap)
	assert.Equal(t, 5, c.KPIs.TotalStrategicCompanies)
	assert.Len(t, c.SectorTrends, 3)
	assert.Len(t, c.Projections, 3)
	assert.Len(t, c.Seasonality, 12)
	assert.Equal(t, 180000, c.Seasonality[7].EventAttendance)
	assert.Equal(t, 40, *c.ProposedHotel.Rooms)

	empty := testEngine().Complete(nil)
	assert.Equal(t, 0, empty.KPIs.TotalStrategicCompanies)
	assert.Len(t, empty.Seasonality, 12)
}

func TestComplete_LeavesSnapshotUntouched(t *testing.T) {
	build := func() *Snapshot {
		return &Snapshot{
			Companies: createTestCompanies(),
			Events: &entity.EventCatalog{
				Events: []entity.Event{
					{ID: 1, Name: "Festival do Chocolate", StartMonth: 7, EndMonth: 8, EstimatedAttendance: 180000},
					{ID: 2, Name: "Carnaval", StartMonth: 2, EstimatedAttendance: 15000},
				},
				Summary: entity.EventSummary{TotalEventsPerYear: intPtr(127)},
			},
			Market: &entity.MarketCatalog{ProposedHotel: entity.ProposedHotel{Rooms: intPtr(40)}},
		}
	}

	snap, want := build(), build()
	testEngine().Complete(snap)
	testEngine().Complete(snap)

	assert.Equal(t, want, snap)
	assert.Equal(t, "", snap.Companies[4].Sector)
	assert.Equal(t, 0, snap.Events.Events[1].EndMonth)
}

func TestDetailScore(t *testing.T) {
	k := testEngine().KPIs(nil, nil, nil)
	d := DetailScore(k)

	assert.Equal(t, "Excelente", d.Classification)
	assert.Equal(t, "Positivo", d.Factors["crescimento_empresarial"].Evaluation)
	assert.Equal(t, "Excelente", d.Factors["volume_eventos"].Evaluation)
	assert.Equal(t, "Excelente", d.Factors["publico_turistico"].Evaluation)
	assert.Equal(t, "200 leitos para 315,000 visitantes", d.Factors["gap_mercado"].Value)
	assert.Contains(t, d.Strengths, "315 mil visitantes anuais com apenas 200 leitos disponíveis")
	assert.Len(t, d.AttentionItems, 3)
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excelente"}, {80, "Excelente"}, {79.9, "Bom"}, {60, "Bom"},
		{59.9, "Moderado"}, {40, "Moderado"}, {39.9, "Baixo"}, {0, "Baixo"},
	}
	for _, tt := range tests {
		got, _ := scoreBand(tt.score)
		assert.Equal(t, tt.want, got, "score %v", tt.score)
	}
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "315,000", groupThousands(315000))
	assert.Equal(t, "-1,234,567", groupThousands(-1234567))
}

func TestEstimateDemand(t *testing.T) {
	k := testEngine().KPIs(nil, nil, nil)
	d := EstimateDemand(k, nil)

	assert.Equal(t, 9450, d.Segments["turismo_eventos"].PotentialNights)
	assert.Equal(t, 2700, d.Segments["corporativo"].PotentialNights)
	assert.Equal(t, 1440, d.Segments["eventos_sociais"].PotentialNights)
	assert.Equal(t, 500, d.Segments["leisure_local"].PotentialNights)
	assert.Equal(t, 14090, d.TotalPotential)
	assert.Equal(t, HotelCapacity{Rooms: 55, NightsPerYear: 20075, NightsAt60: 12045}, d.Capacity)
}
