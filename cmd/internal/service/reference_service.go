package service

import (
	"fmt"
	"math"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/domain/reference"
	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

const (
	// A calendar month is "alta" above 50k visitors and "media" above 10k.
	calendarHighAttendance   = 50000
	calendarMediumAttendance = 10000

	// Share of each impact tier's audience expected to stay overnight.
	overnightHigh   = 0.02
	overnightMedium = 0.01
	overnightLow    = 0.005

	upscaleRate = 300.0
)

// DefaultReferenceService answers the event and competition endpoints from
// the read-only reference datasets.
type DefaultReferenceService struct {
	Data     *reference.Data
	Validate *validator.Validate
}

func NewReferenceService(data *reference.Data, validate *validator.Validate) *DefaultReferenceService {
	if data.Events == nil {
		data.Events = &entity.EventCatalog{}
	}
	if data.Market == nil {
		data.Market = &entity.MarketCatalog{}
	}
	return &DefaultReferenceService{Data: data, Validate: validate}
}

func (r *DefaultReferenceService) ListEvents(filter *contract.EventFilter) (*contract.EventListResponse, apierror.ErrorResponse) {
	if valerr := r.Validate.Struct(filter); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}
	if filter.Month < 0 || filter.Month > 12 {
		return nil, apierror.NewInvalidParamRangeError("mes", 1, 12)
	}

	events := make([]entity.Event, 0, len(r.Data.Events.Events))
	for _, ev := range r.Data.Events.Events {
		if filter.Impact != "" && string(ev.Impact) != filter.Impact {
			continue
		}
		if filter.Month != 0 && !ev.Spans(filter.Month) {
			continue
		}
		events = append(events, ev)
	}

	return &contract.EventListResponse{Total: len(events), Events: events}, nil
}

func (r *DefaultReferenceService) EventSummary() entity.EventSummary {
	return r.Data.Events.Summary
}

func (r *DefaultReferenceService) GetEvent(id int) (*entity.Event, apierror.ErrorResponse) {
	ev := r.Data.EventByID(id)
	if ev == nil {
		return nil, apierror.EventNotFoundError
	}
	return ev, nil
}

// Calendar lists, for every month, the events running in it.
func (r *DefaultReferenceService) Calendar() []contract.CalendarMonth {
	byMonth := analytics.EventsByMonth(r.Data.Events.Events)

	calendar := make([]contract.CalendarMonth, 0, 12)
	for i, name := range analytics.MonthNames {
		month := i + 1
		events := byMonth[month]
		if events == nil {
			events = []analytics.MonthEvent{}
		}

		attendance := 0
		for _, ev := range events {
			attendance += ev.Attendance
		}

		calendar = append(calendar, contract.CalendarMonth{
			Month:           month,
			Name:            name,
			Events:          events,
			TotalEvents:     len(events),
			TotalAttendance: attendance,
			Classification:  calendarClass(attendance),
		})
	}
	return calendar
}

func calendarClass(attendance int) string {
	switch {
	case attendance > calendarHighAttendance:
		return "alta"
	case attendance > calendarMediumAttendance:
		return "media"
	default:
		return "baixa"
	}
}

// EventImpact groups events by impact tier and estimates how many visitors
// would need lodging.
func (r *DefaultReferenceService) EventImpact() *contract.EventImpactResponse {
	groups := map[entity.ImpactTier]*contract.ImpactGroup{
		entity.ImpactHigh:   {Events: []string{}},
		entity.ImpactMedium: {Events: []string{}},
		entity.ImpactLow:    {Events: []string{}},
	}
	for _, ev := range r.Data.Events.Events {
		g, ok := groups[ev.Impact]
		if !ok {
			continue
		}
		g.Count++
		g.Attendance += ev.EstimatedAttendance
		g.Events = append(g.Events, ev.Name)
	}

	high, medium, low := groups[entity.ImpactHigh], groups[entity.ImpactMedium], groups[entity.ImpactLow]
	guests := int(float64(high.Attendance)*overnightHigh +
		float64(medium.Attendance)*overnightMedium +
		float64(low.Attendance)*overnightLow)

	return &contract.EventImpactResponse{
		High:            *high,
		Medium:          *medium,
		Low:             *low,
		PotentialGuests: guests,
		PotentialNights: float64(guests) * 1.5,
		Recommendation:  "Priorizar pacotes especiais para Festival do Chocolate (180k visitantes) e Natal Mágico (50k visitantes)",
	}
}

func (r *DefaultReferenceService) ListHotels(filter *contract.HotelFilter) (*contract.HotelListResponse, apierror.ErrorResponse) {
	if valerr := r.Validate.Struct(filter); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	hotels := make([]entity.CompetingHotel, 0, len(r.Data.Market.Hotels))
	for _, h := range r.Data.Market.Hotels {
		if filter.City != "" && !utils.ContainsFold(h.City, filter.City) {
			continue
		}
		if filter.Type != "" && string(h.Type) != filter.Type {
			continue
		}
		hotels = append(hotels, h)
	}

	return &contract.HotelListResponse{Total: len(hotels), Hotels: hotels}, nil
}

func (r *DefaultReferenceService) GetHotel(id int) (*entity.CompetingHotel, apierror.ErrorResponse) {
	h := r.Data.HotelByID(id)
	if h == nil {
		return nil, apierror.HotelNotFoundError
	}
	return h, nil
}

func (r *DefaultReferenceService) MarketAnalysis() entity.MarketAnalysis {
	return r.Data.Market.Analysis
}

func (r *DefaultReferenceService) ProposedHotel() entity.ProposedHotel {
	return r.Data.Market.ProposedHotel
}

// RateComparison groups competitor rates by city and places the proposed
// hotel's rate band against the local and regional averages.
func (r *DefaultReferenceService) RateComparison() *contract.RateComparisonResponse {
	hotels := r.Data.Market.Hotels

	byCity := make(map[string][]contract.RateEntry)
	var citySum, regionSum float64
	cityCount := 0
	for _, h := range hotels {
		city := h.City
		if city == "" {
			city = entity.DefaultSector
		}
		byCity[city] = append(byCity[city], contract.RateEntry{
			Name:   h.Name,
			Rate:   h.AverageRate,
			Rating: h.Rating,
			Rooms:  h.Rooms,
		})

		regionSum += h.AverageRate
		if IsRibeiraoPires(h.City) {
			citySum += h.AverageRate
			cityCount++
		}
	}

	proposed := r.Data.Market.ProposedHotel
	rates := contract.ProposedRates{
		Min:    entity.DefaultRateMin,
		Max:    entity.DefaultRateMax,
		Target: proposed.TargetRateOrDefault(),
	}
	if proposed.ProjectedRate != nil {
		rates.Min = proposed.ProjectedRate.Min
		rates.Max = proposed.ProjectedRate.Max
	}

	return &contract.RateComparisonResponse{
		ByCity:        byCity,
		CityAverage:   round2(citySum / math.Max(1, float64(cityCount))),
		RegionAverage: round2(regionSum / math.Max(1, float64(len(hotels)))),
		Proposed:      rates,
		Positioning:   "O hotel proposto se posiciona no segmento upscale, entre a média de Ribeirão Pires e os hotéis superiores de Santo André",
	}
}

// MarketGap describes the current lodging supply of the city and the gaps
// the proposed hotel fills.
func (r *DefaultReferenceService) MarketGap() *contract.MarketGapResponse {
	var current contract.CurrentSupply
	for _, h := range r.Data.Market.Hotels {
		if hasDifferentiator(h, "rooftop") {
			current.RooftopHotels++
		}
		if !IsRibeiraoPires(h.City) {
			continue
		}
		current.CityHotels++
		current.CityBeds += h.Beds
		if h.AverageRate >= upscaleRate {
			current.CityUpscaleHotels++
		}
	}

	visitors := analytics.DefaultTotalAttendance
	if v := r.Data.Events.Summary.EstimatedAttendance; v != nil {
		visitors = *v
	}

	proposed := r.Data.Market.ProposedHotel
	impact := contract.ProposedImpact{
		NewBeds:         entity.DefaultEstimatedBeds,
		SupplyIncrease:  proposed.SupplyIncrease,
		Differentiators: proposed.Differentiators,
	}
	if proposed.EstimatedBeds != nil {
		impact.NewBeds = *proposed.EstimatedBeds
	}
	if impact.SupplyIncrease == "" {
		impact.SupplyIncrease = "40%"
	}
	if impact.Differentiators == nil {
		impact.Differentiators = []string{}
	}

	return &contract.MarketGapResponse{
		Current: current,
		Gaps: []contract.MarketGapItem{
			{Gap: "Ausência de hotel upscale", Description: "Não há hotel categoria superior em Ribeirão Pires", Opportunity: "Alta"},
			{Gap: "Falta de centro de convenções", Description: "Cidade não possui espaço integrado para eventos corporativos + hospedagem", Opportunity: "Alta"},
			{Gap: "Inexistência de rooftop bar", Description: "Não há bar panorâmico na região do ABC", Opportunity: "Alta"},
			{
				Gap:         "Baixa oferta de leitos",
				Description: fmt.Sprintf("Apenas %d leitos para %d mil visitantes/ano", current.CityBeds, visitors/1000),
				Opportunity: "Alta",
			},
		},
		Impact:     impact,
		Conclusion: r.Data.Market.Analysis.Opportunity,
	}
}

func hasDifferentiator(h entity.CompetingHotel, term string) bool {
	for _, d := range h.Differentiators {
		if utils.ContainsFold(d, term) {
			return true
		}
	}
	return false
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
