package analytics

import "hotelrp/cmd/internal/domain/entity"

// AncillaryRatio is food, beverage and events revenue as a share of room revenue.
const AncillaryRatio = 0.40

type Scenario struct {
	Name           string
	Occupancy      float64
	RateMultiplier float64
}

var Scenarios = []Scenario{
	{Name: "conservador", Occupancy: 0.50, RateMultiplier: 0.90},
	{Name: "moderado", Occupancy: 0.60, RateMultiplier: 1.00},
	{Name: "otimista", Occupancy: 0.72, RateMultiplier: 1.10},
}

type Projection struct {
	Scenario         string  `json:"cenario"`
	AverageOccupancy float64 `json:"ocupacao_media_anual"`
	RevPAR           float64 `json:"revpar_estimado"`
	RoomNightsSold   float64 `json:"diarias_vendidas"`
	RoomRevenue      float64 `json:"receita_quartos"`
	AncillaryRevenue float64 `json:"receita_adicional"`
	AnnualRevenue    float64 `json:"receita_anual_estimada"`
	// PaybackYears stays nil: there is no investment cost to compute it from.
	PaybackYears *float64 `json:"payback_anos"`
}

// Projections computes the three fixed scenarios for the proposed hotel.
func Projections(hotel *entity.ProposedHotel) []Projection {
	if hotel == nil {
		hotel = &entity.ProposedHotel{}
	}
	rooms := float64(hotel.RoomsOrDefault())
	baseRate := hotel.TargetRateOrDefault()

	out := make([]Projection, 0, len(Scenarios))
	for _, s := range Scenarios {
		rate := baseRate * s.RateMultiplier
		nights := rooms * 365 * s.Occupancy
		roomRevenue := nights * rate
		ancillary := roomRevenue * AncillaryRatio

		out = append(out, Projection{
			Scenario:         s.Name,
			AverageOccupancy: round1(s.Occupancy * 100),
			RevPAR:           round2(rate * s.Occupancy),
			RoomNightsSold:   round2(nights),
			RoomRevenue:      round2(roomRevenue),
			AncillaryRevenue: round2(ancillary),
			AnnualRevenue:    round2(roomRevenue + ancillary),
		})
	}
	return out
}
