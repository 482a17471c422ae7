package contract

import (
	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/domain/entity"
)

type EventFilter struct {
	Impact string `query:"impacto" validate:"omitempty,oneof=alto medio baixo"`
	Month  int    `query:"mes"`
}

type EventListResponse struct {
	Total  int            `json:"total"`
	Events []entity.Event `json:"eventos"`
}

type CalendarMonth struct {
	Month           int                    `json:"mes"`
	Name            string                 `json:"nome"`
	Events          []analytics.MonthEvent `json:"eventos"`
	TotalEvents     int                    `json:"total_eventos"`
	TotalAttendance int                    `json:"publico_total"`
	Classification  string                 `json:"classificacao"`
}

type ImpactGroup struct {
	Count      int      `json:"quantidade"`
	Attendance int      `json:"publico_total"`
	Events     []string `json:"eventos"`
}

type EventImpactResponse struct {
	High            ImpactGroup `json:"eventos_alto_impacto"`
	Medium          ImpactGroup `json:"eventos_medio_impacto"`
	Low             ImpactGroup `json:"eventos_baixo_impacto"`
	PotentialGuests int         `json:"hospedagem_potencial_ano"`
	PotentialNights float64     `json:"diarias_potenciais"`
	Recommendation  string      `json:"recomendacao"`
}

type HotelFilter struct {
	City string `query:"cidade"`
	Type string `query:"tipo" validate:"omitempty,oneof=hotel pousada hotel-fazenda"`
}

type HotelListResponse struct {
	Total  int                     `json:"total"`
	Hotels []entity.CompetingHotel `json:"hoteis"`
}

type RateEntry struct {
	Name   string   `json:"nome"`
	Rate   float64  `json:"diaria"`
	Rating *float64 `json:"nota"`
	Rooms  int      `json:"quartos"`
}

type ProposedRates struct {
	Min    float64 `json:"diaria_min"`
	Max    float64 `json:"diaria_max"`
	Target float64 `json:"diaria_target"`
}

type RateComparisonResponse struct {
	ByCity        map[string][]RateEntry `json:"por_cidade"`
	CityAverage   float64                `json:"media_ribeirao_pires"`
	RegionAverage float64                `json:"media_regiao"`
	Proposed      ProposedRates          `json:"hotel_proposto"`
	Positioning   string                 `json:"posicionamento"`
}

type CurrentSupply struct {
	CityHotels        int `json:"hoteis_ribeirao_pires"`
	CityBeds          int `json:"leitos_ribeirao_pires"`
	CityUpscaleHotels int `json:"hoteis_upscale_ribeirao_pires"`
	RooftopHotels     int `json:"hoteis_com_rooftop_regiao"`
}

type MarketGapItem struct {
	Gap         string `json:"gap"`
	Description string `json:"descricao"`
	Opportunity string `json:"oportunidade"`
}

type ProposedImpact struct {
	NewBeds         int      `json:"novos_leitos"`
	SupplyIncrease  string   `json:"aumento_oferta"`
	Differentiators []string `json:"diferenciais_unicos"`
}

type MarketGapResponse struct {
	Current    CurrentSupply   `json:"situacao_atual"`
	Gaps       []MarketGapItem `json:"gaps_identificados"`
	Impact     ProposedImpact  `json:"hotel_proposto_impacto"`
	Conclusion string          `json:"conclusao"`
}
