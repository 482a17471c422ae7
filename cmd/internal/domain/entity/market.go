package entity

type HotelType string

const (
	HotelTypeHotel HotelType = "hotel"
	HotelTypeInn   HotelType = "pousada"
	HotelTypeFarm  HotelType = "hotel-fazenda"
)

type CompetingHotel struct {
	ID              int       `json:"id"`
	Name            string    `json:"nome"`
	City            string    `json:"cidade"`
	Rooms           int       `json:"quartos"`
	Beds            int       `json:"leitos,omitempty"`
	AverageRate     float64   `json:"diaria_media"`
	Rating          *float64  `json:"nota_avaliacao,omitempty"`
	Type            HotelType `json:"tipo"`
	DistanceKm      *float64  `json:"distancia_km,omitempty"`
	Differentiators []string  `json:"diferenciais,omitempty"`
}

type MarketAnalysis struct {
	CityBeds          *int     `json:"leitos_ribeirao_pires,omitempty"`
	CityHotels        *int     `json:"hoteis_ribeirao_pires,omitempty"`
	RegionRooms       *int     `json:"quartos_regiao,omitempty"`
	RegionAverageRate *float64 `json:"diaria_media_regiao,omitempty"`
	Opportunity       string   `json:"oportunidade,omitempty"`
}

type RateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type ProposedHotel struct {
	Name            string     `json:"nome,omitempty"`
	Category        string     `json:"categoria,omitempty"`
	Rooms           *int       `json:"quartos_estimados,omitempty"`
	TargetRate      *float64   `json:"diaria_media_target,omitempty"`
	ProjectedRate   *RateRange `json:"diaria_projetada,omitempty"`
	EstimatedBeds   *int       `json:"leitos_estimados,omitempty"`
	SupplyIncrease  string     `json:"aumento_oferta_local,omitempty"`
	Differentiators []string   `json:"diferenciais,omitempty"`
}

const (
	DefaultProposedRooms = 55
	DefaultTargetRate    = 280.0
	DefaultRateMin       = 250.0
	DefaultRateMax       = 350.0
	DefaultEstimatedBeds = 110
)

func (p *ProposedHotel) RoomsOrDefault() int {
	if p.Rooms == nil {
		return DefaultProposedRooms
	}
	return *p.Rooms
}

func (p *ProposedHotel) TargetRateOrDefault() float64 {
	if p.TargetRate == nil {
		return DefaultTargetRate
	}
	return *p.TargetRate
}

type MarketCatalog struct {
	Hotels        []CompetingHotel `json:"hoteis"`
	Analysis      MarketAnalysis   `json:"analise_mercado"`
	ProposedHotel ProposedHotel    `json:"hotel_proposto"`
}
