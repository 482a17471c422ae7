package entity

type ImpactTier string

const (
	ImpactHigh   ImpactTier = "alto"
	ImpactMedium ImpactTier = "medio"
	ImpactLow    ImpactTier = "baixo"
)

type Event struct {
	ID                  int        `json:"id"`
	Name                string     `json:"nome"`
	Period              string     `json:"periodo,omitempty"`
	StartMonth          int        `json:"mes_inicio"`
	EndMonth            int        `json:"mes_fim"`
	EstimatedAttendance int        `json:"publico_estimado"`
	Impact              ImpactTier `json:"impacto_hotel"`
	Description         string     `json:"descricao,omitempty"`
	Recurring           bool       `json:"recorrente"`
}

// Spans reports whether month falls inside the event's inclusive month range.
func (e *Event) Spans(month int) bool {
	return e.StartMonth <= month && month <= e.EndMonth
}

// EventSummary mirrors the "resumo" block of the events dataset.
// Pointer fields distinguish "absent" from zero.
type EventSummary struct {
	TotalEventsPerYear  *int    `json:"total_eventos_ano,omitempty"`
	EstimatedAttendance *int    `json:"publico_total_estimado,omitempty"`
	EconomicImpact      *int64  `json:"impacto_economico,omitempty"`
	Source              string  `json:"fonte,omitempty"`
	Highlight           *string `json:"destaque,omitempty"`
}

type EventCatalog struct {
	Events  []Event      `json:"eventos"`
	Summary EventSummary `json:"resumo"`
}

// Normalize applies the month defaults of the dataset: a missing start month
// is January and a missing end month equals the start month.
func (c *EventCatalog) Normalize() {
	for i := range c.Events {
		e := &c.Events[i]
		if e.StartMonth == 0 {
			e.StartMonth = 1
		}
		if e.EndMonth == 0 {
			e.EndMonth = e.StartMonth
		}
		if e.EstimatedAttendance < 0 {
			e.EstimatedAttendance = 0
		}
	}
}
