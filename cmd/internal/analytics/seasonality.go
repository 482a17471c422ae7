package analytics

import (
	"hotelrp/cmd/internal/domain/entity"
	"math"
)

const (
	baseOccupancy = 0.55
	maxOccupancy  = 0.90
)

var MonthNames = [12]string{
	"Janeiro", "Fevereiro", "Marco", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

type MonthEvent struct {
	ID         int               `json:"id"`
	Name       string            `json:"nome"`
	Attendance int               `json:"publico"`
	Impact     entity.ImpactTier `json:"impacto"`
}

type MonthSeasonality struct {
	Month              int     `json:"mes"`
	MonthName          string  `json:"nome_mes"`
	EventAttendance    int     `json:"publico_eventos"`
	EventCount         int     `json:"num_eventos"`
	Index              float64 `json:"indice_sazonalidade"`
	ProjectedOccupancy float64 `json:"ocupacao_projetada"`
	Classification     string  `json:"classificacao"`
}

// EventsByMonth lists, for each month 1-12, the events whose range covers it.
// Months without events are absent from the map.
func EventsByMonth(events []entity.Event) map[int][]MonthEvent {
	byMonth := make(map[int][]MonthEvent)
	for _, ev := range events {
		start, end := monthRange(ev)
		for m := start; m <= end; m++ {
			byMonth[m] = append(byMonth[m], MonthEvent{
				ID:         ev.ID,
				Name:       ev.Name,
				Attendance: ev.EstimatedAttendance,
				Impact:     ev.Impact,
			})
		}
	}
	return byMonth
}

func monthRange(ev entity.Event) (int, int) {
	start := ev.StartMonth
	if start == 0 {
		start = 1
	}
	end := ev.EndMonth
	if end == 0 {
		end = start
	}
	return max(1, start), min(12, end)
}

// Seasonality returns one entry per calendar month. A multi-month event adds
// its full attendance to every month it covers, so the yearly total counts it
// once per month.
func Seasonality(events []entity.Event) []MonthSeasonality {
	byMonth := EventsByMonth(events)

	total := 0
	for _, list := range byMonth {
		for _, ev := range list {
			total += ev.Attendance
		}
	}
	average := float64(total) / 12

	out := make([]MonthSeasonality, 0, 12)
	for i, name := range MonthNames {
		month := i + 1
		list := byMonth[month]

		attendance := 0
		for _, ev := range list {
			attendance += ev.Attendance
		}

		index := float64(attendance) / math.Max(1, average) * 100
		occupancy := math.Min(maxOccupancy, baseOccupancy*index/100)

		out = append(out, MonthSeasonality{
			Month:              month,
			MonthName:          name,
			EventAttendance:    attendance,
			EventCount:         len(list),
			Index:              round1(index),
			ProjectedOccupancy: round1(occupancy * 100),
			Classification:     classifySeason(index),
		})
	}
	return out
}

func classifySeason(index float64) string {
	switch {
	case index > 120:
		return "alta"
	case index > 80:
		return "media"
	default:
		return "baixa"
	}
}
