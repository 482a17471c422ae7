package analytics

import "math"

// Component caps. They add up to 100.
const (
	GrowthWeight     = 20.0
	EventsWeight     = 25.0
	AttendanceWeight = 25.0
	GapWeight        = 30.0
)

type ScoreInputs struct {
	GrowthPercent   float64
	TotalEvents     int
	TotalAttendance int
	AvailableBeds   int
}

type ScoreBreakdown struct {
	Growth     float64 `json:"crescimento"`
	Events     float64 `json:"eventos"`
	Attendance float64 `json:"publico"`
	Gap        float64 `json:"gap_mercado"`
	Total      float64 `json:"total"`
}

// Breakdown computes each score component before clamping and rounding.
func Breakdown(in ScoreInputs) ScoreBreakdown {
	growth := math.Min(GrowthWeight, in.GrowthPercent*1.33)
	events := math.Min(EventsWeight, float64(in.TotalEvents)*0.25)
	attendance := math.Min(AttendanceWeight, float64(in.TotalAttendance)/300000*25)

	// Fewer beds per thousand visitors means a larger opportunity.
	bedsPerThousand := float64(in.AvailableBeds) / math.Max(1, float64(in.TotalAttendance)/1000)
	gap := math.Min(GapWeight, 10/math.Max(0.1, bedsPerThousand)*3)

	total := growth + events + attendance + gap
	return ScoreBreakdown{
		Growth:     growth,
		Events:     events,
		Attendance: attendance,
		Gap:        gap,
		Total:      round1(math.Min(100, math.Max(0, total))),
	}
}

// ViabilityScore is the composite 0-100 score, rounded to one decimal.
func ViabilityScore(in ScoreInputs) float64 {
	return Breakdown(in).Total
}
