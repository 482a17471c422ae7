package analytics

import (
	"hotelrp/cmd/internal/domain/entity"
	"math"
	"time"
)

const (
	// OverallGrowthPercent is the historical business growth taken from the
	// municipal study. It is a frozen input, not derived from the company list.
	OverallGrowthPercent = 15.2

	DefaultTotalEvents     = 127
	DefaultTotalAttendance = 315000
	DefaultCityBeds        = 200

	isoDate = "2006-01-02"
)

// fallbackDate is used for registration dates that are missing or unparsable.
var fallbackDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Snapshot is one consistent read of every collection the engine needs.
// Engine functions never mutate it.
type Snapshot struct {
	Companies []*entity.Company
	Events    *entity.EventCatalog
	Market    *entity.MarketCatalog
}

func (s *Snapshot) events() []entity.Event {
	if s == nil || s.Events == nil {
		return nil
	}
	return s.Events.Events
}

// Engine holds the clock, the only ambient input of the calculations.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine reading the system clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock returns an engine that takes "today" from now.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// yearCutoff is today's date minus 365 days. Registration dates must be
// strictly after it to count as "opened in the last year".
func (e *Engine) yearCutoff() time.Time {
	y, m, d := e.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -365)
}

func parseRegistrationDate(s string) time.Time {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return fallbackDate
	}
	return t
}

func openedAfter(c *entity.Company, cutoff time.Time) bool {
	return parseRegistrationDate(c.RegistrationDate).After(cutoff)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
