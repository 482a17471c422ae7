package analytics

import (
	"hotelrp/cmd/internal/domain/entity"
	"slices"
)

type SectorTrend struct {
	Sector         string  `json:"setor"`
	DominantCode   string  `json:"cnae"`
	TotalCompanies int     `json:"total_empresas"`
	OpeningsLast12 int     `json:"aberturas_12_meses"`
	GrowthPercent  float64 `json:"crescimento_percentual"`
	MonthlyAverage float64 `json:"media_mensal"`
}

// SectorTrends groups companies by sector and sorts the groups by size,
// descending. Groups of equal size keep the order they were first seen in.
func (e *Engine) SectorTrends(companies []*entity.Company) []SectorTrend {
	var order []string
	groups := make(map[string][]*entity.Company)
	for _, c := range companies {
		sector := c.SectorOrDefault()
		if _, ok := groups[sector]; !ok {
			order = append(order, sector)
		}
		groups[sector] = append(groups[sector], c)
	}

	cutoff := e.yearCutoff()
	trends := make([]SectorTrend, 0, len(order))
	for _, sector := range order {
		list := groups[sector]
		total := len(list)

		opened := 0
		for _, c := range list {
			if openedAfter(c, cutoff) {
				opened++
			}
		}

		growth := 0.0
		if total > 0 {
			growth = float64(opened) / float64(max(1, total-opened)) * 100
		}

		trends = append(trends, SectorTrend{
			Sector:         sector,
			DominantCode:   dominantCode(list),
			TotalCompanies: total,
			OpeningsLast12: opened,
			GrowthPercent:  round1(growth),
			MonthlyAverage: round2(float64(opened) / 12),
		})
	}

	slices.SortStableFunc(trends, func(a, b SectorTrend) int {
		return b.TotalCompanies - a.TotalCompanies
	})
	return trends
}

// dominantCode returns the most frequent activity code. On a tie the code
// seen first in the group wins.
func dominantCode(list []*entity.Company) string {
	counts := make(map[string]int)
	var order []string
	for _, c := range list {
		if _, ok := counts[c.ActivityCode]; !ok {
			order = append(order, c.ActivityCode)
		}
		counts[c.ActivityCode]++
	}

	best, bestCount := "", 0
	for _, code := range order {
		if counts[code] > bestCount {
			best, bestCount = code, counts[code]
		}
	}
	return best
}
