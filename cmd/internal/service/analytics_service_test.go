package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsService(t *testing.T) (*DefaultAnalyticsService, *memoryStore) {
	store := &memoryStore{companies: sampleCompanies()}
	engine := analytics.NewEngineWithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	return NewAnalyticsService(store, loadReference(t), engine), store
}

func TestAnalyticsKPIs(t *testing.T) {
	svc, _ := newAnalyticsService(t)

	k, apierr := svc.KPIs(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, 4, k.TotalStrategicCompanies)
	// 2024-03-10 is before the cutoff, 2025-01-15 after it
	assert.Equal(t, 1, k.CompaniesOpenedLastYear)
	assert.Equal(t, 127, k.TotalEvents)
	assert.Equal(t, 315000, k.TotalEventAttendance)
	assert.Equal(t, 200, k.AvailableBedsInCity)
	assert.Equal(t, 0, k.EstimatedMarketGap)
	assert.Equal(t, 100.0, k.ViabilityScore)
}

func TestAnalyticsCompleteUsesOneSnapshot(t *testing.T) {
	svc, store := newAnalyticsService(t)

	complete, apierr := svc.Complete(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, 1, store.loads)

	assert.Equal(t, 4, complete.KPIs.TotalStrategicCompanies)
	require.Len(t, complete.SectorTrends, 3)
	assert.Equal(t, "Buffets/Catering", complete.SectorTrends[0].Sector)
	assert.Len(t, complete.Projections, 3)
	assert.Len(t, complete.Seasonality, 12)
	assert.Equal(t, "Hotel RP", complete.ProposedHotel.Name)
}

func TestAnalyticsScoreAndDemand(t *testing.T) {
	svc, _ := newAnalyticsService(t)
	ctx := context.Background()

	detail, apierr := svc.ScoreDetail(ctx)
	require.Nil(t, apierr)
	assert.Equal(t, "Excelente", detail.Classification)
	assert.Equal(t, "Excelente", detail.Factors["volume_eventos"].Evaluation)
	assert.Equal(t, "Excelente", detail.Factors["publico_turistico"].Evaluation)

	demand, apierr := svc.Demand(ctx)
	require.Nil(t, apierr)
	assert.Equal(t, 55, demand.Capacity.Rooms)
	assert.Equal(t, 9450, demand.Segments["turismo_eventos"].PotentialNights)
}

func TestAnalyticsProjectionsAndSeasonality(t *testing.T) {
	svc, _ := newAnalyticsService(t)

	projections := svc.Projections()
	require.Len(t, projections, 3)
	assert.Equal(t, "moderado", projections[1].Scenario)
	assert.Equal(t, 168.0, projections[1].RevPAR)
	assert.Equal(t, 4721640.0, projections[1].AnnualRevenue)

	assert.Len(t, svc.Seasonality(), 12)
}

func TestAnalyticsSummary(t *testing.T) {
	svc, _ := newAnalyticsService(t)

	summary, apierr := svc.Summary(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, 100.0, summary.ViabilityScore)
	assert.Equal(t, "15.2%", summary.Indicators.BusinessGrowth)
	assert.Equal(t, 315000, summary.Indicators.VisitorsPerYear)
	assert.Contains(t, summary.Conclusion, "315k visitantes")
	assert.Contains(t, summary.Conclusion, "200 leitos")
	assert.Len(t, summary.NextSteps, 4)
}

func TestAnalyticsStoreFailure(t *testing.T) {
	svc, store := newAnalyticsService(t)
	store.err = errors.New("unreadable")

	_, apierr := svc.KPIs(context.Background())
	assert.Equal(t, apierror.InternalServerError, apierr)

	_, apierr = svc.Summary(context.Background())
	assert.Equal(t, apierror.InternalServerError, apierr)
}
