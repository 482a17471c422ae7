package service

import (
	"context"
	"fmt"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/domain/reference"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// CompanyLoader is the only store capability analytics needs.
type CompanyLoader interface {
	Load(ctx context.Context) ([]*entity.Company, error)
}

// DefaultAnalyticsService loads the company collection once per call and
// derives every figure of the response from that single snapshot.
type DefaultAnalyticsService struct {
	Companies CompanyLoader
	Reference *reference.Data
	Engine    *analytics.Engine
}

func NewAnalyticsService(companies CompanyLoader, ref *reference.Data, engine *analytics.Engine) *DefaultAnalyticsService {
	return &DefaultAnalyticsService{
		Companies: companies,
		Reference: ref,
		Engine:    engine,
	}
}

func (a *DefaultAnalyticsService) snapshot(ctx context.Context) (*analytics.Snapshot, apierror.ErrorResponse) {
	companies, err := a.Companies.Load(ctx)
	if err != nil {
		log.Errorf("failed to load companies for analytics: %v", err)
		return nil, apierror.InternalServerError
	}

	return &analytics.Snapshot{
		Companies: companies,
		Events:    a.Reference.Events,
		Market:    a.Reference.Market,
	}, nil
}

func (a *DefaultAnalyticsService) proposedHotel() *entity.ProposedHotel {
	if a.Reference.Market == nil {
		return nil
	}
	return &a.Reference.Market.ProposedHotel
}

func (a *DefaultAnalyticsService) KPIs(ctx context.Context) (*analytics.KPIs, apierror.ErrorResponse) {
	snap, apierr := a.snapshot(ctx)
	if apierr != nil {
		return nil, apierr
	}

	kpis := a.Engine.KPIs(snap.Companies, snap.Events, snap.Market)
	return &kpis, nil
}

func (a *DefaultAnalyticsService) SectorTrends(ctx context.Context) ([]analytics.SectorTrend, apierror.ErrorResponse) {
	snap, apierr := a.snapshot(ctx)
	if apierr != nil {
		return nil, apierr
	}
	return a.Engine.SectorTrends(snap.Companies), nil
}

func (a *DefaultAnalyticsService) Projections() []analytics.Projection {
	return analytics.Projections(a.proposedHotel())
}

func (a *DefaultAnalyticsService) Seasonality() []analytics.MonthSeasonality {
	var events []entity.Event
	if a.Reference.Events != nil {
		events = a.Reference.Events.Events
	}
	return analytics.Seasonality(events)
}

func (a *DefaultAnalyticsService) Complete(ctx context.Context) (*analytics.CompleteAnalysis, apierror.ErrorResponse) {
	snap, apierr := a.snapshot(ctx)
	if apierr != nil {
		return nil, apierr
	}

	complete := a.Engine.Complete(snap)
	return &complete, nil
}

func (a *DefaultAnalyticsService) ScoreDetail(ctx context.Context) (*analytics.ScoreDetail, apierror.ErrorResponse) {
	kpis, apierr := a.KPIs(ctx)
	if apierr != nil {
		return nil, apierr
	}

	detail := analytics.DetailScore(*kpis)
	return &detail, nil
}

func (a *DefaultAnalyticsService) Demand(ctx context.Context) (*analytics.DemandEstimate, apierror.ErrorResponse) {
	kpis, apierr := a.KPIs(ctx)
	if apierr != nil {
		return nil, apierr
	}

	demand := analytics.EstimateDemand(*kpis, a.proposedHotel())
	return &demand, nil
}

// Summary is the executive summary served at /resumo.
func (a *DefaultAnalyticsService) Summary(ctx context.Context) (*contract.SummaryResponse, apierror.ErrorResponse) {
	complete, apierr := a.Complete(ctx)
	if apierr != nil {
		return nil, apierr
	}
	k := complete.KPIs

	return &contract.SummaryResponse{
		Project:        "Hotel Upscale Ribeirão Pires",
		ViabilityScore: k.ViabilityScore,
		Indicators: contract.KeyIndicators{
			VisitorsPerYear: k.TotalEventAttendance,
			EventsPerYear:   k.TotalEvents,
			CurrentBeds:     k.AvailableBedsInCity,
			MarketGap:       k.EstimatedMarketGap,
			BusinessGrowth:  fmt.Sprintf("%g%%", k.OverallGrowthPercent),
		},
		Scenarios: complete.Projections,
		Conclusion: fmt.Sprintf(
			"Viabilidade de mercado FORTE. Gap significativo entre demanda turística (%dk visitantes) e oferta hoteleira (%d leitos).",
			k.TotalEventAttendance/1000, k.AvailableBedsInCity,
		),
		NextSteps: []string{
			"Estudo de engenharia e arquitetura",
			"Análise financeira detalhada (CAPEX/OPEX)",
			"Estratégia de parcerias com buffets locais",
			"Planejamento de marketing para inauguração",
		},
	}, nil
}
