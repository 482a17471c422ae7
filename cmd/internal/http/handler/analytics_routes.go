package handler

import (
	"context"
	"net/http"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AnalyticsService interface {
	KPIs(ctx context.Context) (*analytics.KPIs, apierror.ErrorResponse)
	SectorTrends(ctx context.Context) ([]analytics.SectorTrend, apierror.ErrorResponse)
	Projections() []analytics.Projection
	Seasonality() []analytics.MonthSeasonality
	Complete(ctx context.Context) (*analytics.CompleteAnalysis, apierror.ErrorResponse)
	ScoreDetail(ctx context.Context) (*analytics.ScoreDetail, apierror.ErrorResponse)
	Demand(ctx context.Context) (*analytics.DemandEstimate, apierror.ErrorResponse)
}

type DefaultAnalyticsRoute struct {
	AnalyticsService AnalyticsService
}

func NewAnalyticsRoute(analyticsService AnalyticsService) *DefaultAnalyticsRoute {
	return &DefaultAnalyticsRoute{AnalyticsService: analyticsService}
}

func (r *DefaultAnalyticsRoute) GetKPIs(c echo.Context) error {
	kpis, apierr := r.AnalyticsService.KPIs(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, kpis)
}

func (r *DefaultAnalyticsRoute) GetTrends(c echo.Context) error {
	trends, apierr := r.AnalyticsService.SectorTrends(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tendencias": trends}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultAnalyticsRoute) GetProjections(c echo.Context) error {
	resp := echo.Map{"projecoes": r.AnalyticsService.Projections()}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultAnalyticsRoute) GetSeasonality(c echo.Context) error {
	resp := echo.Map{"sazonalidade": r.AnalyticsService.Seasonality()}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultAnalyticsRoute) GetComplete(c echo.Context) error {
	complete, apierr := r.AnalyticsService.Complete(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, complete)
}

func (r *DefaultAnalyticsRoute) GetScore(c echo.Context) error {
	detail, apierr := r.AnalyticsService.ScoreDetail(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, detail)
}

func (r *DefaultAnalyticsRoute) GetDemand(c echo.Context) error {
	demand, apierr := r.AnalyticsService.Demand(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, demand)
}
