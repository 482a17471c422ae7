package handler

import (
	"context"
	"net/http"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

const (
	APIName    = "Hotel RP - Dashboard de Viabilidade"
	APIVersion = "1.0.0"
)

type SummaryService interface {
	Summary(ctx context.Context) (*contract.SummaryResponse, apierror.ErrorResponse)
}

type DefaultBaseRoute struct {
	SummaryService SummaryService
}

func NewBaseRoute(summaryService SummaryService) *DefaultBaseRoute {
	return &DefaultBaseRoute{SummaryService: summaryService}
}

func (b *DefaultBaseRoute) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.RootResponse{
		Name:          APIName,
		Version:       APIVersion,
		Status:        "online",
		Documentation: "/",
		Endpoints: map[string]string{
			"empresas":     "/empresas",
			"eventos":      "/eventos",
			"concorrencia": "/concorrencia",
			"analytics":    "/analytics",
			"cnpj":         "/cnpj",
			"exportar":     "/exportar",
		},
		Project: contract.ProjectInfo{
			Description: "Hotel upscale em Ribeirão Pires com centro de convenções, restaurante gastronômico e rooftop bar",
			Location:    "Centro de Ribeirão Pires, SP",
			Differentiators: []string{
				"Primeiro hotel upscale da cidade",
				"Centro de convenções integrado",
				"Rooftop bar panorâmico (inédito na região)",
				"Restaurante gastronômico regional",
			},
		},
	})
}

// Health is polled by the container healthcheck.
func (b *DefaultBaseRoute) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.HealthResponse{Status: "healthy"})
}

func (b *DefaultBaseRoute) Summary(c echo.Context) error {
	summary, apierr := b.SummaryService.Summary(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, summary)
}
