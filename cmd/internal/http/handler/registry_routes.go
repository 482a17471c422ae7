package handler

import (
	"context"
	"net/http"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type RegistryService interface {
	Info() map[string]any
	GetConfig() *contract.ConfigResponse
	UpdateConfig(req *contract.ConfigRequest) (*contract.ConfigUpdateResponse, apierror.ErrorResponse)
	Lookup(ctx context.Context, cnpj string, save bool) (*contract.LookupResponse, apierror.ErrorResponse)
	Batch(ctx context.Context, cnpjs []string, saveStrategic bool) (*contract.BatchResponse, apierror.ErrorResponse)
	Status(ctx context.Context) *contract.StatusResponse
	StrategicCodes() *contract.StrategicCodesResponse
}

type DefaultRegistryRoute struct {
	RegistryService RegistryService
}

func NewRegistryRoute(registryService RegistryService) *DefaultRegistryRoute {
	return &DefaultRegistryRoute{RegistryService: registryService}
}

func (r *DefaultRegistryRoute) GetInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, r.RegistryService.Info())
}

func (r *DefaultRegistryRoute) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, r.RegistryService.GetConfig())
}

func (r *DefaultRegistryRoute) UpdateConfig(c echo.Context) error {
	var req contract.ConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := r.RegistryService.UpdateConfig(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("registry configuration changed by %s", utils.Actor(c))
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultRegistryRoute) Lookup(c echo.Context) error {
	var query contract.LookupQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("salvar", "bool"))
	}

	resp, apierr := r.RegistryService.Lookup(c.Request().Context(), c.Param("cnpj"), query.Save)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// Batch expects a JSON array of CNPJs. Strategic companies are saved unless
// salvar_estrategicos=false.
func (r *DefaultRegistryRoute) Batch(c echo.Context) error {
	var query contract.BatchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("salvar_estrategicos", "bool"))
	}

	var cnpjs []string
	if err := (&echo.DefaultBinder{}).BindBody(c, &cnpjs); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	save := true
	if query.SaveStrategic != nil {
		save = *query.SaveStrategic
	}

	resp, apierr := r.RegistryService.Batch(c.Request().Context(), cnpjs, save)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultRegistryRoute) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, r.RegistryService.Status(c.Request().Context()))
}

func (r *DefaultRegistryRoute) GetStrategicCodes(c echo.Context) error {
	return c.JSON(http.StatusOK, r.RegistryService.StrategicCodes())
}
