package handler

import (
	"context"
	"net/http"
	"strconv"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type CompanyService interface {
	List(ctx context.Context, filter *contract.CompanyFilter) (*contract.CompanyListResponse, apierror.ErrorResponse)
	Statistics(ctx context.Context) (*entity.CompanyStatistics, apierror.ErrorResponse)
	Sectors() map[string][]string
	Activities() *contract.ActivityListResponse
	SectorSummary(ctx context.Context) (map[string]*contract.SectorPartnershipSummary, apierror.ErrorResponse)
	GetByID(ctx context.Context, id int64) (*entity.Company, apierror.ErrorResponse)
	Create(ctx context.Context, req *contract.CompanyRequest) (*contract.CompanyMutationResponse, apierror.ErrorResponse)
	UpdateStatus(ctx context.Context, id int64, req *contract.StatusUpdateRequest) (*contract.CompanyMutationResponse, apierror.ErrorResponse)
	Delete(ctx context.Context, id int64) apierror.ErrorResponse
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyRoute(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (r *DefaultCompanyRoute) GetCompanies(c echo.Context) error {
	var filter contract.CompanyFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}

	resp, apierr := r.CompanyService.List(c.Request().Context(), &filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultCompanyRoute) GetStatistics(c echo.Context) error {
	stats, apierr := r.CompanyService.Statistics(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, stats)
}

func (r *DefaultCompanyRoute) GetSectors(c echo.Context) error {
	return c.JSON(http.StatusOK, r.CompanyService.Sectors())
}

func (r *DefaultCompanyRoute) GetActivities(c echo.Context) error {
	return c.JSON(http.StatusOK, r.CompanyService.Activities())
}

func (r *DefaultCompanyRoute) GetSectorSummary(c echo.Context) error {
	summary, apierr := r.CompanyService.SectorSummary(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, summary)
}

func (r *DefaultCompanyRoute) GetCompany(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	company, apierr := r.CompanyService.GetByID(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultCompanyRoute) CreateCompany(c echo.Context) error {
	var req contract.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := r.CompanyService.Create(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("company %s created by %s", resp.Company.CNPJ, utils.Actor(c))
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultCompanyRoute) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.StatusUpdateRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}

	resp, apierr := r.CompanyService.UpdateStatus(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("company %d moved to %s by %s", id, req.Status, utils.Actor(c))
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultCompanyRoute) DeleteCompany(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := r.CompanyService.Delete(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("company %d deleted by %s", id, utils.Actor(c))
	return c.JSON(http.StatusOK, &contract.MessageResponse{Message: "Empresa excluída com sucesso"})
}
