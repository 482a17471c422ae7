package handler

import (
	"net/http"
	"strconv"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type MarketService interface {
	ListHotels(filter *contract.HotelFilter) (*contract.HotelListResponse, apierror.ErrorResponse)
	GetHotel(id int) (*entity.CompetingHotel, apierror.ErrorResponse)
	MarketAnalysis() entity.MarketAnalysis
	ProposedHotel() entity.ProposedHotel
	RateComparison() *contract.RateComparisonResponse
	MarketGap() *contract.MarketGapResponse
}

type DefaultMarketRoute struct {
	MarketService MarketService
}

func NewMarketRoute(marketService MarketService) *DefaultMarketRoute {
	return &DefaultMarketRoute{MarketService: marketService}
}

func (r *DefaultMarketRoute) GetHotels(c echo.Context) error {
	var filter contract.HotelFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}

	resp, apierr := r.MarketService.ListHotels(&filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultMarketRoute) GetHotel(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	hotel, apierr := r.MarketService.GetHotel(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, hotel)
}

func (r *DefaultMarketRoute) GetMarketAnalysis(c echo.Context) error {
	analysis := r.MarketService.MarketAnalysis()
	return c.JSON(http.StatusOK, &analysis)
}

func (r *DefaultMarketRoute) GetProposedHotel(c echo.Context) error {
	hotel := r.MarketService.ProposedHotel()
	return c.JSON(http.StatusOK, &hotel)
}

func (r *DefaultMarketRoute) GetRateComparison(c echo.Context) error {
	return c.JSON(http.StatusOK, r.MarketService.RateComparison())
}

func (r *DefaultMarketRoute) GetMarketGap(c echo.Context) error {
	return c.JSON(http.StatusOK, r.MarketService.MarketGap())
}
