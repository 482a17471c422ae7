package handler

import (
	"net/http"
	"strconv"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type EventService interface {
	ListEvents(filter *contract.EventFilter) (*contract.EventListResponse, apierror.ErrorResponse)
	EventSummary() entity.EventSummary
	GetEvent(id int) (*entity.Event, apierror.ErrorResponse)
	Calendar() []contract.CalendarMonth
	EventImpact() *contract.EventImpactResponse
}

type DefaultEventRoute struct {
	EventService EventService
}

func NewEventRoute(eventService EventService) *DefaultEventRoute {
	return &DefaultEventRoute{EventService: eventService}
}

func (r *DefaultEventRoute) GetEvents(c echo.Context) error {
	var filter contract.EventFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("mes", "int"))
	}

	resp, apierr := r.EventService.ListEvents(&filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultEventRoute) GetSummary(c echo.Context) error {
	summary := r.EventService.EventSummary()
	return c.JSON(http.StatusOK, &summary)
}

func (r *DefaultEventRoute) GetCalendar(c echo.Context) error {
	return c.JSON(http.StatusOK, r.EventService.Calendar())
}

func (r *DefaultEventRoute) GetImpact(c echo.Context) error {
	return c.JSON(http.StatusOK, r.EventService.EventImpact())
}

func (r *DefaultEventRoute) GetEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	event, apierr := r.EventService.GetEvent(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}
