package handler

import (
	"context"
	"fmt"
	"net/http"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/service"
	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type ExportService interface {
	CompaniesWorkbook(ctx context.Context) (*service.ExportFile, apierror.ErrorResponse)
	CompaniesCSV(ctx context.Context) (*service.ExportFile, apierror.ErrorResponse)
	Report(ctx context.Context) (*service.ExportFile, apierror.ErrorResponse)
	Publish(ctx context.Context, file *service.ExportFile) (*contract.PublishResponse, apierror.ErrorResponse)
}

type DefaultExportRoute struct {
	ExportService ExportService
}

func NewExportRoute(exportService ExportService) *DefaultExportRoute {
	return &DefaultExportRoute{ExportService: exportService}
}

func (r *DefaultExportRoute) build(c echo.Context) (*service.ExportFile, apierror.ErrorResponse) {
	ctx := c.Request().Context()
	switch c.Param("file") {
	case "empresas.xlsx":
		return r.ExportService.CompaniesWorkbook(ctx)
	case "empresas.csv":
		return r.ExportService.CompaniesCSV(ctx)
	case "relatorio.xlsx":
		return r.ExportService.Report(ctx)
	default:
		return nil, apierror.UnknownExportError
	}
}

// Download streams the file as an attachment.
func (r *DefaultExportRoute) Download(c echo.Context) error {
	file, apierr := r.build(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

// Publish uploads the file to the export bucket and returns its key.
func (r *DefaultExportRoute) Publish(c echo.Context) error {
	file, apierr := r.build(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp, apierr := r.ExportService.Publish(c.Request().Context(), file)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("export %s published by %s", file.Name, utils.Actor(c))
	return c.JSON(http.StatusCreated, resp)
}
