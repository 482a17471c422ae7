package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"time"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/domain/reference"
	"hotelrp/cmd/internal/infrastructure/aws/storage"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/xuri/excelize/v2"
)

const (
	MIMEExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMECSV   = "text/csv; charset=utf-8"

	ExportKeyPrefix = "exports"

	headerColor = "#1E3A5F"
)

var companyHeaders = []string{
	"Nome", "CNPJ", "Setor", "CNAE", "Data Abertura",
	"Município", "Telefone", "Email", "Porte", "Status Parceria",
}

var companyColumnWidths = []float64{30, 18, 20, 12, 12, 15, 15, 25, 8, 15}

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// DefaultExportService renders spreadsheets and CSVs of the current data.
// Storage is optional; without it files can only be downloaded.
type DefaultExportService struct {
	Companies CompanyLoader
	Reference *reference.Data
	Engine    *analytics.Engine
	Storage   storage.ObjectStore

	now func() time.Time
}

func NewExportService(companies CompanyLoader, ref *reference.Data, engine *analytics.Engine, store storage.ObjectStore) *DefaultExportService {
	return &DefaultExportService{
		Companies: companies,
		Reference: ref,
		Engine:    engine,
		Storage:   store,
		now:       time.Now,
	}
}

func (e *DefaultExportService) loadCompanies(ctx context.Context) ([]*entity.Company, apierror.ErrorResponse) {
	companies, err := e.Companies.Load(ctx)
	if err != nil {
		log.Errorf("failed to load companies for export: %v", err)
		return nil, apierror.InternalServerError
	}
	return companies, nil
}

func (e *DefaultExportService) CompaniesWorkbook(ctx context.Context) (*ExportFile, apierror.ErrorResponse) {
	companies, apierr := e.loadCompanies(ctx)
	if apierr != nil {
		return nil, apierr
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Empresas Estratégicas"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, workbookError(err)
	}

	for i, h := range companyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, workbookError(err)
	}
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	for i, c := range companies {
		row := []any{
			c.LegalName, c.CNPJ, c.SectorOrDefault(), c.ActivityCode, c.RegistrationDate,
			c.City, c.Phone, c.Email, string(c.Size), string(c.PartnershipStatus),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, workbookError(err)
		}
	}

	for i, width := range companyColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}

	return writeWorkbook(f, "empresas.xlsx")
}

// Report builds the four-sheet viability workbook: executive summary,
// events, competition and companies.
func (e *DefaultExportService) Report(ctx context.Context) (*ExportFile, apierror.ErrorResponse) {
	companies, apierr := e.loadCompanies(ctx)
	if apierr != nil {
		return nil, apierr
	}

	complete := e.Engine.Complete(&analytics.Snapshot{
		Companies: companies,
		Events:    e.Reference.Events,
		Market:    e.Reference.Market,
	})

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, &complete); err != nil {
		return nil, workbookError(err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, workbookError(err)
	}

	var events [][]any
	if e.Reference.Events != nil {
		for _, ev := range e.Reference.Events.Events {
			events = append(events, []any{ev.Name, ev.Period, ev.EstimatedAttendance, string(ev.Impact)})
		}
	}
	if err := writeTable(f, "Eventos", bold, []string{"Evento", "Período", "Público Estimado", "Impacto Hotel"}, events); err != nil {
		return nil, workbookError(err)
	}

	var hotels [][]any
	if e.Reference.Market != nil {
		for _, h := range e.Reference.Market.Hotels {
			var rating any = ""
			if h.Rating != nil {
				rating = *h.Rating
			}
			hotels = append(hotels, []any{h.Name, h.City, h.Rooms, h.AverageRate, rating})
		}
	}
	if err := writeTable(f, "Concorrência", bold, []string{"Hotel", "Cidade", "Quartos", "Diária Média", "Nota"}, hotels); err != nil {
		return nil, workbookError(err)
	}

	rows := make([][]any, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []any{c.LegalName, c.SectorOrDefault(), c.ActivityCode, string(c.PartnershipStatus)})
	}
	if err := writeTable(f, "Empresas", bold, []string{"Nome", "Setor", "CNAE", "Status"}, rows); err != nil {
		return nil, workbookError(err)
	}

	return writeWorkbook(f, "relatorio_viabilidade.xlsx")
}

func (e *DefaultExportService) writeSummarySheet(f *excelize.File, complete *analytics.CompleteAnalysis) error {
	sheet := "Resumo Executivo"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "ESTUDO DE VIABILIDADE - HOTEL RIBEIRÃO PIRES")
	f.SetCellStyle(sheet, "A1", "A1", title)
	f.MergeCell(sheet, "A1", "D1")

	k := complete.KPIs
	hotel := complete.ProposedHotel
	var moderate analytics.Projection
	for _, p := range complete.Projections {
		if p.Scenario == "moderado" {
			moderate = p
		}
	}
	category := hotel.Category
	if category == "" {
		category = "Upscale"
	}

	rows := [][2]any{
		{"Data do Relatório", e.now().Format("02/01/2006")},
		{"", ""},
		{"INDICADORES CHAVE", ""},
		{"Visitantes/Ano", k.TotalEventAttendance},
		{"Eventos/Ano", k.TotalEvents},
		{"Leitos Disponíveis", k.AvailableBedsInCity},
		{"Score de Viabilidade", k.ViabilityScore},
		{"", ""},
		{"HOTEL PROPOSTO", ""},
		{"Quartos", hotel.RoomsOrDefault()},
		{"Diária Target", fmt.Sprintf("R$ %.0f", hotel.TargetRateOrDefault())},
		{"Categoria", category},
		{"", ""},
		{"PROJEÇÃO (Cenário Moderado)", ""},
		{"Ocupação", fmt.Sprintf("%.0f%%", moderate.AverageOccupancy)},
		{"RevPAR", fmt.Sprintf("R$ %.2f", moderate.RevPAR)},
		{"Receita Anual", fmt.Sprintf("R$ %.2f", moderate.AnnualRevenue)},
	}

	for i, r := range rows {
		row := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r[1])
		if r[1] == "" && r[0] != "" {
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
		}
	}
	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeWorkbook(f *excelize.File, name string) (*ExportFile, apierror.ErrorResponse) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, workbookError(err)
	}
	return &ExportFile{Name: name, ContentType: MIMEExcel, Data: buf.Bytes()}, nil
}

func workbookError(err error) apierror.ErrorResponse {
	log.Errorf("failed to build workbook: %v", err)
	return apierror.InternalServerError
}

// CompaniesCSV renders the company list with ";" as separator, the format
// spreadsheet tools in pt-BR locales open directly.
func (e *DefaultExportService) CompaniesCSV(ctx context.Context) (*ExportFile, apierror.ErrorResponse) {
	companies, apierr := e.loadCompanies(ctx)
	if apierr != nil {
		return nil, apierr
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	_ = w.Write([]string{"Nome", "CNPJ", "Setor", "CNAE", "Telefone", "Email", "Status"})
	for _, c := range companies {
		_ = w.Write([]string{
			c.LegalName, c.CNPJ, c.SectorOrDefault(), c.ActivityCode,
			c.Phone, c.Email, string(c.PartnershipStatus),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Errorf("failed to write csv: %v", err)
		return nil, apierror.InternalServerError
	}

	return &ExportFile{Name: "empresas.csv", ContentType: MIMECSV, Data: buf.Bytes()}, nil
}

// Publish uploads file to the export bucket under a unique key.
func (e *DefaultExportService) Publish(ctx context.Context, file *ExportFile) (*contract.PublishResponse, apierror.ErrorResponse) {
	if e.Storage == nil {
		return nil, apierror.ExportUnavailableError
	}

	key := path.Join(ExportKeyPrefix, uuid.NewString(), file.Name)
	location, err := e.Storage.Upload(ctx, key, file.Data)
	if err != nil {
		log.Errorf("failed to upload export %s: %v", key, err)
		return nil, apierror.InternalServerError
	}

	log.Infof("export %s published to %s", file.Name, location)
	return &contract.PublishResponse{File: file.Name, Key: location}, nil
}
