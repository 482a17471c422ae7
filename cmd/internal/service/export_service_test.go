package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryObjectStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryObjectStore) Upload(_ context.Context, key string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.objects[key] = data
	return key, nil
}

func (m *memoryObjectStore) Download(_ context.Context, key string) ([]byte, error) {
	return m.objects[key], m.err
}

func newExportService(t *testing.T, objects *memoryObjectStore) *DefaultExportService {
	store := &memoryStore{companies: sampleCompanies()}
	engine := analytics.NewEngineWithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})

	svc := NewExportService(store, loadReference(t), engine, nil)
	if objects != nil {
		svc.Storage = objects
	}
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return svc
}

func openWorkbook(t *testing.T, file *ExportFile) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestCompaniesWorkbook(t *testing.T) {
	svc := newExportService(t, nil)

	file, apierr := svc.CompaniesWorkbook(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, "empresas.xlsx", file.Name)
	assert.Equal(t, MIMEExcel, file.ContentType)

	f := openWorkbook(t, file)
	sheet := "Empresas Estratégicas"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, companyHeaders, rows[0])
	assert.Equal(t, "Buffet Alegria", rows[1][0])
	assert.Equal(t, "11.222.333/0001-81", rows[1][1])
	assert.Equal(t, "Outros", rows[3][2])
	assert.Equal(t, "parceiro", rows[1][9])
}

func TestReportWorkbook(t *testing.T) {
	svc := newExportService(t, nil)

	file, apierr := svc.Report(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, "relatorio_viabilidade.xlsx", file.Name)

	f := openWorkbook(t, file)
	assert.Equal(t, []string{"Resumo Executivo", "Eventos", "Concorrência", "Empresas"}, f.GetSheetList())

	title, err := f.GetCellValue("Resumo Executivo", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ESTUDO DE VIABILIDADE - HOTEL RIBEIRÃO PIRES", title)

	summary, err := f.GetRows("Resumo Executivo")
	require.NoError(t, err)
	values := map[string]string{}
	for _, row := range summary {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}
	assert.Equal(t, "19/10/2026", values["Data do Relatório"])
	assert.Equal(t, "315000", values["Visitantes/Ano"])
	assert.Equal(t, "55", values["Quartos"])
	assert.Equal(t, "R$ 280", values["Diária Target"])
	assert.Equal(t, "4 estrelas", values["Categoria"])
	assert.Equal(t, "60%", values["Ocupação"])
	assert.Equal(t, "R$ 168.00", values["RevPAR"])
	assert.Equal(t, "R$ 4721640.00", values["Receita Anual"])

	events, err := f.GetRows("Eventos")
	require.NoError(t, err)
	assert.Len(t, events, 9)
	assert.Equal(t, "Festival do Chocolate", events[1][0])

	hotels, err := f.GetRows("Concorrência")
	require.NoError(t, err)
	assert.Len(t, hotels, 12)

	companies, err := f.GetRows("Empresas")
	require.NoError(t, err)
	assert.Len(t, companies, 5)
}

func TestCompaniesCSV(t *testing.T) {
	svc := newExportService(t, nil)

	file, apierr := svc.CompaniesCSV(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, "empresas.csv", file.Name)
	assert.Equal(t, MIMECSV, file.ContentType)

	r := csv.NewReader(bytes.NewReader(file.Data))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Nome", "CNPJ", "Setor", "CNAE", "Telefone", "Email", "Status"}, records[0])
	assert.Equal(t, "Bar do Zé", records[2][0])
	assert.Equal(t, "prospectado", records[2][6])
}

func TestPublish(t *testing.T) {
	objects := &memoryObjectStore{objects: map[string][]byte{}}
	svc := newExportService(t, objects)
	file := &ExportFile{Name: "empresas.csv", Data: []byte("a;b")}

	resp, apierr := svc.Publish(context.Background(), file)
	require.Nil(t, apierr)
	assert.Equal(t, "empresas.csv", resp.File)
	assert.True(t, strings.HasPrefix(resp.Key, ExportKeyPrefix+"/"))
	assert.True(t, strings.HasSuffix(resp.Key, "/empresas.csv"))
	assert.Equal(t, []byte("a;b"), objects.objects[resp.Key])

	objects.err = errors.New("access denied")
	_, apierr = svc.Publish(context.Background(), file)
	assert.Equal(t, apierror.InternalServerError, apierr)
}

func TestPublish_WithoutStorage(t *testing.T) {
	svc := newExportService(t, nil)

	_, apierr := svc.Publish(context.Background(), &ExportFile{Name: "x.csv"})
	assert.Equal(t, apierror.ExportUnavailableError, apierr)
}
