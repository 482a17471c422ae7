package service

import (
	"net/http"
	"testing"

	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/reference"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceService(t *testing.T) *DefaultReferenceService {
	return NewReferenceService(loadReference(t), newValidator())
}

func TestListEvents(t *testing.T) {
	svc := newReferenceService(t)

	tests := []struct {
		name      string
		filter    contract.EventFilter
		wantTotal int
	}{
		{name: "all", filter: contract.EventFilter{}, wantTotal: 8},
		{name: "high impact", filter: contract.EventFilter{Impact: "alto"}, wantTotal: 2},
		{name: "medium impact", filter: contract.EventFilter{Impact: "medio"}, wantTotal: 6},
		{name: "august", filter: contract.EventFilter{Month: 8}, wantTotal: 1},
		{name: "january", filter: contract.EventFilter{Month: 1}, wantTotal: 0},
		{name: "impact and month", filter: contract.EventFilter{Impact: "medio", Month: 12}, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, apierr := svc.ListEvents(&tt.filter)
			require.Nil(t, apierr)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Len(t, resp.Events, tt.wantTotal)
		})
	}
}

func TestListEvents_InvalidFilter(t *testing.T) {
	svc := newReferenceService(t)

	_, apierr := svc.ListEvents(&contract.EventFilter{Month: 13})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	_, apierr = svc.ListEvents(&contract.EventFilter{Impact: "enorme"})
	require.NotNil(t, apierr)
	assert.IsType(t, &apierror.StructuredError{}, apierr)
}

func TestGetEvent(t *testing.T) {
	svc := newReferenceService(t)

	ev, apierr := svc.GetEvent(1)
	require.Nil(t, apierr)
	assert.Equal(t, "Festival do Chocolate", ev.Name)

	_, apierr = svc.GetEvent(99)
	assert.Equal(t, apierror.EventNotFoundError, apierr)
}

func TestCalendar(t *testing.T) {
	svc := newReferenceService(t)

	calendar := svc.Calendar()
	require.Len(t, calendar, 12)

	tests := []struct {
		month          int
		attendance     int
		classification string
	}{
		{month: 1, attendance: 0, classification: "baixa"},
		{month: 3, attendance: 25000, classification: "media"},
		{month: 6, attendance: 10000, classification: "baixa"},
		{month: 8, attendance: 180000, classification: "alta"},
		{month: 12, attendance: 50000, classification: "media"},
	}
	for _, tt := range tests {
		m := calendar[tt.month-1]
		assert.Equal(t, tt.month, m.Month)
		assert.Equal(t, tt.attendance, m.TotalAttendance, m.Name)
		assert.Equal(t, tt.classification, m.Classification, m.Name)
	}

	assert.NotNil(t, calendar[0].Events)
	assert.Equal(t, 0, calendar[0].TotalEvents)
}

func TestEventImpact(t *testing.T) {
	svc := newReferenceService(t)

	impact := svc.EventImpact()
	assert.Equal(t, 2, impact.High.Count)
	assert.Equal(t, 230000, impact.High.Attendance)
	assert.Equal(t, 6, impact.Medium.Count)
	assert.Equal(t, 93000, impact.Medium.Attendance)
	assert.Equal(t, 0, impact.Low.Count)
	assert.NotNil(t, impact.Low.Events)
	assert.Equal(t, 5530, impact.PotentialGuests)
	assert.Equal(t, 8295.0, impact.PotentialNights)
}

func TestListHotels(t *testing.T) {
	svc := newReferenceService(t)

	resp, apierr := svc.ListHotels(&contract.HotelFilter{})
	require.Nil(t, apierr)
	assert.Equal(t, 11, resp.Total)

	resp, apierr = svc.ListHotels(&contract.HotelFilter{City: "maua"})
	require.Nil(t, apierr)
	assert.Equal(t, 2, resp.Total)

	resp, apierr = svc.ListHotels(&contract.HotelFilter{Type: "pousada"})
	require.Nil(t, apierr)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Fiori de Luce", resp.Hotels[0].Name)

	_, apierr = svc.ListHotels(&contract.HotelFilter{Type: "motel"})
	assert.NotNil(t, apierr)
}

func TestGetHotel(t *testing.T) {
	svc := newReferenceService(t)

	h, apierr := svc.GetHotel(8)
	require.Nil(t, apierr)
	assert.Equal(t, "Hilton Garden Inn", h.Name)

	_, apierr = svc.GetHotel(0)
	assert.Equal(t, apierror.HotelNotFoundError, apierr)
}

func TestRateComparison(t *testing.T) {
	svc := newReferenceService(t)

	resp := svc.RateComparison()
	assert.Len(t, resp.ByCity, 3)
	assert.Len(t, resp.ByCity["Santo Andre"], 6)
	assert.Equal(t, 263.33, resp.CityAverage)
	assert.Equal(t, 269.09, resp.RegionAverage)
	assert.Equal(t, contract.ProposedRates{Min: 250, Max: 350, Target: 280}, resp.Proposed)
}

func TestMarketGap(t *testing.T) {
	svc := newReferenceService(t)

	gap := svc.MarketGap()
	assert.Equal(t, contract.CurrentSupply{CityHotels: 3, CityBeds: 191, CityUpscaleHotels: 1}, gap.Current)
	require.Len(t, gap.Gaps, 4)
	assert.Equal(t, "Apenas 191 leitos para 315 mil visitantes/ano", gap.Gaps[3].Description)
	assert.Equal(t, 110, gap.Impact.NewBeds)
	assert.Equal(t, "40%", gap.Impact.SupplyIncrease)
	assert.Equal(t, "Ausência de hotel upscale e centro de convenções em Ribeirão Pires", gap.Conclusion)
}

func TestReferenceService_EmptyData(t *testing.T) {
	svc := NewReferenceService(&reference.Data{}, newValidator())

	resp, apierr := svc.ListEvents(&contract.EventFilter{})
	require.Nil(t, apierr)
	assert.Zero(t, resp.Total)

	rates := svc.RateComparison()
	assert.Zero(t, rates.CityAverage)
	assert.Equal(t, 280.0, rates.Proposed.Target)

	gap := svc.MarketGap()
	assert.Equal(t, "Apenas 0 leitos para 315 mil visitantes/ano", gap.Gaps[3].Description)
	assert.Equal(t, []string{}, gap.Impact.Differentiators)
}
