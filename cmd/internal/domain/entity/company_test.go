package entity

import (
	"encoding/json"
	"strconv"
	"testing"

	"hotelrp/cmd/internal/utils/uid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyJSON_IDSurvivesFloatDecoding(t *testing.T) {
	require.NoError(t, uid.Init(1))
	id := uid.Generate()
	require.Greater(t, id, int64(1<<53))

	company := Company{ID: id, CNPJ: "11.222.333/0001-81", LegalName: "Buffet Alfa"}
	data, err := json.Marshal(company)
	require.NoError(t, err)

	// Generic decoders turn JSON numbers into float64.
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	raw, ok := generic["id"].(string)
	require.True(t, ok, "id should be encoded as a string, got %T", generic["id"])
	assert.Equal(t, strconv.FormatInt(id, 10), raw)

	var back Company
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, id, back.ID)
}

func TestDedupeByCNPJ(t *testing.T) {
	first := &Company{ID: 1, CNPJDigits: "11222333000181"}
	second := &Company{ID: 2, CNPJDigits: "11444777000161"}
	repeat := &Company{ID: 3, CNPJDigits: "11222333000181"}
	noCNPJ := &Company{ID: 4}
	alsoNoCNPJ := &Company{ID: 5}

	kept, dropped := DedupeByCNPJ([]*Company{first, second, repeat, noCNPJ, alsoNoCNPJ})
	assert.Equal(t, []*Company{first, second, noCNPJ, alsoNoCNPJ}, kept)
	assert.Equal(t, []*Company{repeat}, dropped)

	kept, dropped = DedupeByCNPJ(nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}
