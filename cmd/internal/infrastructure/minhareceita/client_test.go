package minhareceita

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelrp/cmd/internal/infrastructure/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{
  "cnpj": "11222333000181",
  "razao_social": "BUFFET ALFA LTDA",
  "nome_fantasia": "ALFA EVENTOS",
  "natureza_juridica": "Sociedade Empresária Limitada",
  "porte": "MICRO EMPRESA",
  "data_inicio_atividade": "2024-11-05",
  "descricao_situacao_cadastral": "Ativa",
  "descricao_identificador_matriz_filial": "MATRIZ",
  "capital_social": 50000,
  "cnae_fiscal": 5620102,
  "cnae_fiscal_descricao": "Serviços de alimentação para eventos e recepções - bufê",
  "cnaes_secundarios": [{"codigo": 111301, "descricao": "Cultivo de arroz"}],
  "descricao_tipo_de_logradouro": "RUA",
  "logradouro": "DAS FLORES",
  "numero": "10",
  "bairro": "CENTRO",
  "municipio": "RIBEIRAO PIRES",
  "uf": "SP",
  "cep": "09400000",
  "ddd_telefone_1": "1147000000",
  "qsa": [{"nome_socio": "MARIA", "qualificacao_socio": "Sócio-Administrador"}]
}`

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/11222333000181", r.URL.Path)
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c, err := NewClient(registry.Config{BaseURL: srv.URL, MaxRetries: 1}).Lookup(context.Background(), "11222333000181")
	require.NoError(t, err)

	assert.Equal(t, "11.222.333/0001-81", c.FormattedCNPJ)
	assert.Equal(t, "5620-1/02", c.MainActivity.Code)
	assert.Equal(t, "0111-3/01", c.SecondaryActivities[0].Code)
	assert.Equal(t, "ATIVA", c.Status)
	assert.Equal(t, "RUA DAS FLORES", c.Street)
	assert.Equal(t, "50000.00", c.ShareCapital)
	assert.Equal(t, "2024-11-05", c.OpeningDate)
	assert.Equal(t, "Sócio-Administrador", c.Partners[0].Role)
}

func TestLookup_NotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusBadRequest} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := NewClient(registry.Config{BaseURL: srv.URL, MaxRetries: 1}).Lookup(context.Background(), "11222333000181")
		assert.ErrorIs(t, err, registry.ErrNotFound)
		srv.Close()
	}
}

func TestFormatActivityCode(t *testing.T) {
	assert.Equal(t, "5620-1/02", formatActivityCode(5620102))
	assert.Equal(t, "0111-3/01", formatActivityCode(111301))
	assert.Equal(t, "", formatActivityCode(0))
}
