package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	CNPJ  string   `validate:"cnpj"`
	CNAE  string   `validate:"omitempty,cnae"`
	Date  string   `validate:"omitempty,isodate"`
	Items []string `validate:"nodupes"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	Register(v)

	tests := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"all good", sample{CNPJ: "11.222.333/0001-81", CNAE: "5620-1/02", Date: "2024-01-31", Items: []string{"a", "b"}}, true},
		{"dotted cnae", sample{CNPJ: "11222333000181", CNAE: "56.20-1/02"}, true},
		{"bad cnpj", sample{CNPJ: "11222333000100"}, false},
		{"bad cnae", sample{CNPJ: "11222333000181", CNAE: "5620102"}, false},
		{"bad date", sample{CNPJ: "11222333000181", Date: "31/01/2024"}, false},
		{"dupes", sample{CNPJ: "11222333000181", Items: []string{"a", "a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
