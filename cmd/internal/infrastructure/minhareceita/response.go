package minhareceita

import (
	"strconv"
	"strings"

	"hotelrp/cmd/internal/infrastructure/registry"
	"hotelrp/cmd/internal/utils"
)

type companyResponse struct {
	CNPJ               string  `json:"cnpj"`
	LegalName          string  `json:"razao_social"`
	TradeName          string  `json:"nome_fantasia"`
	LegalNature        string  `json:"natureza_juridica"`
	CompanySize        string  `json:"porte"`
	BusinessStartDate  string  `json:"data_inicio_atividade"`
	RegistrationStatus string  `json:"descricao_situacao_cadastral"`
	BranchType         string  `json:"descricao_identificador_matriz_filial"`
	ShareCapital       float64 `json:"capital_social"`

	MainActivityCode        int                 `json:"cnae_fiscal"`
	MainActivityDescription string              `json:"cnae_fiscal_descricao"`
	SecondaryActivities     []*activityResponse `json:"cnaes_secundarios"`

	AddressType         string `json:"descricao_tipo_de_logradouro"`
	AddressStreetName   string `json:"logradouro"`
	AddressNumber       string `json:"numero"`
	AddressComplement   string `json:"complemento"`
	AddressNeighborhood string `json:"bairro"`
	AddressCity         string `json:"municipio"`
	AddressState        string `json:"uf"`
	AddressZipCode      string `json:"cep"`
	Phone               string `json:"ddd_telefone_1"`
	Email               string `json:"email"`

	Partners []*partnerResponse `json:"qsa"`
}

type activityResponse struct {
	Code        int    `json:"codigo"`
	Description string `json:"descricao"`
}

type partnerResponse struct {
	Name string `json:"nome_socio"`
	Role string `json:"qualificacao_socio"`
}

func (c *companyResponse) ToDomain() *registry.Company {
	partners := make([]registry.Partner, 0, len(c.Partners))
	for _, p := range c.Partners {
		partners = append(partners, registry.Partner{Name: p.Name, Role: p.Role})
	}

	secondary := make([]registry.Activity, 0, len(c.SecondaryActivities))
	for _, a := range c.SecondaryActivities {
		secondary = append(secondary, registry.Activity{
			Code:        formatActivityCode(a.Code),
			Description: a.Description,
		})
	}

	street := strings.TrimSpace(c.AddressType + " " + c.AddressStreetName)
	digits := utils.OnlyDigits(c.CNPJ)

	return &registry.Company{
		CNPJ:          digits,
		FormattedCNPJ: utils.FormatCNPJ(digits),
		LegalName:     c.LegalName,
		TradeName:     c.TradeName,
		Status:        strings.ToUpper(c.RegistrationStatus),
		Type:          c.BranchType,
		OpeningDate:   c.BusinessStartDate,
		LegalNature:   c.LegalNature,
		SizeText:      c.CompanySize,
		ShareCapital:  strconv.FormatFloat(c.ShareCapital, 'f', 2, 64),
		MainActivity: registry.Activity{
			Code:        formatActivityCode(c.MainActivityCode),
			Description: c.MainActivityDescription,
		},
		SecondaryActivities: secondary,
		Partners:            partners,
		Street:              street,
		Number:              c.AddressNumber,
		Complement:          c.AddressComplement,
		Neighborhood:        c.AddressNeighborhood,
		City:                c.AddressCity,
		State:               c.AddressState,
		ZipCode:             c.AddressZipCode,
		Phone:               c.Phone,
		Email:               c.Email,
	}
}

// formatActivityCode turns the numeric CNAE (5620102) into "5620-1/02".
func formatActivityCode(code int) string {
	if code <= 0 {
		return ""
	}
	s := strconv.Itoa(code)
	if len(s) < 7 {
		s = strings.Repeat("0", 7-len(s)) + s
	}
	return s[:4] + "-" + s[4:5] + "/" + s[5:]
}
