package receitaws

import (
	"hotelrp/cmd/internal/infrastructure/registry"
	"hotelrp/cmd/internal/utils"
)

type companyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	CNPJ         string `json:"cnpj"`
	Type         string `json:"tipo"`
	OpeningDate  string `json:"abertura"`
	LegalName    string `json:"nome"`
	TradeName    string `json:"fantasia"`
	Size         string `json:"porte"`
	LegalNature  string `json:"natureza_juridica"`
	Situation    string `json:"situacao"`
	ShareCapital string `json:"capital_social"`
	LastUpdate   string `json:"ultima_atualizacao"`

	MainActivity        []registry.Activity `json:"atividade_principal"`
	SecondaryActivities []registry.Activity `json:"atividades_secundarias"`
	Partners            []registry.Partner  `json:"qsa"`

	Street       string `json:"logradouro"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"municipio"`
	State        string `json:"uf"`
	ZipCode      string `json:"cep"`
	Phone        string `json:"telefone"`
	Email        string `json:"email"`
}

func (c *companyResponse) ToDomain() *registry.Company {
	var main registry.Activity
	if len(c.MainActivity) > 0 {
		main = c.MainActivity[0]
	}
	main.Code = CanonicalActivityCode(main.Code)

	secondary := make([]registry.Activity, 0, len(c.SecondaryActivities))
	for _, a := range c.SecondaryActivities {
		secondary = append(secondary, registry.Activity{
			Code:        CanonicalActivityCode(a.Code),
			Description: a.Description,
		})
	}

	return &registry.Company{
		CNPJ:                utils.OnlyDigits(c.CNPJ),
		FormattedCNPJ:       c.CNPJ,
		LegalName:           c.LegalName,
		TradeName:           c.TradeName,
		Status:              c.Situation,
		Type:                c.Type,
		OpeningDate:         utils.ISODateFromBR(c.OpeningDate),
		LegalNature:         c.LegalNature,
		SizeText:            c.Size,
		ShareCapital:        c.ShareCapital,
		MainActivity:        main,
		SecondaryActivities: secondary,
		Partners:            c.Partners,
		Street:              c.Street,
		Number:              c.Number,
		Complement:          c.Complement,
		Neighborhood:        c.Neighborhood,
		City:                c.City,
		State:               c.State,
		ZipCode:             c.ZipCode,
		Phone:               c.Phone,
		Email:               c.Email,
		LastUpdate:          c.LastUpdate,
	}
}

// CanonicalActivityCode rewrites ReceitaWS codes ("56.20-1-02") into the
// table form ("5620-1/02"). Codes without exactly seven digits are kept.
func CanonicalActivityCode(code string) string {
	digits := utils.OnlyDigits(code)
	if len(digits) != 7 {
		return code
	}
	return digits[:4] + "-" + digits[4:5] + "/" + digits[5:]
}
