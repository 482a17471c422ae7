package contract

import "hotelrp/cmd/internal/domain/entity"

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

type CompanyRequest struct {
	CNPJ                string  `json:"cnpj" validate:"required,cnpj"`
	LegalName           string  `json:"razao_social" validate:"required,min=2,max=200"`
	TradeName           *string `json:"nome_fantasia" validate:"omitempty,max=200"`
	ActivityCode        string  `json:"cnae_principal" validate:"required,cnae"`
	ActivityDescription string  `json:"cnae_descricao" validate:"required,max=300"`
	RegistrationDate    string  `json:"data_abertura" validate:"required,isodate"`
	City                string  `json:"municipio" validate:"required,max=100"`
	Neighborhood        *string `json:"bairro" validate:"omitempty,max=100"`
	Address             *string `json:"endereco" validate:"omitempty,max=200"`
	Phone               *string `json:"telefone" validate:"omitempty,max=40"`
	Email               *string `json:"email" validate:"omitempty,email"`
	Size                string  `json:"porte" validate:"required,oneof=MEI ME EPP MEDIO GRANDE OUTROS"`
}

type StatusUpdateRequest struct {
	Status string  `query:"status" validate:"required,oneof=nao_contatado prospectado contatado parceiro"`
	Notes  *string `query:"notas" validate:"omitempty,max=2000"`
}

type CompanyFilter struct {
	Sector       string `query:"setor"`
	ActivityCode string `query:"cnae"`
	Size         string `query:"porte" validate:"omitempty,oneof=MEI ME EPP MEDIO GRANDE OUTROS"`
	Status       string `query:"status" validate:"omitempty,oneof=nao_contatado prospectado contatado parceiro"`
	From         string `query:"data_inicio" validate:"omitempty,isodate"`
	To           string `query:"data_fim" validate:"omitempty,isodate"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

type CompanyListResponse struct {
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	Companies []*entity.Company `json:"empresas"`
}

type CompanyMutationResponse struct {
	Message string          `json:"message"`
	Company *entity.Company `json:"empresa"`
}

type ActivityListResponse struct {
	Activities any `json:"cnaes"`
	Total      int `json:"total"`
}

type SectorPartnershipSummary struct {
	Total      int `json:"total"`
	Partners   int `json:"parceiros"`
	Prospected int `json:"prospectados"`
	Contacted  int `json:"contatados"`
}
