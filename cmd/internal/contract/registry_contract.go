package contract

type ConfigRequest struct {
	Provider string  `json:"provedor" validate:"omitempty,oneof=receitaws minhareceita"`
	BaseURL  string  `json:"base_url" validate:"omitempty,url"`
	APIKey   *string `json:"api_key" validate:"omitempty,max=200"`
	Plan     string  `json:"plano" validate:"omitempty,oneof=gratuito comercial"`
	Delay    *int    `json:"delay_entre_consultas" validate:"omitempty,min=0,max=120"`
}

type ConfigResponse struct {
	Provider         string `json:"provedor"`
	BaseURL          string `json:"base_url"`
	Plan             string `json:"plano"`
	APIKeyConfigured bool   `json:"api_key_configurada"`
	Delay            int    `json:"delay_entre_consultas"`
	Status           string `json:"status"`
}

type ConfigUpdateResponse struct {
	Message string         `json:"message"`
	Config  ConfigResponse `json:"config"`
}

type LookupQuery struct {
	Save bool `query:"salvar"`
}

type BatchQuery struct {
	SaveStrategic *bool `query:"salvar_estrategicos"`
}

type ActivityCode struct {
	Code        string `json:"codigo"`
	Description string `json:"descricao"`
}

type RegistryAddress struct {
	Street       string `json:"logradouro"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"municipio"`
	State        string `json:"uf"`
	ZipCode      string `json:"cep"`
}

type RegistryContact struct {
	Phone string `json:"telefone"`
	Email string `json:"email"`
}

type RegistryPartner struct {
	Name string `json:"nome"`
	Role string `json:"qualificacao"`
}

type LookupResponse struct {
	CNPJ                string            `json:"cnpj"`
	LegalName           string            `json:"razao_social"`
	TradeName           string            `json:"nome_fantasia"`
	Status              string            `json:"situacao"`
	Type                string            `json:"tipo"`
	OpeningDate         string            `json:"data_abertura"`
	LegalNature         string            `json:"natureza_juridica"`
	Size                string            `json:"porte"`
	ShareCapital        string            `json:"capital_social"`
	ActivityCode        string            `json:"cnae_principal"`
	ActivityDescription string            `json:"cnae_principal_descricao"`
	SecondaryActivities []ActivityCode    `json:"cnaes_secundarios"`
	Address             RegistryAddress   `json:"endereco"`
	Contact             RegistryContact   `json:"contato"`
	Partners            []RegistryPartner `json:"quadro_societario"`
	LastUpdate          string            `json:"ultima_atualizacao"`
	Sector              string            `json:"setor_hotel"`
	Relevance           string            `json:"relevancia_hotel"`
	Impact              string            `json:"impacto_hotel"`
	Strategic           bool              `json:"eh_estrategico"`
	InRibeiraoPires     bool              `json:"eh_ribeirao_pires"`
	Cached              bool              `json:"cached"`
	Saved               bool              `json:"salvo"`
}

type BatchError struct {
	CNPJ  string `json:"cnpj"`
	Error string `json:"erro"`
}

type BatchResponse struct {
	Total         int               `json:"total_consultados"`
	Succeeded     int               `json:"sucesso"`
	Failed        int               `json:"erros"`
	Strategic     int               `json:"estrategicos_encontrados"`
	RibeiraoPires int               `json:"ribeirao_pires_encontrados"`
	Results       []*LookupResponse `json:"resultados"`
	Errors        []BatchError      `json:"detalhes_erros"`
}

type ProbeResult struct {
	CNPJ string `json:"cnpj"`
	Name string `json:"nome"`
	City string `json:"municipio"`
}

type StatusResponse struct {
	Status  string       `json:"status"`
	API     string       `json:"api"`
	Plan    string       `json:"plano_configurado,omitempty"`
	Message string       `json:"mensagem,omitempty"`
	Probe   *ProbeResult `json:"teste,omitempty"`
}

type StrategicCodesResponse struct {
	Total      int                 `json:"total"`
	Activities any                 `json:"cnaes"`
	Sectors    map[string][]string `json:"setores"`
	APICodes   []string            `json:"codigos_api"`
	Hint       string              `json:"dica"`
}
