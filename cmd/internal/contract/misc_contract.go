package contract

type HealthResponse struct {
	Status string `json:"status"`
}

type ProjectInfo struct {
	Description     string   `json:"descricao"`
	Location        string   `json:"localizacao"`
	Differentiators []string `json:"diferenciais"`
}

type RootResponse struct {
	Name          string            `json:"nome"`
	Version       string            `json:"versao"`
	Status        string            `json:"status"`
	Documentation string            `json:"documentacao"`
	Endpoints     map[string]string `json:"endpoints"`
	Project       ProjectInfo       `json:"projeto"`
}

type KeyIndicators struct {
	VisitorsPerYear int    `json:"visitantes_ano"`
	EventsPerYear   int    `json:"eventos_ano"`
	CurrentBeds     int    `json:"leitos_atuais"`
	MarketGap       int    `json:"gap_mercado"`
	BusinessGrowth  string `json:"crescimento_empresarial"`
}

type SummaryResponse struct {
	Project        string        `json:"projeto"`
	ViabilityScore float64       `json:"score_viabilidade"`
	Indicators     KeyIndicators `json:"indicadores_chave"`
	Scenarios      any           `json:"cenarios_projecao"`
	Conclusion     string        `json:"conclusao"`
	NextSteps      []string      `json:"proximos_passos"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PublishResponse struct {
	File string `json:"arquivo"`
	Key  string `json:"chave"`
}
