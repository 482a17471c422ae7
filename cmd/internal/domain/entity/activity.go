package entity

type Relevance string

const (
	RelevancePartnership Relevance = "parceria"
	RelevanceCompetition Relevance = "concorrencia"
	RelevanceDemand      Relevance = "demanda"
	RelevanceSupplier    Relevance = "fornecedor"
	RelevanceOther       Relevance = "outros"
)

// StrategicActivity maps a CNAE code to its role in the hotel's business case.
type StrategicActivity struct {
	Code        string    `json:"codigo"`
	Description string    `json:"descricao"`
	Sector      string    `json:"setor_hotel"`
	Relevance   Relevance `json:"relevancia"`
	Impact      string    `json:"impacto"`
}

type ActivityTable struct {
	Activities     []StrategicActivity `json:"cnaes_estrategicos"`
	SectorsSummary map[string][]string `json:"setores_resumo"`
}
