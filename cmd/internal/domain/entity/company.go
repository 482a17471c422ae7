package entity

type CompanySize string

const (
	SizeMEI    CompanySize = "MEI"
	SizeME     CompanySize = "ME"
	SizeEPP    CompanySize = "EPP"
	SizeMedium CompanySize = "MEDIO"
	SizeLarge  CompanySize = "GRANDE"
	SizeOther  CompanySize = "OUTROS"
)

type PartnershipStatus string

const (
	StatusNotContacted PartnershipStatus = "nao_contatado"
	StatusProspected   PartnershipStatus = "prospectado"
	StatusContacted    PartnershipStatus = "contatado"
	StatusPartner      PartnershipStatus = "parceiro"
)

// DefaultSector is the bucket for companies whose activity code is not strategic.
const DefaultSector = "Outros"

// Company is a candidate partner (or competitor) tracked by the dashboard.
//
// CNPJ is kept formatted (XX.XXX.XXX/XXXX-XX), CNPJDigits holds the
// digits-only form and is unique when set. IDs are snowflakes and travel as
// JSON strings so browsers do not round them.
type Company struct {
	ID                  int64             `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	CNPJ                string            `gorm:"not null" json:"cnpj"`
	CNPJDigits          string            `gorm:"column:cnpj_digits;uniqueIndex:idx_companies_cnpj_unique,where:cnpj_digits <> ''" json:"-"`
	LegalName           string            `gorm:"not null" json:"razao_social"`
	TradeName           string            `json:"nome_fantasia"`
	ActivityCode        string            `gorm:"index" json:"cnae_principal"`
	ActivityDescription string            `json:"cnae_descricao"`
	RegistrationDate    string            `json:"data_abertura"`
	City                string            `json:"municipio"`
	Neighborhood        string            `json:"bairro"`
	Address             string            `json:"endereco"`
	Phone               string            `json:"telefone"`
	Email               string            `json:"email"`
	Size                CompanySize       `gorm:"not null;default:OUTROS" json:"porte"`
	Sector              string            `gorm:"index;not null" json:"setor_hotel"`
	PartnershipStatus   PartnershipStatus `gorm:"not null;default:nao_contatado" json:"status_parceria"`
	Notes               *string           `json:"notas"`
}

// SectorOrDefault never returns an empty sector, every company lands in exactly one bucket.
func (c *Company) SectorOrDefault() string {
	if c.Sector == "" {
		return DefaultSector
	}
	return c.Sector
}

// DedupeByCNPJ keeps the first company for each digits-only CNPJ and returns
// the later ones separately. Companies without a CNPJ are always kept.
func DedupeByCNPJ(companies []*Company) (kept, dropped []*Company) {
	seen := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		if c.CNPJDigits != "" {
			if _, ok := seen[c.CNPJDigits]; ok {
				dropped = append(dropped, c)
				continue
			}
			seen[c.CNPJDigits] = struct{}{}
		}
		kept = append(kept, c)
	}
	return kept, dropped
}

// CompanyStatistics counts a company collection by sector, size and status.
type CompanyStatistics struct {
	Total    int            `json:"total_empresas"`
	BySector map[string]int `json:"por_setor"`
	BySize   map[string]int `json:"por_porte"`
	ByStatus map[string]int `json:"por_status"`
}

func ComputeStatistics(companies []*Company) CompanyStatistics {
	stats := CompanyStatistics{
		Total:    len(companies),
		BySector: map[string]int{},
		BySize:   map[string]int{},
		ByStatus: map[string]int{},
	}
	for _, c := range companies {
		size := c.Size
		if size == "" {
			size = SizeOther
		}
		status := c.PartnershipStatus
		if status == "" {
			status = StatusNotContacted
		}
		stats.BySector[c.SectorOrDefault()]++
		stats.BySize[string(size)]++
		stats.ByStatus[string(status)]++
	}
	return stats
}

type RegistryActivity struct {
	Code        string `json:"codigo"`
	Description string `json:"descricao"`
}

type RegistryPartner struct {
	Name string `json:"nome"`
	Role string `json:"qualificacao"`
}

// RegistryRecord caches registry lookups, positive and negative.
type RegistryRecord struct {
	CNPJ                string `gorm:"primaryKey;column:cnpj"`
	FormattedCNPJ       string
	LegalName           string
	TradeName           string
	Status              string
	Type                string
	OpeningDate         string
	LegalNature         string
	SizeText            string
	ShareCapital        string
	ActivityCode        string
	ActivityDescription string
	SecondaryActivities []RegistryActivity `gorm:"serializer:json"`
	Partners            []RegistryPartner  `gorm:"serializer:json"`
	Street              string
	Number              string
	Complement          string
	Neighborhood        string
	City                string
	State               string
	ZipCode             string
	Phone               string
	Email               string
	LastUpdate          string

	// Found controls the negative caching strategy for registry lookups:
	//
	// - true: The CNPJ is valid and the company data is cached.
	//
	// - false: The CNPJ was queried, the registry answered "not found", and it is cached as such.
	Found    bool
	CachedAt int64 `gorm:"index"`
}
