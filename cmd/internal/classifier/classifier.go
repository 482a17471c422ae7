package classifier

import (
	"hotelrp/cmd/internal/domain/entity"
	"strings"
)

const (
	UnclassifiedDescription = "Não classificado"
	UnclassifiedSector      = entity.DefaultSector
)

// Classification is the view of a strategic activity handed out to callers.
// Callers receive copies, the table itself is never exposed for mutation.
type Classification struct {
	Code        string           `json:"codigo"`
	Description string           `json:"descricao"`
	Sector      string           `json:"setor_hotel"`
	Relevance   entity.Relevance `json:"relevancia"`
	Impact      string           `json:"impacto"`
}

// Classifier resolves CNAE activity codes against the strategic activity table.
// It is built once at startup and is read-only afterwards, so it is safe for
// concurrent use.
type Classifier struct {
	byCode  map[string]int
	entries []Classification
	sectors map[string][]string
}

func New(table *entity.ActivityTable) *Classifier {
	c := &Classifier{
		byCode:  make(map[string]int),
		sectors: make(map[string][]string),
	}
	if table == nil {
		return c
	}

	for _, a := range table.Activities {
		cls := Classification{
			Code:        a.Code,
			Description: a.Description,
			Sector:      a.Sector,
			Relevance:   a.Relevance,
			Impact:      a.Impact,
		}

		// Later duplicates overwrite the entry but keep the first position
		if idx, ok := c.byCode[a.Code]; ok {
			c.entries[idx] = cls
			continue
		}
		c.byCode[a.Code] = len(c.entries)
		c.entries = append(c.entries, cls)
	}

	for sector, codes := range table.SectorsSummary {
		c.sectors[sector] = append([]string(nil), codes...)
	}
	return c
}

// Normalize strips dots and surrounding whitespace. Dashes and slashes stay,
// table keys are in the "5620-1/02" form.
func Normalize(code string) string {
	return strings.TrimSpace(strings.ReplaceAll(code, ".", ""))
}

// Classify looks up code after normalization. Matching is exact.
func (c *Classifier) Classify(code string) (*Classification, bool) {
	idx, ok := c.byCode[Normalize(code)]
	if !ok {
		return nil, false
	}
	cls := c.entries[idx]
	return &cls, true
}

// ClassifyOrDefault never fails: unknown codes get the "Outros" bucket.
func (c *Classifier) ClassifyOrDefault(code string) Classification {
	if cls, ok := c.Classify(code); ok {
		return *cls
	}
	return Classification{
		Code:        code,
		Description: UnclassifiedDescription,
		Sector:      UnclassifiedSector,
		Relevance:   entity.RelevanceOther,
		Impact:      "",
	}
}

func (c *Classifier) IsStrategic(code string) bool {
	_, ok := c.byCode[Normalize(code)]
	return ok
}

func (c *Classifier) SectorFor(code string) (string, bool) {
	cls, ok := c.Classify(code)
	if !ok {
		return "", false
	}
	return cls.Sector, true
}

func (c *Classifier) RelevanceFor(code string) (entity.Relevance, bool) {
	cls, ok := c.Classify(code)
	if !ok {
		return "", false
	}
	return cls.Relevance, true
}

func (c *Classifier) ListBySector(sector string) []Classification {
	return c.filter(func(cls *Classification) bool {
		return cls.Sector == sector
	})
}

func (c *Classifier) ListByRelevance(relevance entity.Relevance) []Classification {
	return c.filter(func(cls *Classification) bool {
		return cls.Relevance == relevance
	})
}

func (c *Classifier) filter(keep func(*Classification) bool) []Classification {
	out := make([]Classification, 0)
	for i := range c.entries {
		if keep(&c.entries[i]) {
			out = append(out, c.entries[i])
		}
	}
	return out
}

// Codes returns every strategic code in table order.
func (c *Classifier) Codes() []string {
	codes := make([]string, len(c.entries))
	for i, e := range c.entries {
		codes[i] = e.Code
	}
	return codes
}

// APICodes returns the codes with '-' and '/' removed, the shape registry
// searches expect ("5620102").
func (c *Classifier) APICodes() []string {
	codes := make([]string, len(c.entries))
	for i, e := range c.entries {
		codes[i] = strings.NewReplacer("-", "", "/", "").Replace(e.Code)
	}
	return codes
}

func (c *Classifier) Activities() []Classification {
	return append([]Classification(nil), c.entries...)
}

// Sectors returns the sector summary (sector name to codes).
func (c *Classifier) Sectors() map[string][]string {
	out := make(map[string][]string, len(c.sectors))
	for k, v := range c.sectors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (c *Classifier) Len() int {
	return len(c.entries)
}
