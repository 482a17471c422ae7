package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/utils"
)

// Store keeps the whole company collection in one JSON file
// ({"empresas": [...], "estatisticas": {...}}). Every write rewrites the file.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

type document struct {
	Companies  []record                  `json:"empresas"`
	Statistics *entity.CompanyStatistics `json:"estatisticas,omitempty"`
}

// record accepts both the canonical field names and the legacy aliases
// (nome, setor, cnae, status) found in older snapshots.
type record struct {
	ID                  int64   `json:"id"`
	CNPJ                string  `json:"cnpj"`
	LegalName           string  `json:"razao_social,omitempty"`
	TradeName           string  `json:"nome_fantasia"`
	ActivityCode        string  `json:"cnae_principal,omitempty"`
	ActivityDescription string  `json:"cnae_descricao"`
	RegistrationDate    string  `json:"data_abertura"`
	City                string  `json:"municipio"`
	Neighborhood        string  `json:"bairro"`
	Address             string  `json:"endereco"`
	Phone               string  `json:"telefone"`
	Email               string  `json:"email"`
	Size                string  `json:"porte"`
	Sector              string  `json:"setor_hotel,omitempty"`
	PartnershipStatus   string  `json:"status_parceria,omitempty"`
	Notes               *string `json:"notas"`

	LegacyName   string `json:"nome,omitempty"`
	LegacySector string `json:"setor,omitempty"`
	LegacyCode   string `json:"cnae,omitempty"`
	LegacyStatus string `json:"status,omitempty"`
}

func (r *record) toEntity() *entity.Company {
	c := &entity.Company{
		ID:                  r.ID,
		CNPJ:                r.CNPJ,
		CNPJDigits:          utils.OnlyDigits(r.CNPJ),
		LegalName:           firstNonEmpty(r.LegalName, r.LegacyName),
		TradeName:           r.TradeName,
		ActivityCode:        firstNonEmpty(r.ActivityCode, r.LegacyCode),
		ActivityDescription: r.ActivityDescription,
		RegistrationDate:    r.RegistrationDate,
		City:                r.City,
		Neighborhood:        r.Neighborhood,
		Address:             r.Address,
		Phone:               r.Phone,
		Email:               r.Email,
		Size:                entity.CompanySize(r.Size),
		Sector:              firstNonEmpty(r.Sector, r.LegacySector),
		PartnershipStatus:   entity.PartnershipStatus(firstNonEmpty(r.PartnershipStatus, r.LegacyStatus)),
		Notes:               r.Notes,
	}
	if c.Size == "" {
		c.Size = entity.SizeOther
	}
	if c.PartnershipStatus == "" {
		c.PartnershipStatus = entity.StatusNotContacted
	}
	return c
}

func fromEntity(c *entity.Company) record {
	return record{
		ID:                  c.ID,
		CNPJ:                c.CNPJ,
		LegalName:           c.LegalName,
		TradeName:           c.TradeName,
		ActivityCode:        c.ActivityCode,
		ActivityDescription: c.ActivityDescription,
		RegistrationDate:    c.RegistrationDate,
		City:                c.City,
		Neighborhood:        c.Neighborhood,
		Address:             c.Address,
		Phone:               c.Phone,
		Email:               c.Email,
		Size:                string(c.Size),
		Sector:              c.Sector,
		PartnershipStatus:   string(c.PartnershipStatus),
		Notes:               c.Notes,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Load reads the file. A missing file is an empty collection.
func (s *Store) Load(_ context.Context) ([]*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]*entity.Company, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*entity.Company{}, nil
	}
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Decode parses a snapshot document into companies, resolving legacy aliases.
func Decode(data []byte) ([]*entity.Company, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding company snapshot: %w", err)
	}

	companies := make([]*entity.Company, 0, len(doc.Companies))
	for i := range doc.Companies {
		companies = append(companies, doc.Companies[i].toEntity())
	}
	return companies, nil
}

// Save replaces the file contents with companies.
func (s *Store) Save(_ context.Context, companies []*entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(companies)
}

func (s *Store) save(companies []*entity.Company) error {
	stats := entity.ComputeStatistics(companies)
	doc := document{
		Companies:  make([]record, 0, len(companies)),
		Statistics: &stats,
	}
	for _, c := range companies {
		doc.Companies = append(doc.Companies, fromEntity(c))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	// write to a sibling file first so a crash never leaves a truncated snapshot
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) FindByID(_ context.Context, id int64) (*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Store) FindByCNPJ(_ context.Context, digits string) (*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if c.CNPJDigits != "" && c.CNPJDigits == digits {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Store) Create(_ context.Context, company *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(companies, company))
}

func (s *Store) Update(_ context.Context, company *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.load()
	if err != nil {
		return err
	}
	for i, c := range companies {
		if c.ID == company.ID {
			companies[i] = company
			return s.save(companies)
		}
	}
	return s.save(append(companies, company))
}

func (s *Store) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.load()
	if err != nil {
		return false, err
	}
	for i, c := range companies {
		if c.ID == id {
			return true, s.save(append(companies[:i], companies[i+1:]...))
		}
	}
	return false, nil
}
