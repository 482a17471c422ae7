package service

import (
	"context"
	"net/http"
	"strings"

	"hotelrp/cmd/internal/classifier"
	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"
	"hotelrp/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// CompanyStore is the record store behind the company endpoints. Load and
// Save move whole snapshots; the remaining methods are per-record helpers.
// Finders return nil, nil when nothing matches.
type CompanyStore interface {
	Load(ctx context.Context) ([]*entity.Company, error)
	Save(ctx context.Context, companies []*entity.Company) error
	FindByID(ctx context.Context, id int64) (*entity.Company, error)
	FindByCNPJ(ctx context.Context, digits string) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type DefaultCompanyService struct {
	Store      CompanyStore
	Classifier *classifier.Classifier
	Validate   *validator.Validate
}

func NewCompanyService(store CompanyStore, cls *classifier.Classifier, validate *validator.Validate) *DefaultCompanyService {
	return &DefaultCompanyService{
		Store:      store,
		Classifier: cls,
		Validate:   validate,
	}
}

func (s *DefaultCompanyService) load(ctx context.Context) ([]*entity.Company, apierror.ErrorResponse) {
	companies, err := s.Store.Load(ctx)
	if err != nil {
		log.Errorf("failed to load companies: %v", err)
		return nil, apierror.InternalServerError
	}
	return companies, nil
}

func (s *DefaultCompanyService) List(ctx context.Context, filter *contract.CompanyFilter) (*contract.CompanyListResponse, apierror.ErrorResponse) {
	utils.Sanitize(filter)
	if valerr := s.Validate.Struct(filter); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if filter.Limit == 0 {
		filter.Limit = contract.DefaultPageLimit
	}
	if filter.Limit < 1 || filter.Limit > contract.MaxPageLimit {
		return nil, apierror.NewInvalidParamRangeError("limit", 1, contract.MaxPageLimit)
	}
	if filter.Offset < 0 {
		return nil, apierror.NewSimple(http.StatusBadRequest, "Parameter 'offset' must not be negative")
	}

	companies, apierr := s.load(ctx)
	if apierr != nil {
		return nil, apierr
	}

	matched := make([]*entity.Company, 0, len(companies))
	for _, c := range companies {
		if matchesFilter(c, filter) {
			matched = append(matched, c)
		}
	}

	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)

	return &contract.CompanyListResponse{
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
		Companies: matched[start:end],
	}, nil
}

func matchesFilter(c *entity.Company, f *contract.CompanyFilter) bool {
	if f.Sector != "" && c.SectorOrDefault() != f.Sector {
		return false
	}
	if f.ActivityCode != "" && !strings.HasPrefix(c.ActivityCode, f.ActivityCode) {
		return false
	}
	if f.Size != "" && string(c.Size) != f.Size {
		return false
	}
	if f.Status != "" && string(c.PartnershipStatus) != f.Status {
		return false
	}

	// ISO dates compare correctly as strings. A company without a date
	// fails any date bound.
	if f.From != "" && (c.RegistrationDate == "" || c.RegistrationDate < f.From) {
		return false
	}
	if f.To != "" && (c.RegistrationDate == "" || c.RegistrationDate > f.To) {
		return false
	}
	return true
}

func (s *DefaultCompanyService) Statistics(ctx context.Context) (*entity.CompanyStatistics, apierror.ErrorResponse) {
	companies, apierr := s.load(ctx)
	if apierr != nil {
		return nil, apierr
	}

	stats := entity.ComputeStatistics(companies)
	return &stats, nil
}

func (s *DefaultCompanyService) Sectors() map[string][]string {
	return s.Classifier.Sectors()
}

func (s *DefaultCompanyService) Activities() *contract.ActivityListResponse {
	return &contract.ActivityListResponse{
		Activities: s.Classifier.Activities(),
		Total:      s.Classifier.Len(),
	}
}

// SectorSummary counts companies per sector and partnership stage.
func (s *DefaultCompanyService) SectorSummary(ctx context.Context) (map[string]*contract.SectorPartnershipSummary, apierror.ErrorResponse) {
	companies, apierr := s.load(ctx)
	if apierr != nil {
		return nil, apierr
	}

	summary := make(map[string]*contract.SectorPartnershipSummary)
	for _, c := range companies {
		sector := c.SectorOrDefault()
		entry, ok := summary[sector]
		if !ok {
			entry = &contract.SectorPartnershipSummary{}
			summary[sector] = entry
		}

		entry.Total++
		switch c.PartnershipStatus {
		case entity.StatusPartner:
			entry.Partners++
		case entity.StatusProspected:
			entry.Prospected++
		case entity.StatusContacted:
			entry.Contacted++
		}
	}
	return summary, nil
}

func (s *DefaultCompanyService) GetByID(ctx context.Context, id int64) (*entity.Company, apierror.ErrorResponse) {
	company, err := s.Store.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch company %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if company == nil {
		return nil, apierror.CompanyNotFoundError
	}
	return company, nil
}

func (s *DefaultCompanyService) Create(ctx context.Context, req *contract.CompanyRequest) (*contract.CompanyMutationResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	digits := utils.OnlyDigits(req.CNPJ)
	existing, err := s.Store.FindByCNPJ(ctx, digits)
	if err != nil {
		log.Errorf("failed to check cnpj %s: %v", digits, err)
		return nil, apierror.InternalServerError
	}
	if existing != nil {
		return nil, apierror.DuplicateCNPJError
	}

	cls := s.Classifier.ClassifyOrDefault(req.ActivityCode)
	company := &entity.Company{
		ID:                  uid.Generate(),
		CNPJ:                utils.FormatCNPJ(digits),
		CNPJDigits:          digits,
		LegalName:           req.LegalName,
		TradeName:           deref(req.TradeName),
		ActivityCode:        req.ActivityCode,
		ActivityDescription: req.ActivityDescription,
		RegistrationDate:    req.RegistrationDate,
		City:                req.City,
		Neighborhood:        deref(req.Neighborhood),
		Address:             deref(req.Address),
		Phone:               deref(req.Phone),
		Email:               deref(req.Email),
		Size:                entity.CompanySize(req.Size),
		Sector:              cls.Sector,
		PartnershipStatus:   entity.StatusNotContacted,
	}

	if err := s.Store.Create(ctx, company); err != nil {
		log.Errorf("failed to create company %s: %v", company.CNPJ, err)
		return nil, apierror.InternalServerError
	}

	return &contract.CompanyMutationResponse{
		Message: "Empresa criada com sucesso",
		Company: company,
	}, nil
}

// UpdateStatus moves a company to another partnership stage. Empty notes keep
// the previous ones.
func (s *DefaultCompanyService) UpdateStatus(ctx context.Context, id int64, req *contract.StatusUpdateRequest) (*contract.CompanyMutationResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	company, apierr := s.GetByID(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	company.PartnershipStatus = entity.PartnershipStatus(req.Status)
	if req.Notes != nil && *req.Notes != "" {
		company.Notes = req.Notes
	}

	if err := s.Store.Update(ctx, company); err != nil {
		log.Errorf("failed to update company %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	return &contract.CompanyMutationResponse{
		Message: "Status atualizado",
		Company: company,
	}, nil
}

func (s *DefaultCompanyService) Delete(ctx context.Context, id int64) apierror.ErrorResponse {
	deleted, err := s.Store.Delete(ctx, id)
	if err != nil {
		log.Errorf("failed to delete company %d: %v", id, err)
		return apierror.InternalServerError
	}

	if !deleted {
		return apierror.CompanyNotFoundError
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
