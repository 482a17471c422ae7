package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotelrp/cmd/internal/classifier"
	"hotelrp/cmd/internal/contract"
	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/infrastructure/minhareceita"
	"hotelrp/cmd/internal/infrastructure/receitaws"
	"hotelrp/cmd/internal/infrastructure/registry"
	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"
	"hotelrp/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	MaxBatchSize = 50

	// ProbeCNPJ belongs to the Ribeirão Pires city hall.
	ProbeCNPJ    = "46523239000147"
	probeTimeout = 10 * time.Second
)

var ErrUnknownProvider = errors.New("unknown registry provider")

var providerNames = map[string]string{
	registry.ProviderReceitaWS:    "ReceitaWS",
	registry.ProviderMinhaReceita: "Minha Receita",
}

// NewRegistryClient builds the lookup client for cfg.Provider.
func NewRegistryClient(cfg registry.Config) (registry.Client, error) {
	switch cfg.Provider {
	case "", registry.ProviderReceitaWS:
		return receitaws.NewClient(cfg), nil
	case registry.ProviderMinhaReceita:
		return minhareceita.NewClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

type RegistryCache interface {
	FindByCNPJ(cnpj string) (*entity.RegistryRecord, error)
	Save(record *entity.RegistryRecord) error
}

type DefaultRegistryService struct {
	Classifier *classifier.Classifier
	Cache      RegistryCache
	Companies  CompanyStore
	Validate   *validator.Validate

	mu     sync.RWMutex
	config registry.Config
	client registry.Client

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRegistryService(
	cfg registry.Config,
	cls *classifier.Classifier,
	cache RegistryCache,
	companies CompanyStore,
	validate *validator.Validate,
) (*DefaultRegistryService, error) {
	cfg = cfg.WithDefaults()
	client, err := NewRegistryClient(cfg)
	if err != nil {
		return nil, err
	}

	return &DefaultRegistryService{
		Classifier: cls,
		Cache:      cache,
		Companies:  companies,
		Validate:   validate,
		config:     cfg,
		client:     client,
		now:        time.Now,
		sleep:      sleepCtx,
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// current returns the active configuration and the client built from it as
// one pair, so a concurrent reconfiguration never mixes the two.
func (r *DefaultRegistryService) current() (registry.Config, registry.Client) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config, r.client
}

func (r *DefaultRegistryService) Info() map[string]any {
	cfg, _ := r.current()
	return map[string]any{
		"api":          providerName(cfg.Provider),
		"provedor":     cfg.Provider,
		"documentacao": "https://developers.receitaws.com.br",
		"endpoint":     "GET " + cfg.BaseURL + "/{cnpj}",
		"provedores":   []string{registry.ProviderReceitaWS, registry.ProviderMinhaReceita},
		"planos": map[string]any{
			registry.PlanFree: map[string]string{
				"limite":            "3 consultas por minuto",
				"autenticacao":      "Não requer",
				"delay_recomendado": "20 segundos entre consultas",
			},
			registry.PlanCommercial: map[string]string{
				"limite":            "Ilimitado",
				"autenticacao":      "API Key no header",
				"delay_recomendado": "Nenhum",
			},
		},
		"campos_retornados": []string{
			"cnpj", "tipo", "abertura", "nome", "fantasia", "porte",
			"natureza_juridica", "situacao", "capital_social",
			"atividade_principal", "atividades_secundarias", "qsa",
			"logradouro", "numero", "bairro", "municipio", "uf", "cep",
			"telefone", "email", "ultima_atualizacao",
		},
	}
}

func (r *DefaultRegistryService) GetConfig() *contract.ConfigResponse {
	cfg, _ := r.current()
	return toConfigResponse(cfg)
}

// UpdateConfig replaces the active configuration. Unset fields take their
// defaults, except the provider which is kept when omitted.
func (r *DefaultRegistryService) UpdateConfig(req *contract.ConfigRequest) (*contract.ConfigUpdateResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := r.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	old, _ := r.current()

	cfg := registry.Config{
		Provider:   req.Provider,
		BaseURL:    req.BaseURL,
		Plan:       req.Plan,
		Timeout:    old.Timeout,
		MaxRetries: old.MaxRetries,
	}
	if cfg.Provider == "" {
		cfg.Provider = old.Provider
	}
	if req.APIKey != nil {
		cfg.APIKey = *req.APIKey
	}
	cfg = cfg.WithDefaults()
	if req.Delay != nil {
		cfg.Delay = time.Duration(*req.Delay) * time.Second
	}

	client, err := NewRegistryClient(cfg)
	if err != nil {
		return nil, apierror.UnknownProviderError
	}

	r.mu.Lock()
	r.config = cfg
	r.client = client
	r.mu.Unlock()

	log.Infof("registry reconfigured: provider=%s plan=%s delay=%s", cfg.Provider, cfg.Plan, cfg.Delay)
	return &contract.ConfigUpdateResponse{
		Message: "Configuração atualizada com sucesso",
		Config:  *toConfigResponse(cfg),
	}, nil
}

// Lookup resolves a CNPJ, classifies it and, when save is set and the
// activity is strategic, adds it to the company store.
func (r *DefaultRegistryService) Lookup(ctx context.Context, cnpj string, save bool) (*contract.LookupResponse, apierror.ErrorResponse) {
	digits := utils.OnlyDigits(cnpj)
	if !utils.IsCNPJValid(digits) {
		return nil, apierror.InvalidCNPJError
	}

	cfg, client := r.current()
	record, cached, apierr := r.findCompany(ctx, client, digits)
	if apierr != nil {
		return nil, apierr
	}

	resp := r.toLookupResponse(record, cached)
	if save && resp.Strategic {
		saved, err := r.saveCompany(ctx, cfg, digits, resp)
		if err != nil {
			log.Errorf("failed to save company %s from registry: %v", digits, err)
			return nil, apierror.InternalServerError
		}
		resp.Saved = saved
	}
	return resp, nil
}

// findCompany tries the cache first and falls back to the registry.
// It returns the record, a boolean (true = cached, false = API fetch) and a possible error response.
func (r *DefaultRegistryService) findCompany(ctx context.Context, client registry.Client, cnpj string) (*entity.RegistryRecord, bool, apierror.ErrorResponse) {
	cached, err := r.Cache.FindByCNPJ(cnpj)
	if err != nil {
		log.Errorf("failed to find registry cache for cnpj %s: %v", cnpj, err)
		return nil, false, apierror.InternalServerError
	}

	if cached != nil {
		if cached.Found {
			return cached, true, nil
		}
		return nil, false, apierror.CNPJNotFoundError
	}

	company, err := client.Lookup(ctx, cnpj)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			r.cacheNegativeResult(cnpj)
			return nil, false, apierror.CNPJNotFoundError
		}
		log.Errorf("failed to fetch company by cnpj %s: %v", cnpj, err)
		return nil, false, registryError(err)
	}

	record := toRegistryRecord(cnpj, company)
	record.Found = true
	record.CachedAt = utils.NowUTC()

	if err := r.Cache.Save(record); err != nil {
		// The lookup itself succeeded, only the cache write failed.
		log.Errorf("failed to save registry cache for cnpj %s: %v", cnpj, err)
	}
	return record, false, nil
}

func (r *DefaultRegistryService) cacheNegativeResult(cnpj string) {
	err := r.Cache.Save(&entity.RegistryRecord{
		CNPJ:     cnpj,
		Found:    false,
		CachedAt: utils.NowUTC(),
	})
	if err != nil {
		log.Warnf("failed to cache negative lookup for cnpj %s: %v", cnpj, err)
	}
}

func (r *DefaultRegistryService) saveCompany(ctx context.Context, cfg registry.Config, digits string, resp *contract.LookupResponse) (bool, error) {
	existing, err := r.Companies.FindByCNPJ(ctx, digits)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	address := resp.Address.Street
	if resp.Address.Number != "" {
		address += ", " + resp.Address.Number
	}
	notes := fmt.Sprintf("Importado via %s em %s", providerName(cfg.Provider), r.now().Format("02/01/2006"))

	company := &entity.Company{
		ID:                  uid.Generate(),
		CNPJ:                utils.FormatCNPJ(digits),
		CNPJDigits:          digits,
		LegalName:           resp.LegalName,
		TradeName:           resp.TradeName,
		ActivityCode:        resp.ActivityCode,
		ActivityDescription: resp.ActivityDescription,
		RegistrationDate:    resp.OpeningDate,
		City:                resp.Address.City,
		Neighborhood:        resp.Address.Neighborhood,
		Address:             address,
		Phone:               resp.Contact.Phone,
		Email:               resp.Contact.Email,
		Size:                entity.CompanySize(resp.Size),
		Sector:              resp.Sector,
		PartnershipStatus:   entity.StatusNotContacted,
		Notes:               &notes,
	}
	if err := r.Companies.Create(ctx, company); err != nil {
		return false, err
	}

	log.Infof("company %s imported from registry into sector %s", company.CNPJ, company.Sector)
	return true, nil
}

// Batch looks every CNPJ up in order, collecting per-item failures instead of
// aborting. The configured delay is honored between upstream calls.
func (r *DefaultRegistryService) Batch(ctx context.Context, cnpjs []string, saveStrategic bool) (*contract.BatchResponse, apierror.ErrorResponse) {
	if len(cnpjs) == 0 {
		return nil, apierror.EmptyBatchError
	}
	if len(cnpjs) > MaxBatchSize {
		return nil, apierror.BatchTooLargeError
	}

	resp := &contract.BatchResponse{
		Total:   len(cnpjs),
		Results: make([]*contract.LookupResponse, 0, len(cnpjs)),
		Errors:  make([]contract.BatchError, 0),
	}

	for i, cnpj := range cnpjs {
		result, apierr := r.Lookup(ctx, cnpj, saveStrategic)
		if apierr != nil {
			resp.Errors = append(resp.Errors, contract.BatchError{CNPJ: cnpj, Error: errorMessage(apierr)})
		} else {
			resp.Results = append(resp.Results, result)
			if result.Strategic {
				resp.Strategic++
			}
			if result.InRibeiraoPires {
				resp.RibeiraoPires++
			}
		}

		cached := apierr == nil && result.Cached
		cfg, _ := r.current()
		if i < len(cnpjs)-1 && cfg.Delay > 0 && !cached {
			if err := r.sleep(ctx, cfg.Delay); err != nil {
				for _, rest := range cnpjs[i+1:] {
					resp.Errors = append(resp.Errors, contract.BatchError{CNPJ: rest, Error: "consulta cancelada"})
				}
				break
			}
		}
	}

	resp.Succeeded = len(resp.Results)
	resp.Failed = len(resp.Errors)
	return resp, nil
}

// Status probes the registry with a known CNPJ, bypassing the cache.
func (r *DefaultRegistryService) Status(ctx context.Context) *contract.StatusResponse {
	cfg, client := r.current()
	name := providerName(cfg.Provider)

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	company, err := client.Lookup(ctx, ProbeCNPJ)
	switch {
	case err == nil:
		return &contract.StatusResponse{
			Status: "online",
			API:    name,
			Plan:   cfg.Plan,
			Probe: &contract.ProbeResult{
				CNPJ: company.FormattedCNPJ,
				Name: company.LegalName,
				City: company.City,
			},
		}
	case errors.Is(err, registry.ErrRateLimited):
		return &contract.StatusResponse{
			Status:  "rate_limited",
			API:     name,
			Message: "Limite de requisições atingido. Aguarde alguns minutos.",
		}
	case errors.Is(err, registry.ErrUnavailable), errors.Is(err, registry.ErrTimeout):
		return &contract.StatusResponse{Status: "offline", API: name, Message: err.Error()}
	default:
		return &contract.StatusResponse{Status: "erro", API: name, Message: err.Error()}
	}
}

func (r *DefaultRegistryService) StrategicCodes() *contract.StrategicCodesResponse {
	return &contract.StrategicCodesResponse{
		Total:      r.Classifier.Len(),
		Activities: r.Classifier.Activities(),
		Sectors:    r.Classifier.Sectors(),
		APICodes:   r.Classifier.APICodes(),
		Hint:       "Ao consultar CNPJs, empresas com estes CNAEs serão marcadas como 'eh_estrategico: true'",
	}
}

func (r *DefaultRegistryService) toLookupResponse(rec *entity.RegistryRecord, cached bool) *contract.LookupResponse {
	cls := r.Classifier.ClassifyOrDefault(rec.ActivityCode)

	formatted := rec.FormattedCNPJ
	if formatted == "" {
		formatted = utils.FormatCNPJ(rec.CNPJ)
	}

	secondary := make([]contract.ActivityCode, len(rec.SecondaryActivities))
	for i, a := range rec.SecondaryActivities {
		secondary[i] = contract.ActivityCode{Code: a.Code, Description: a.Description}
	}
	partners := make([]contract.RegistryPartner, len(rec.Partners))
	for i, p := range rec.Partners {
		partners[i] = contract.RegistryPartner{Name: p.Name, Role: p.Role}
	}

	// Providers without their own timestamp report when the record was fetched.
	lastUpdate := rec.LastUpdate
	if lastUpdate == "" && rec.CachedAt > 0 {
		lastUpdate = utils.FormatEpoch(rec.CachedAt)
	}

	return &contract.LookupResponse{
		CNPJ:                formatted,
		LegalName:           rec.LegalName,
		TradeName:           rec.TradeName,
		Status:              rec.Status,
		Type:                rec.Type,
		OpeningDate:         utils.ISODateFromBR(rec.OpeningDate),
		LegalNature:         rec.LegalNature,
		Size:                string(ClassifySize(rec.SizeText)),
		ShareCapital:        rec.ShareCapital,
		ActivityCode:        rec.ActivityCode,
		ActivityDescription: rec.ActivityDescription,
		SecondaryActivities: secondary,
		Address: contract.RegistryAddress{
			Street:       rec.Street,
			Number:       rec.Number,
			Complement:   rec.Complement,
			Neighborhood: rec.Neighborhood,
			City:         rec.City,
			State:        rec.State,
			ZipCode:      rec.ZipCode,
		},
		Contact: contract.RegistryContact{
			Phone: rec.Phone,
			Email: rec.Email,
		},
		Partners:        partners,
		LastUpdate:      lastUpdate,
		Sector:          cls.Sector,
		Relevance:       string(cls.Relevance),
		Impact:          cls.Impact,
		Strategic:       r.Classifier.IsStrategic(rec.ActivityCode),
		InRibeiraoPires: IsRibeiraoPires(rec.City),
		Cached:          cached,
	}
}

// ClassifySize maps the registry's free-text size to a CompanySize.
func ClassifySize(text string) entity.CompanySize {
	upper := strings.ToUpper(text)
	switch {
	case upper == "":
		return entity.SizeOther
	case strings.Contains(upper, "MEI"):
		return entity.SizeMEI
	case strings.Contains(upper, "MICRO EMPRESA"), strings.Contains(upper, "MICROEMPRESA"):
		return entity.SizeME
	case strings.Contains(upper, "PEQUENO PORTE"):
		return entity.SizeEPP
	case strings.Contains(upper, "MEDIO"), strings.Contains(upper, "MÉDIO"):
		return entity.SizeMedium
	case strings.Contains(upper, "GRANDE"):
		return entity.SizeLarge
	default:
		return entity.SizeOther
	}
}

func IsRibeiraoPires(city string) bool {
	upper := strings.ToUpper(city)
	return strings.Contains(upper, "RIBEIRAO PIRES") || strings.Contains(upper, "RIBEIRÃO PIRES")
}

func toRegistryRecord(cnpj string, c *registry.Company) *entity.RegistryRecord {
	secondary := make([]entity.RegistryActivity, len(c.SecondaryActivities))
	for i, a := range c.SecondaryActivities {
		secondary[i] = entity.RegistryActivity{Code: a.Code, Description: a.Description}
	}
	partners := make([]entity.RegistryPartner, len(c.Partners))
	for i, p := range c.Partners {
		partners[i] = entity.RegistryPartner{Name: p.Name, Role: p.Role}
	}

	return &entity.RegistryRecord{
		CNPJ:                cnpj,
		FormattedCNPJ:       c.FormattedCNPJ,
		LegalName:           c.LegalName,
		TradeName:           c.TradeName,
		Status:              c.Status,
		Type:                c.Type,
		OpeningDate:         c.OpeningDate,
		LegalNature:         c.LegalNature,
		SizeText:            c.SizeText,
		ShareCapital:        c.ShareCapital,
		ActivityCode:        c.MainActivity.Code,
		ActivityDescription: c.MainActivity.Description,
		SecondaryActivities: secondary,
		Partners:            partners,
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

func toConfigResponse(cfg registry.Config) *contract.ConfigResponse {
	return &contract.ConfigResponse{
		Provider:         cfg.Provider,
		BaseURL:          cfg.BaseURL,
		Plan:             cfg.Plan,
		APIKeyConfigured: cfg.APIKey != "",
		Delay:            int(cfg.Delay / time.Second),
		Status:           "configurada",
	}
}

func providerName(provider string) string {
	if name, ok := providerNames[provider]; ok {
		return name
	}
	return provider
}

func registryError(err error) apierror.ErrorResponse {
	var se *registry.StatusError
	switch {
	case errors.Is(err, registry.ErrRateLimited):
		return apierror.RegistryRateLimitedError
	case errors.Is(err, registry.ErrUnauthorized):
		return apierror.RegistryUnauthorizedError
	case errors.Is(err, registry.ErrTimeout):
		return apierror.RegistryTimeoutError
	case errors.Is(err, registry.ErrUnavailable):
		return apierror.RegistryUnavailableError
	case errors.As(err, &se):
		return apierror.NewUpstreamError(se.StatusCode)
	default:
		return apierror.InternalServerError
	}
}

func errorMessage(apierr apierror.ErrorResponse) string {
	switch e := apierr.(type) {
	case *apierror.APIError:
		return e.Message
	case *apierror.StructuredError:
		return fmt.Sprintf("%v", e.Errors)
	default:
		return fmt.Sprintf("erro %d", apierr.Code())
	}
}
