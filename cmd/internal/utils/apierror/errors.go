package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"detail"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	MalformedQueryError = NewSimple(400, "Malformed query parameters")
	InternalServerError = NewSimple(500, "Internal server error")
	InvalidIDError      = NewSimple(400, "The provided ID is invalid, IDs are positive integers")
	UnknownExportError  = NewSimple(404, "Arquivo de exportação desconhecido")

	CompanyNotFoundError   = NewSimple(404, "Empresa não encontrada")
	DuplicateCNPJError     = NewSimple(400, "CNPJ já cadastrado")
	EventNotFoundError     = NewSimple(404, "Evento não encontrado")
	HotelNotFoundError     = NewSimple(404, "Hotel não encontrado")
	InvalidCNPJError       = NewSimple(400, "CNPJ inválido. Deve conter 14 dígitos.")
	CNPJNotFoundError      = NewSimple(404, "CNPJ não encontrado na base da Receita Federal")
	BatchTooLargeError     = NewSimple(400, "Máximo de 50 CNPJs por consulta")
	EmptyBatchError        = NewSimple(400, "Informe ao menos um CNPJ")
	UnknownProviderError   = NewSimple(400, "Provedor de consulta desconhecido")
	ExportUnavailableError = NewSimple(503, "Armazenamento de exportações não configurado")

	/*
	 * Registry passthrough
	 */
	RegistryRateLimitedError  = NewSimple(429, "Limite de requisições excedido. Aguarde 1 minuto.")
	RegistryUnauthorizedError = NewSimple(401, "Chave de API inválida para o serviço de consulta")
	RegistryTimeoutError      = NewSimple(504, "Timeout na consulta. Tente novamente.")
	RegistryUnavailableError  = NewSimple(503, "Serviço de consulta indisponível")

	/*
	 * Used for authentication
	 */
	InvalidAuthTokenError = NewSimple(401, "Invalid or missing authentication token")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "cnpj":
			problems[field] = append(problems[field], "Value must be a valid CNPJ")
		case "cnae":
			problems[field] = append(problems[field], "Value must be a CNAE code like 5620-1/02")
		case "isodate":
			problems[field] = append(problems[field], "Value must be a date in YYYY-MM-DD format")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewInvalidParamRangeError(name string, min, max int) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' must be in range of [%d - %d]", name, min, max)
}

func NewUpstreamError(status int) *APIError {
	return NewSimple(http.StatusBadGateway, "Erro na API de consulta: %d", status)
}
