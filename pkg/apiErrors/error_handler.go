package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos aos clientes
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_001" // Token inválido ou ausente
	ErrInsufficientPrivilege = "AUTH_002" // Privilégios insuficientes

	// Erros de recurso
	ErrEmployeeNotFound   = "DIR_001" // Funcionário não encontrado
	ErrDepartmentNotFound = "DIR_002" // Departamento não encontrado
	ErrEmptyResult        = "DIR_003" // Consulta sem resultados

	// Erros de validação
	ErrInvalidFormat = "VAL_001" // Formato de dados inválido
	ErrInvalidRoute  = "VAL_002" // Rota inexistente ou malformada

	// Erros do servidor
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Falha ao consultar a plataforma de RH
	ErrStateStore      = "SRV_003" // Falha no armazenamento do estado do cache
)

var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrEmployeeNotFound:      http.StatusNotFound,
	ErrDepartmentNotFound:    http.StatusNotFound,
	ErrEmptyResult:           http.StatusNotFound,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInvalidRoute:          http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrExternalService:       http.StatusInternalServerError,
	ErrStateStore:            http.StatusInternalServerError,
}

// APIError representa o corpo padronizado de erro: {error, status, code}
type APIError struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP de um código de erro, 500 para códigos desconhecidos
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status := StatusFor(code)

	apiErr := APIError{
		Error:   message,
		Status:  status,
		Code:    code,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiErr)
}
