package directory

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrUpstreamFetch = errors.New("error fetching employee report")
	ErrEmptyResult   = errors.New("query matched no results")
	ErrNotLoaded     = errors.New("employee directory not loaded")
)

// DirectoryError é um erro com o código de API correspondente
type DirectoryError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *DirectoryError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

func NewDirectoryError(err error, code string, details string) *DirectoryError {
	return &DirectoryError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
