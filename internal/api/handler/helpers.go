package handler

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
	"github.com/vfg2006/people-directory-api/pkg/apiErrors"
	"github.com/vfg2006/people-directory-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: failed to encode response")
	}
}

// writeServiceError converte erros do diretório no corpo padronizado de erro
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var directoryErr *directory.DirectoryError
	if errors.As(err, &directoryErr) {
		apiErrors.WriteError(w, directoryErr.Code, directoryErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("handler: unexpected error")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}

// boolParam lê um parâmetro booleano opcional da query string
func boolParam(r *http.Request, name string) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return false, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, directory.NewDirectoryError(directory.ErrValidation, apiErrors.ErrInvalidFormat, "invalid boolean for "+name+": "+value)
	}
	return parsed, nil
}

// InvalidRoute responde rotas inexistentes com erro de validação
func InvalidRoute() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRoute, "invalid route: "+r.Method+" "+r.URL.Path, nil)
	})
}

// RequireFreshDirectory recarrega o diretório antes da consulta quando o cache está vencido
func RequireFreshDirectory(service directory.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := service.EnsureFresh(r.Context()); err != nil {
				writeServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
