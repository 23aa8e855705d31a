package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
)

// RefreshTrigger é a parte do agendador usada pelas rotas de cache
type RefreshTrigger interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

type cacheStatusResponse struct {
	Cache     *domain.CacheStatus `json:"cache"`
	Scheduler map[string]any      `json:"scheduler,omitempty"`
}

type refreshResponse struct {
	Run     *domain.RefreshRun `json:"run,omitempty"`
	Started *bool              `json:"started,omitempty"`
}

func GetCacheStatus(service directory.Directory, trigger RefreshTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, err := service.Status(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response := cacheStatusResponse{Cache: status}
		if trigger != nil {
			response.Scheduler = trigger.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}

// RefreshCache força a recarga do relatório. Com async=true a recarga é
// delegada ao agendador e a resposta é imediata.
func RefreshCache(service directory.Directory, trigger RefreshTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RefreshCache")

		async, err := boolParam(r, "async")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if async && trigger != nil {
			started := trigger.TriggerManualSync()
			writeJSON(w, r, http.StatusAccepted, refreshResponse{Started: &started})
			return
		}

		run, err := service.Refresh(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, refreshResponse{Run: run})
	})
}
