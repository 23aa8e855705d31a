// Package scheduler contém os serviços de agendamento da recarga do cache
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/people-directory-api/internal/config"
	"github.com/vfg2006/people-directory-api/internal/domain"
)

// Refresher é a parte do diretório usada pelo agendador
type Refresher interface {
	Refresh(ctx context.Context) (*domain.RefreshRun, error)
}

type DirectoryRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DirectoryRefreshService recarrega o cache de funcionários periodicamente,
// antes que uma requisição encontre o snapshot vencido
type DirectoryRefreshService struct {
	scheduler           *gocron.Scheduler
	config              DirectoryRefreshConfig
	directory           Refresher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRun             *domain.RefreshRun
	lastError           string
}

func NewDirectoryRefreshService(directory Refresher, cfg *config.Config) *DirectoryRefreshService {
	refreshConfig := DirectoryRefreshConfig{
		CronSchedule: cfg.DirectoryRefresh.CronSchedule,
		SyncEnabled:  cfg.DirectoryRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga do diretório carregada")

	return &DirectoryRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		directory: directory,
	}
}

// Start agenda a recarga. Com a sincronização desabilitada nada é agendado.
func (s *DirectoryRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada do diretório desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recarga do diretório")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshDirectory(ctx); err != nil {
			logrus.WithError(err).Error("Erro na recarga agendada do diretório")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do diretório: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recarga do diretório")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshDirectory executa uma recarga, ignorando a chamada se outra estiver em andamento
func (s *DirectoryRefreshService) RefreshDirectory(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Recarga do diretório já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	run, err := s.directory.Refresh(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.lastError = ""
	s.lastRun = run
	return nil
}

// TriggerManualSync dispara uma recarga em background
func (s *DirectoryRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Recarga do diretório já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando recarga manual do diretório")
	go func() {
		if err := s.RefreshDirectory(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na recarga manual do diretório")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DirectoryRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run":               s.lastRun,
		"last_error":             s.lastError,
	}
}
