package directory

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport"
	"github.com/vfg2006/people-directory-api/infrastructure/repository"
	"github.com/vfg2006/people-directory-api/internal/config"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/pkg/apiErrors"
	"github.com/vfg2006/people-directory-api/pkg/utils"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL              = 24 * time.Hour
	DefaultRecentHireWindow = 7 * 24 * time.Hour

	reloadKey      = "employee-report"
	statusRunLimit = 10
)

// Directory expõe a recarga do cache e as consultas sobre o snapshot atual
type Directory interface {
	EnsureFresh(ctx context.Context) error
	Refresh(ctx context.Context) (*domain.RefreshRun, error)
	Status(ctx context.Context) (*domain.CacheStatus, error)

	GetEmployee(id string, includeDirectReports bool) (*domain.EmployeeWithReports, error)
	GetEmployees(filters domain.EmployeeFilters) ([]domain.Employee, error)
	GetDepartment(id string, includePastEmployees bool) (*domain.Department, error)
	GetDepartmentByName(nameOrID string, includePastEmployees bool) (*domain.Department, error)
	GetDepartments(includePastEmployees bool) ([]domain.Department, error)
}

type Service struct {
	integrator       hrreport.HRReportIntegrator
	stateRepository  repository.RefreshStateRepository
	ttl              time.Duration
	recentHireWindow time.Duration
	catalog          map[string]string
	now              func() time.Time

	snapshot atomic.Pointer[Snapshot]
	reloads  singleflight.Group
}

func NewService(
	cfg *config.Config,
	integrator hrreport.HRReportIntegrator,
	stateRepository repository.RefreshStateRepository,
) *Service {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	recentHireWindow := cfg.Cache.RecentHireWindow
	if recentHireWindow <= 0 {
		recentHireWindow = DefaultRecentHireWindow
	}

	return &Service{
		integrator:       integrator,
		stateRepository:  stateRepository,
		ttl:              ttl,
		recentHireWindow: recentHireWindow,
		now:              time.Now,
	}
}

// WithDepartmentCatalog define os nomes usados para departamentos sem nome no relatório
func (s *Service) WithDepartmentCatalog(catalog map[string]string) *Service {
	s.catalog = catalog
	return s
}

// WithClock substitui o relógio usado no cálculo de tempo de casa e validade
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// EnsureFresh recarrega o relatório quando o cache está vazio ou vencido.
// Requisições concorrentes compartilham a mesma recarga.
func (s *Service) EnsureFresh(ctx context.Context) error {
	if s.isFresh(ctx) {
		return nil
	}

	_, err := s.reload(ctx)
	return err
}

// Refresh força uma recarga, independente da validade do snapshot atual
func (s *Service) Refresh(ctx context.Context) (*domain.RefreshRun, error) {
	return s.reload(ctx)
}

// isFresh exige que o snapshot local e a última recarga persistida estejam
// dentro do TTL. Sem acesso ao estado vale apenas a idade do snapshot.
func (s *Service) isFresh(ctx context.Context) bool {
	current := s.snapshot.Load()
	if current == nil {
		return false
	}

	now := s.now()
	if now.Sub(current.loadedAt) >= s.ttl {
		return false
	}

	persisted, err := s.stateRepository.GetLastRefresh(ctx)
	if err != nil {
		logrus.WithError(err).Warn("directory: failed to read last refresh, using snapshot load time")
		return true
	}
	if persisted != nil && now.Sub(*persisted) >= s.ttl {
		return false
	}

	return true
}

func (s *Service) reload(ctx context.Context) (*domain.RefreshRun, error) {
	// A recarga é compartilhada entre requisições e não deve ser cancelada por uma delas
	loadCtx := context.WithoutCancel(ctx)

	result, err, shared := s.reloads.Do(reloadKey, func() (interface{}, error) {
		return s.load(loadCtx)
	})
	if shared {
		logrus.Debug("directory: reload shared with concurrent request")
	}
	if err != nil {
		return nil, err
	}

	return result.(*domain.RefreshRun), nil
}

// load busca o relatório, monta um snapshot novo e só o publica se tudo der certo
func (s *Service) load(ctx context.Context) (*domain.RefreshRun, error) {
	run := &domain.RefreshRun{
		ID:        s.newRunID(),
		StartedAt: s.now(),
	}

	logrus.WithField("run_id", run.ID).Info("directory: loading employee report")

	rows, err := s.integrator.GetEmployees(ctx)
	if err != nil {
		run.Status = domain.RefreshStatusFailed
		run.CompletedAt = s.now()
		run.Error = err.Error()
		s.saveRun(ctx, run)

		logrus.WithError(err).WithField("run_id", run.ID).Error("directory: failed to load employee report")
		return nil, NewDirectoryError(ErrUpstreamFetch, apiErrors.ErrExternalService, err.Error())
	}

	snapshot := buildSnapshot(rows, s.now(), s.catalog)
	s.snapshot.Store(snapshot)

	run.Status = domain.RefreshStatusSuccess
	run.CompletedAt = snapshot.loadedAt
	run.EmployeeCount = snapshot.EmployeeCount()
	run.DepartmentCount = snapshot.DepartmentCount()
	s.saveRun(ctx, run)

	logrus.WithFields(logrus.Fields{
		"run_id":      run.ID,
		"employees":   run.EmployeeCount,
		"departments": run.DepartmentCount,
		"duration_ms": run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
	}).Info("directory: employee report loaded")

	return run, nil
}

func (s *Service) saveRun(ctx context.Context, run *domain.RefreshRun) {
	if err := s.stateRepository.SaveRefreshRun(ctx, run); err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Warn("directory: failed to persist refresh run")
	}
}

func (s *Service) newRunID() string {
	id, err := utils.GenerateRunID()
	if err != nil {
		logrus.WithError(err).Warn("directory: failed to generate run id")
		return fmt.Sprintf("run_%d", s.now().UnixNano())
	}
	return id
}

// Status resume o snapshot atual e as últimas execuções de recarga
func (s *Service) Status(ctx context.Context) (*domain.CacheStatus, error) {
	status := &domain.CacheStatus{
		TTL: s.ttl.String(),
	}

	if current := s.snapshot.Load(); current != nil {
		loadedAt := current.loadedAt
		status.Loaded = true
		status.LoadedAt = &loadedAt
		status.Age = humanize.RelTime(loadedAt, s.now(), "ago", "from now")
		status.EmployeeCount = current.EmployeeCount()
		status.DepartmentCount = current.DepartmentCount()
	}

	lastRefresh, err := s.stateRepository.GetLastRefresh(ctx)
	if err != nil {
		return nil, NewDirectoryError(err, apiErrors.ErrStateStore, "falha ao consultar última recarga")
	}
	status.LastRefresh = lastRefresh
	status.Fresh = s.isFresh(ctx)

	runs, err := s.stateRepository.ListRecentRuns(ctx, statusRunLimit)
	if err != nil {
		return nil, NewDirectoryError(err, apiErrors.ErrStateStore, "falha ao listar execuções de recarga")
	}
	status.RecentRuns = runs

	return status, nil
}

func (s *Service) current() (*Snapshot, error) {
	current := s.snapshot.Load()
	if current == nil {
		return nil, NewDirectoryError(ErrNotLoaded, apiErrors.ErrInternalServer, "")
	}
	return current, nil
}
