package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/mocks"
	"github.com/vfg2006/people-directory-api/infrastructure/repository"
	repomocks "github.com/vfg2006/people-directory-api/infrastructure/repository/mocks"
	"github.com/vfg2006/people-directory-api/internal/config"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.Cache{
			TTL:              24 * time.Hour,
			RecentHireWindow: 7 * 24 * time.Hour,
		},
	}
}

func newTestService(t *testing.T) (*Service, *mocks.MockHRReportIntegrator, *fakeClock) {
	ctrl := gomock.NewController(t)
	integrator := mocks.NewMockHRReportIntegrator(ctrl)
	clock := &fakeClock{now: fixtureNow}

	service := NewService(testConfig(), integrator, repository.NewMemoryRefreshStateRepository()).
		WithDepartmentCatalog(fixtureCatalog).
		WithClock(clock.Now)

	return service, integrator, clock
}

func loadedService(t *testing.T) *Service {
	service, integrator, _ := newTestService(t)
	integrator.EXPECT().GetEmployees(gomock.Any()).Return(fixtureEmployees(), nil).Times(1)
	require.NoError(t, service.EnsureFresh(context.Background()))
	return service
}

func assertDirectoryError(t *testing.T, err error, sentinel error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel), "esperado %v, obtido %v", sentinel, err)

	var directoryErr *DirectoryError
	require.True(t, errors.As(err, &directoryErr))
	assert.Equal(t, code, directoryErr.Code)
}

func TestService_NotLoaded(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.GetEmployees(domain.EmployeeFilters{})
	assertDirectoryError(t, err, ErrNotLoaded, apiErrors.ErrInternalServer)
}

func TestService_EnsureFresh(t *testing.T) {
	service, integrator, clock := newTestService(t)
	ctx := context.Background()

	integrator.EXPECT().GetEmployees(gomock.Any()).Return(fixtureEmployees(), nil).Times(2)

	require.NoError(t, service.EnsureFresh(ctx))

	clock.Advance(23 * time.Hour)
	require.NoError(t, service.EnsureFresh(ctx), "dentro do TTL não há nova busca")

	clock.Advance(2 * time.Hour)
	require.NoError(t, service.EnsureFresh(ctx), "TTL vencido recarrega")

	status, err := service.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Loaded)
	assert.True(t, status.Fresh)
	assert.Equal(t, 5, status.EmployeeCount)
	assert.Equal(t, 4, status.DepartmentCount)
	assert.Len(t, status.RecentRuns, 2)
	assert.Equal(t, "now", status.Age)
}

func TestService_FreshnessUsesPersistedRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	integrator := mocks.NewMockHRReportIntegrator(ctrl)
	stateRepository := repomocks.NewMockRefreshStateRepository(ctrl)
	clock := &fakeClock{now: fixtureNow}

	service := NewService(testConfig(), integrator, stateRepository).WithClock(clock.Now)
	ctx := context.Background()

	integrator.EXPECT().GetEmployees(gomock.Any()).Return(fixtureEmployees(), nil).Times(3)
	stateRepository.EXPECT().SaveRefreshRun(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	require.NoError(t, service.EnsureFresh(ctx))

	// Estado persistido vencido força recarga mesmo com snapshot recente
	clock.Advance(time.Hour)
	old := clock.Now().Add(-30 * time.Hour)
	stateRepository.EXPECT().GetLastRefresh(gomock.Any()).Return(&old, nil)
	require.NoError(t, service.EnsureFresh(ctx))

	// Sem acesso ao estado, vale o horário do snapshot local
	clock.Advance(time.Hour)
	stateRepository.EXPECT().GetLastRefresh(gomock.Any()).Return(nil, errors.New("connection refused"))
	require.NoError(t, service.EnsureFresh(ctx))

	// Recarga recente de outra instância não segura um snapshot local vencido
	clock.Advance(24 * time.Hour)
	require.NoError(t, service.EnsureFresh(ctx))
}

func TestService_PeerRefreshDoesNotExtendSnapshotAge(t *testing.T) {
	ctrl := gomock.NewController(t)
	integrator := mocks.NewMockHRReportIntegrator(ctrl)
	stateRepository := repomocks.NewMockRefreshStateRepository(ctrl)
	clock := &fakeClock{now: fixtureNow}

	service := NewService(testConfig(), integrator, stateRepository).WithClock(clock.Now)
	ctx := context.Background()

	var fetches int32
	integrator.EXPECT().GetEmployees(gomock.Any()).DoAndReturn(func(context.Context) ([]domain.Employee, error) {
		atomic.AddInt32(&fetches, 1)
		return fixtureEmployees(), nil
	}).AnyTimes()
	stateRepository.EXPECT().SaveRefreshRun(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	stateRepository.EXPECT().GetLastRefresh(gomock.Any()).DoAndReturn(func(context.Context) (*time.Time, error) {
		peer := clock.Now()
		return &peer, nil
	}).AnyTimes()

	require.NoError(t, service.EnsureFresh(ctx))

	for cycle := 0; cycle < 5; cycle++ {
		clock.Advance(20 * time.Hour)
		require.NoError(t, service.EnsureFresh(ctx))

		age := clock.Now().Sub(service.snapshot.Load().loadedAt)
		assert.Less(t, age, 24*time.Hour, "ciclo %d", cycle)
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&fetches))
}

func TestService_FailedReloadKeepsSnapshot(t *testing.T) {
	service, integrator, _ := newTestService(t)
	ctx := context.Background()

	gomock.InOrder(
		integrator.EXPECT().GetEmployees(gomock.Any()).Return(fixtureEmployees(), nil),
		integrator.EXPECT().GetEmployees(gomock.Any()).Return(nil, errors.New("hr platform unavailable")),
	)

	_, err := service.Refresh(ctx)
	require.NoError(t, err)

	_, err = service.Refresh(ctx)
	assertDirectoryError(t, err, ErrUpstreamFetch, apiErrors.ErrExternalService)

	employees, err := service.GetEmployees(domain.EmployeeFilters{IncludePastEmployees: true})
	require.NoError(t, err)
	assert.Len(t, employees, 5)

	status, err := service.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status.RecentRuns, 2)
	assert.Equal(t, domain.RefreshStatusFailed, status.RecentRuns[0].Status)
	assert.Equal(t, domain.RefreshStatusSuccess, status.RecentRuns[1].Status)
}

func TestService_FirstLoadFailure(t *testing.T) {
	service, integrator, _ := newTestService(t)

	integrator.EXPECT().GetEmployees(gomock.Any()).Return(nil, errors.New("timeout"))

	err := service.EnsureFresh(context.Background())
	assertDirectoryError(t, err, ErrUpstreamFetch, apiErrors.ErrExternalService)

	_, err = service.GetEmployee("1", false)
	assertDirectoryError(t, err, ErrNotLoaded, apiErrors.ErrInternalServer)
}

func TestService_ConcurrentReloadsShareFetch(t *testing.T) {
	service, integrator, _ := newTestService(t)

	var calls int32
	release := make(chan struct{})
	integrator.EXPECT().GetEmployees(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]domain.Employee, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return fixtureEmployees(), nil
	}).MinTimes(1)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- service.EnsureFresh(context.Background())
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestService_ReloadIsIdempotent(t *testing.T) {
	service, integrator, _ := newTestService(t)
	ctx := context.Background()

	integrator.EXPECT().GetEmployees(gomock.Any()).DoAndReturn(func(context.Context) ([]domain.Employee, error) {
		return fixtureEmployees(), nil
	}).Times(2)

	_, err := service.Refresh(ctx)
	require.NoError(t, err)
	first, err := service.GetEmployees(domain.EmployeeFilters{IncludePastEmployees: true})
	require.NoError(t, err)
	firstDepartments, err := service.GetDepartments(true)
	require.NoError(t, err)

	_, err = service.Refresh(ctx)
	require.NoError(t, err)
	second, err := service.GetEmployees(domain.EmployeeFilters{IncludePastEmployees: true})
	require.NoError(t, err)
	secondDepartments, err := service.GetDepartments(true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstDepartments, secondDepartments)
}

func TestService_ReloadIgnoresCallerCancellation(t *testing.T) {
	service, integrator, _ := newTestService(t)

	integrator.EXPECT().GetEmployees(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]domain.Employee, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fixtureEmployees(), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, service.EnsureFresh(ctx))
}

func TestLoadDepartmentCatalog(t *testing.T) {
	catalog, err := LoadDepartmentCatalog("")
	require.NoError(t, err)
	assert.Nil(t, catalog)

	path := filepath.Join(t.TempDir(), "departments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OPS: Operations\nENG: Engineering\n"), 0o600))

	catalog, err = LoadDepartmentCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"OPS": "Operations", "ENG": "Engineering"}, catalog)

	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))
	_, err = LoadDepartmentCatalog(path)
	assert.Error(t, err)

	_, err = LoadDepartmentCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
