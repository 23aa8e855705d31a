// Package repository contém as implementações dos repositórios do estado do cache
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/people-directory-api/internal/domain"
)

const maxStoredRuns = 50

// RefreshStateRepository persiste o horário da última recarga bem-sucedida e o
// histórico de execuções de recarga
type RefreshStateRepository interface {
	GetLastRefresh(ctx context.Context) (*time.Time, error)
	SaveRefreshRun(ctx context.Context, run *domain.RefreshRun) error
	ListRecentRuns(ctx context.Context, limit int) ([]*domain.RefreshRun, error)
}

type memoryRefreshStateRepository struct {
	mu          sync.RWMutex
	lastRefresh *time.Time
	runs        []*domain.RefreshRun
}

// NewMemoryRefreshStateRepository mantém o estado apenas em memória do processo
func NewMemoryRefreshStateRepository() RefreshStateRepository {
	return &memoryRefreshStateRepository{}
}

func (r *memoryRefreshStateRepository) GetLastRefresh(_ context.Context) (*time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lastRefresh == nil {
		return nil, nil
	}
	last := *r.lastRefresh
	return &last, nil
}

func (r *memoryRefreshStateRepository) SaveRefreshRun(_ context.Context, run *domain.RefreshRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *run
	r.runs = append([]*domain.RefreshRun{&stored}, r.runs...)
	if len(r.runs) > maxStoredRuns {
		r.runs = r.runs[:maxStoredRuns]
	}

	if run.Status == domain.RefreshStatusSuccess {
		completedAt := run.CompletedAt
		r.lastRefresh = &completedAt
	}

	return nil
}

func (r *memoryRefreshStateRepository) ListRecentRuns(_ context.Context, limit int) ([]*domain.RefreshRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.runs) {
		limit = len(r.runs)
	}

	runs := make([]*domain.RefreshRun, 0, limit)
	for _, run := range r.runs[:limit] {
		copied := *run
		runs = append(runs, &copied)
	}
	return runs, nil
}
