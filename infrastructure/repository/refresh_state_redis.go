package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/vfg2006/people-directory-api/infrastructure/database/redis"
	"github.com/vfg2006/people-directory-api/internal/domain"
)

const (
	lastRefreshKey = "directory:last_refresh"
	refreshRunsKey = "directory:refresh_runs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type redisRefreshStateRepository struct {
	conn *redis.Connection
}

func NewRedisRefreshStateRepository(conn *redis.Connection) RefreshStateRepository {
	return &redisRefreshStateRepository{
		conn: conn,
	}
}

func (r *redisRefreshStateRepository) GetLastRefresh(ctx context.Context) (*time.Time, error) {
	value, err := r.conn.Client.Get(ctx, lastRefreshKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao consultar última recarga: %w", err)
	}

	lastRefresh, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("valor inválido em %s: %w", lastRefreshKey, err)
	}

	return &lastRefresh, nil
}

func (r *redisRefreshStateRepository) SaveRefreshRun(ctx context.Context, run *domain.RefreshRun) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("erro ao serializar execução de recarga: %w", err)
	}

	pipe := r.conn.Client.TxPipeline()
	pipe.LPush(ctx, refreshRunsKey, payload)
	pipe.LTrim(ctx, refreshRunsKey, 0, maxStoredRuns-1)
	if run.Status == domain.RefreshStatusSuccess {
		pipe.Set(ctx, lastRefreshKey, run.CompletedAt.UTC().Format(time.RFC3339Nano), 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("erro ao salvar execução de recarga: %w", err)
	}

	return nil
}

func (r *redisRefreshStateRepository) ListRecentRuns(ctx context.Context, limit int) ([]*domain.RefreshRun, error) {
	if limit <= 0 {
		limit = maxStoredRuns
	}

	values, err := r.conn.Client.LRange(ctx, refreshRunsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar execuções de recarga: %w", err)
	}

	runs := make([]*domain.RefreshRun, 0, len(values))
	for _, value := range values {
		var run domain.RefreshRun
		if err := json.Unmarshal([]byte(value), &run); err != nil {
			return nil, fmt.Errorf("erro ao decodificar execução de recarga: %w", err)
		}
		runs = append(runs, &run)
	}

	return runs, nil
}
