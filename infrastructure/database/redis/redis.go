package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/people-directory-api/internal/config"
)

// Connection encapsula o cliente go-redis
type Connection struct {
	Client *goredis.Client
}

// NewConnection conecta ao Redis. Falhas de ping são apenas registradas.
func NewConnection(ctx context.Context, cfg config.Redis) *Connection {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Não foi possível conectar ao Redis")
	} else {
		logrus.WithField("addr", cfg.Addr).Info("Conexão com Redis estabelecida com sucesso")
	}

	return &Connection{Client: client}
}

func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return errors.New("redis client not configured")
	}
	return c.Client.Ping(ctx).Err()
}

func (c *Connection) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
