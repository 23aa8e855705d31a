package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/people-directory-api/infrastructure/database/postgres"
	"github.com/vfg2006/people-directory-api/infrastructure/database/redis"
	"github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport"
	"github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/reportclient"
	"github.com/vfg2006/people-directory-api/infrastructure/repository"
	"github.com/vfg2006/people-directory-api/internal/api"
	"github.com/vfg2006/people-directory-api/internal/config"
	"github.com/vfg2006/people-directory-api/internal/scheduler"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
	"github.com/vfg2006/people-directory-api/pkg/log"
)

func main() {
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stateRepository, closeStore := stateStore(ctx, cfg)
	defer closeStore()

	reportClient := reportclient.NewClient(cfg)
	integrator := hrreport.New(reportClient)

	catalog, err := directory.LoadDepartmentCatalog(cfg.Cache.DepartmentsFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar catálogo de departamentos")
	}

	directoryService := directory.NewService(cfg, integrator, stateRepository).
		WithDepartmentCatalog(catalog)

	refreshService := scheduler.NewDirectoryRefreshService(directoryService, cfg)
	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do diretório")
	} else {
		logrus.Info("Agendador de recarga do diretório iniciado com sucesso")
	}

	server, err := api.New(cfg, directoryService, refreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// stateStore escolhe onde o estado das recargas é persistido
func stateStore(ctx context.Context, cfg *config.Config) (repository.RefreshStateRepository, func()) {
	switch cfg.Cache.StateStore {
	case config.StateStorePostgres:
		conn := pgconn(ctx, cfg.Database)
		if err := repository.EnsureRefreshRunsSchema(ctx, conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao criar tabela de execuções de recarga")
		}
		return repository.NewPostgresRefreshStateRepository(conn), func() { _ = conn.Close() }
	case config.StateStoreRedis:
		conn := redis.NewConnection(ctx, cfg.Redis)
		return repository.NewRedisRefreshStateRepository(conn), func() { _ = conn.Close() }
	default:
		logrus.Info("Estado das recargas mantido em memória")
		return repository.NewMemoryRefreshStateRepository(), func() {}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
