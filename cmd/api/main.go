package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/database/postgres"
	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot"
	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot/hotspotclient"
	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/api"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/scheduler"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/authenticating"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/dashboarding"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/exporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/managing"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/reporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/vouchering"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	// Valores monetários serializam como número JSON, não como string
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	voucherRepo := repository.NewVoucherRepository(pgConn)
	locationRepo := repository.NewLocationRepository(pgConn)
	operatorRepo := repository.NewOperatorRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	hotspotClient := hotspotclient.NewClient(cfg)
	hotspotIntegrator := hotspot.New(cfg, hotspotClient)

	// Relatórios de dias já fechados são servidos a partir dos snapshots
	reportService := reporting.NewService(cfg, voucherRepo).WithSnapshots(snapshotRepo)
	dashboardService := dashboarding.NewService(cfg, voucherRepo, operatorRepo)
	voucherService := vouchering.NewService(cfg, voucherRepo, locationRepo, operatorRepo)
	managementService := managing.NewService(locationRepo, operatorRepo)
	exportService := exporting.NewService()

	voucherSyncService := scheduler.NewVoucherSyncService(voucherRepo, hotspotIntegrator, cfg)
	reportSnapshotSyncService := scheduler.NewReportSnapshotSyncService(voucherRepo, snapshotRepo, cfg)

	// Inicia os agendadores em background
	if err := voucherSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de vouchers")
	} else {
		logrus.Info("Agendador de sincronização de vouchers iniciado com sucesso")
	}

	if err := reportSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de fechamento de relatórios")
	} else {
		logrus.Info("Agendador de fechamento de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dashboardService,
		reportService,
		exportService,
		voucherService,
		managementService,
		authenticator,
		hotspotIntegrator,
		voucherSyncService,
		reportSnapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
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
