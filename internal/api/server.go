package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot"
	"github.com/Mwenda-Eric/bvaccess-api/internal/api/handler"
	"github.com/Mwenda-Eric/bvaccess-api/internal/api/handler/router"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/scheduler"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/authenticating"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/dashboarding"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/exporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/managing"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/reporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/vouchering"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	dashboardService dashboarding.Dashboarder,
	reportService reporting.Reporter,
	exportService exporting.Exporter,
	voucherService vouchering.Voucherer,
	managementService managing.Manager,
	authenticator authenticating.Authenticator,
	hotspotService hotspot.HotspotIntegrator,
	voucherSyncService *scheduler.VoucherSyncService,
	reportSnapshotSyncService *scheduler.ReportSnapshotSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		VoucherSyncService:        voucherSyncService,
		ReportSnapshotSyncService: reportSnapshotSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Dashboard(dashboardService)...),
		router.WithRoutes(handler.Reports(reportService, exportService)...),
		router.WithRoutes(handler.Vouchers(voucherService)...),
		router.WithRoutes(handler.Management(managementService)...),
		router.WithRoutes(handler.Hotspot(hotspotService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
