package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/reporting"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// ReportSnapshotSyncConfig representa a configuração do fechamento diário de relatórios
type ReportSnapshotSyncConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// ReportSnapshotSyncService fecha o relatório do dia anterior e o congela na
// tabela de snapshots. Dias fechados passam a ser servidos do snapshot, sem
// reagregar os vouchers.
type ReportSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              ReportSnapshotSyncConfig
	appConfig           *config.Config
	voucherRepo         repository.VoucherRepository
	snapshotRepo        repository.ReportSnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewReportSnapshotSyncService cria uma nova instância do serviço de fechamento de relatórios
func NewReportSnapshotSyncService(
	voucherRepo repository.VoucherRepository,
	snapshotRepo repository.ReportSnapshotRepository,
	appConfig *config.Config,
) *ReportSnapshotSyncService {
	syncConfig := ReportSnapshotSyncConfig{
		CronSchedule:  appConfig.ReportSnapshotSync.CronSchedule,
		RetentionDays: appConfig.ReportSnapshotSync.RetentionDays,
		SyncEnabled:   appConfig.ReportSnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"retention_days": syncConfig.RetentionDays,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de fechamento de relatórios carregada")

	return &ReportSnapshotSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		appConfig:    appConfig,
		voucherRepo:  voucherRepo,
		snapshotRepo: snapshotRepo,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *ReportSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Fechamento de relatórios desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de fechamento de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.closeYesterday()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar fechamento de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de fechamento de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// closeYesterday agrega o dia anterior no fuso dos relatórios e grava o snapshot
func (s *ReportSnapshotSyncService) closeYesterday() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Fechamento de relatórios já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	s.lastSyncStartedAt = time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	loc := s.appConfig.Report.Location()
	yesterday := time.Now().In(loc).AddDate(0, 0, -1)

	if err := s.closeDay(yesterday, loc); err != nil {
		logrus.WithFields(logrus.Fields{
			"date":  yesterday.Format(time.DateOnly),
			"error": err.Error(),
		}).Error("Erro ao fechar relatório do dia")
		return
	}

	s.purgeOldSnapshots()

	s.lastSyncCompletedAt = time.Now()
}

// closeDay agrega e congela um dia específico
func (s *ReportSnapshotSyncService) closeDay(date time.Time, loc *time.Location) error {
	window := domain.DayRange(date, loc)

	records, err := s.voucherRepo.GetByActivityRange(window.Start, window.End)
	if err != nil {
		return fmt.Errorf("erro ao buscar vouchers do dia: %w", err)
	}

	report, err := reporting.BuildDailyReport(records, date, s.appConfig.Report.Tiers(), loc)
	if err != nil {
		return fmt.Errorf("erro ao agregar relatório do dia: %w", err)
	}

	if err := s.snapshotRepo.SaveOrUpdate(report); err != nil {
		return fmt.Errorf("erro ao gravar snapshot do relatório: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"date":        report.Date,
		"total_sales": report.Summary.TotalSales,
		"net_revenue": report.Summary.NetRevenue.String(),
	}).Info("Relatório diário fechado com sucesso")

	return nil
}

func (s *ReportSnapshotSyncService) purgeOldSnapshots() {
	if s.config.RetentionDays <= 0 {
		return
	}

	deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"retention_days": s.config.RetentionDays,
			"error":          err.Error(),
		}).Error("Erro ao expurgar snapshots antigos")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("Snapshots antigos expurgados")
	}
}

// TriggerManualSync inicia manualmente um fechamento de relatório
func (s *ReportSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Fechamento de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando fechamento manual de relatório")
	go s.closeYesterday()
}

// GetStatus retorna o status atual do agendador
func (s *ReportSnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
