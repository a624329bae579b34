package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot"
	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// VoucherSyncConfig representa a configuração do agendador de sincronização de vouchers
type VoucherSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// VoucherSyncService puxa os vouchers do controlador de hotspot e grava no
// banco local. O upsert do repositório nunca desfaz uma anulação local, então
// reprocessar a mesma janela é seguro.
type VoucherSyncService struct {
	scheduler           *gocron.Scheduler
	config              VoucherSyncConfig
	appConfig           *config.Config
	voucherRepo         repository.VoucherRepository
	hotspotService      hotspot.HotspotIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewVoucherSyncService cria uma nova instância do serviço de sincronização de vouchers
func NewVoucherSyncService(
	voucherRepo repository.VoucherRepository,
	hotspotService hotspot.HotspotIntegrator,
	appConfig *config.Config,
) *VoucherSyncService {
	syncConfig := VoucherSyncConfig{
		CronSchedule:        appConfig.VoucherSync.CronSchedule,
		LookbackDays:        appConfig.VoucherSync.LookbackDays,
		RequestDelaySeconds: appConfig.VoucherSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.VoucherSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de vouchers carregada")

	return &VoucherSyncService{
		scheduler:      scheduler,
		config:         syncConfig,
		appConfig:      appConfig,
		voucherRepo:    voucherRepo,
		hotspotService: hotspotService,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *VoucherSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de vouchers desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de vouchers")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncVouchers()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de vouchers: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de vouchers")
		s.scheduler.Stop()
	}()

	return nil
}

// syncVouchers sincroniza a janela de retrocesso configurada, um dia por vez
func (s *VoucherSyncService) syncVouchers() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vouchers já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	lookback := s.config.LookbackDays
	if lookback < 1 {
		lookback = 1
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -lookback)

	logrus.WithFields(logrus.Fields{
		"start_date": windowStart.Format(time.DateOnly),
		"end_date":   now.Format(time.DateOnly),
		"days":       lookback,
	}).Info("Período para sincronização de vouchers")

	var saved, failed int

	// Um dia por vez, com pausa entre requisições, para não sobrecarregar o controlador
	for day := 0; day < lookback; day++ {
		from := windowStart.AddDate(0, 0, day)
		to := from.AddDate(0, 0, 1)
		if to.After(now) {
			to = now
		}

		daySaved, dayFailed := s.syncWindow(from, to)
		saved += daySaved
		failed += dayFailed

		if day < lookback-1 && s.config.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"saved":    saved,
		"failed":   failed,
	}).Info("Sincronização de vouchers concluída")

	s.lastSyncCompletedAt = time.Now()
}

// syncWindow busca e grava os vouchers criados dentro de uma janela
func (s *VoucherSyncService) syncWindow(from, to time.Time) (saved, failed int) {
	records, err := s.hotspotService.GetVouchers(from, to)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"from":  from.Format(time.RFC3339),
			"to":    to.Format(time.RFC3339),
			"error": err.Error(),
		}).Error("Erro ao buscar vouchers do controlador de hotspot")
		return 0, 0
	}

	for _, record := range records {
		if err := s.voucherRepo.SaveOrUpdate(record); err != nil {
			logrus.WithFields(logrus.Fields{
				"voucher_id": record.ID,
				"error":      err.Error(),
			}).Error("Erro ao gravar voucher sincronizado")
			failed++
			continue
		}
		saved++
	}

	return saved, failed
}

// TriggerManualSync inicia manualmente uma sincronização de vouchers
func (s *VoucherSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vouchers já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de vouchers")
	go s.syncVouchers()
}

// GetStatus retorna o status atual do agendador
func (s *VoucherSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
