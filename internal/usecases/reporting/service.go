package reporting

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

// Reporter expõe os relatórios externos do painel
type Reporter interface {
	DailyReport(date time.Time) (*domain.DailyReport, error)
	PeriodReport(startDate, endDate time.Time, comparePrevious bool) (*domain.PeriodReport, error)
}

type Service struct {
	cfg                *config.Config
	voucherRepository  repository.VoucherRepository
	snapshotRepository repository.ReportSnapshotRepository
	useSnapshots       bool
}

// NewService cria o serviço de relatórios sem cache de snapshots
func NewService(cfg *config.Config, voucherRepo repository.VoucherRepository) *Service {
	return &Service{
		cfg:               cfg,
		voucherRepository: voucherRepo,
	}
}

// WithSnapshots habilita a leitura de relatórios diários pré-calculados
// para dias já fechados
func (s *Service) WithSnapshots(snapshotRepo repository.ReportSnapshotRepository) *Service {
	s.snapshotRepository = snapshotRepo
	s.useSnapshots = snapshotRepo != nil
	return s
}

// DailyReport monta o relatório do dia informado. Dias já fechados podem
// ser servidos direto do snapshot; o dia corrente é sempre reagregado.
func (s *Service) DailyReport(date time.Time) (*domain.DailyReport, error) {
	loc := s.cfg.Report.Location()
	window := domain.DayRange(date, loc)

	if s.useSnapshots && window.End.Before(time.Now().In(loc)) {
		snapshot, err := s.snapshotRepository.GetByDate(window.Start)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"date":  window.Start.Format(time.DateOnly),
				"error": err,
			}).Warn("Erro ao buscar snapshot do relatório diário, reagregando")
		} else if snapshot != nil {
			return snapshot, nil
		}
	}

	records, err := s.voucherRepository.GetByActivityRange(window.Start, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"date":  window.Start.Format(time.DateOnly),
			"error": err,
		}).Error("Erro ao buscar vouchers do dia")
		return nil, err
	}

	return BuildDailyReport(records, date, s.cfg.Report.Tiers(), loc)
}

// PeriodReport monta o relatório de um intervalo inclusivo de datas. Com
// comparePrevious, a busca recua um período de mesmo comprimento para
// alimentar o bloco de comparação.
func (s *Service) PeriodReport(startDate, endDate time.Time, comparePrevious bool) (*domain.PeriodReport, error) {
	loc := s.cfg.Report.Location()

	window, err := domain.DateSpanRange(startDate, endDate, loc)
	if err != nil {
		return nil, err
	}

	fetchStart := window.Start
	if comparePrevious {
		fetchStart = window.Previous().Start
	}

	records, err := s.voucherRepository.GetByActivityRange(fetchStart, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"startDate": window.Start.Format(time.DateOnly),
			"endDate":   endDate.Format(time.DateOnly),
			"error":     err,
		}).Error("Erro ao buscar vouchers do período")
		return nil, err
	}

	return BuildPeriodReport(records, startDate, endDate, comparePrevious, s.cfg.Report.Tiers(), loc)
}
