package hotspot

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot/hotspotclient"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/utils"
)

type HotspotIntegrator interface {
	GetVouchers(createdFrom, createdTo time.Time) ([]*domain.VoucherRecord, error)
	CheckConnection() (bool, error)
}

type HotspotService struct {
	cfg    *config.Config
	Client hotspotclient.Client
}

func New(cfg *config.Config, client hotspotclient.Client) HotspotIntegrator {
	return &HotspotService{
		cfg:    cfg,
		Client: client,
	}
}

// GetVouchers percorre todas as páginas do intervalo pedido e devolve só
// registros normalizados e válidos. Payloads malformados são registrados
// e descartados em vez de abortar a sincronização inteira.
func (s *HotspotService) GetVouchers(createdFrom, createdTo time.Time) ([]*domain.VoucherRecord, error) {
	pageSize := s.cfg.Hotspot.PageSize
	if pageSize <= 0 {
		pageSize = 200
	}

	records := make([]*domain.VoucherRecord, 0)

	for page := 1; ; page++ {
		response, err := s.Client.ListVouchers(hotspotclient.VoucherConsultationParams{
			CreatedFrom: createdFrom,
			CreatedTo:   createdTo,
			Page:        page,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, err
		}

		for i := range response.Items {
			record, err := response.Items[i].Normalize()
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"voucherID": response.Items[i].ID,
					"error":     err,
				}).Warn("Voucher descartado na normalização")
				logrus.Debugf("Payload descartado: %s", utils.PrettyJson(response.Items[i]))
				continue
			}
			records = append(records, record)
		}

		if len(response.Items) < pageSize {
			break
		}
	}

	return records, nil
}

// CheckConnection faz uma consulta mínima só para validar URL e credencial
func (s *HotspotService) CheckConnection() (bool, error) {
	now := time.Now()

	_, err := s.Client.ListVouchers(hotspotclient.VoucherConsultationParams{
		CreatedFrom: now.Add(-time.Hour),
		CreatedTo:   now,
		Page:        1,
		PageSize:    1,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
