package hotspotclient

import (
	"net/http"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
)

type Client interface {
	ListVouchers(params VoucherConsultationParams) (*VoucherConsultationResponse, error)
}

type HotspotClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Hotspot.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HotspotClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
