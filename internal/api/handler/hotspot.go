package handler

import (
	"net/http"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot"
	"github.com/sirupsen/logrus"
)

// GetHotspotStatus verifica a conectividade com o controlador de hotspot
func GetHotspotStatus(service hotspot.HotspotIntegrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connected, err := service.CheckConnection()
		if err != nil {
			logrus.WithError(err).Warn("Falha na verificação de conectividade com o controlador de hotspot")
		}

		status := map[string]any{
			"connected": connected,
		}
		if err != nil {
			status["error"] = err.Error()
		}

		writeJSON(w, status)
	}
}
