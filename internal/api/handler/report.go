package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/exporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/reporting"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// dateFromQuery lê uma data YYYY-MM-DD da query string; vazia vira o padrão
func dateFromQuery(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// GetDailyReport retorna o relatório de um dia. Sem data na query, o dia é hoje
func GetDailyReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dateFromQuery(r, "date", time.Now())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Formato esperado: YYYY-MM-DD", nil)
			return
		}

		report, err := service.DailyReport(date)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar relatório diário", nil)
			return
		}

		writeJSON(w, report)
	}
}

// GetPeriodReport retorna o relatório consolidado de um intervalo de dias.
// comparePrevious=true acrescenta a comparação com o período anterior.
func GetPeriodReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate, endDate, err := periodFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		comparePrevious := r.URL.Query().Get("comparePrevious") == "true"

		report, err := service.PeriodReport(startDate, endDate, comparePrevious)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidRange) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Data final deve ser igual ou posterior à inicial", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar relatório de período", nil)
			return
		}

		writeJSON(w, report)
	}
}

func periodFromQuery(r *http.Request) (time.Time, time.Time, error) {
	rawStart := r.URL.Query().Get("startDate")
	rawEnd := r.URL.Query().Get("endDate")
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, errors.New("startDate e endDate são obrigatórios. Formato esperado: YYYY-MM-DD")
	}

	startDate, err := time.Parse(time.DateOnly, rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("startDate inválida. Formato esperado: YYYY-MM-DD")
	}

	endDate, err := time.Parse(time.DateOnly, rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("endDate inválida. Formato esperado: YYYY-MM-DD")
	}

	return startDate, endDate, nil
}

func exportFormatFromQuery(r *http.Request) exporting.Format {
	format := r.URL.Query().Get("format")
	if format == "" {
		return exporting.FormatCSV
	}
	return exporting.Format(format)
}

func writeExportFile(w http.ResponseWriter, file *exporting.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	if _, err := w.Write(file.Content); err != nil {
		logrus.Error(err)
	}
}

// ExportDailyReport baixa o relatório diário em CSV ou Excel
func ExportDailyReport(service reporting.Reporter, exporter exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dateFromQuery(r, "date", time.Now())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Formato esperado: YYYY-MM-DD", nil)
			return
		}

		report, err := service.DailyReport(date)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar relatório diário", nil)
			return
		}

		file, err := exporter.ExportDailyReport(report, exportFormatFromQuery(r))
		if err != nil {
			if errors.Is(err, exporting.ErrUnknownFormat) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato inválido. Valores aceitos: csv, xlsx", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao exportar relatório", nil)
			return
		}

		writeExportFile(w, file)
	}
}

// ExportPeriodReport baixa o relatório de período em CSV ou Excel
func ExportPeriodReport(service reporting.Reporter, exporter exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate, endDate, err := periodFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		comparePrevious := r.URL.Query().Get("comparePrevious") == "true"

		report, err := service.PeriodReport(startDate, endDate, comparePrevious)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidRange) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Data final deve ser igual ou posterior à inicial", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar relatório de período", nil)
			return
		}

		file, err := exporter.ExportPeriodReport(report, exportFormatFromQuery(r))
		if err != nil {
			if errors.Is(err, exporting.ErrUnknownFormat) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato inválido. Valores aceitos: csv, xlsx", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao exportar relatório", nil)
			return
		}

		writeExportFile(w, file)
	}
}
