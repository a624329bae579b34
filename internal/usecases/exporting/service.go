package exporting

import (
	"errors"
	"fmt"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

// Format é o formato de arquivo pedido na exportação
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// ErrUnknownFormat indica um formato de exportação não suportado
var ErrUnknownFormat = errors.New("formato de exportação desconhecido")

// ExportFile é o arquivo pronto para download
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type Exporter interface {
	ExportDailyReport(report *domain.DailyReport, format Format) (*ExportFile, error)
	ExportPeriodReport(report *domain.PeriodReport, format Format) (*ExportFile, error)
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) ExportDailyReport(report *domain.DailyReport, format Format) (*ExportFile, error) {
	switch format {
	case FormatCSV:
		content, err := dailyReportCSV(report)
		if err != nil {
			return nil, err
		}
		return newExportFile(fmt.Sprintf("relatorio-diario-%s.csv", report.Date), format, content), nil

	case FormatExcel:
		content, err := dailyReportExcel(report)
		if err != nil {
			return nil, err
		}
		return newExportFile(fmt.Sprintf("relatorio-diario-%s.xlsx", report.Date), format, content), nil

	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

func (s *Service) ExportPeriodReport(report *domain.PeriodReport, format Format) (*ExportFile, error) {
	switch format {
	case FormatCSV:
		content, err := periodReportCSV(report)
		if err != nil {
			return nil, err
		}
		return newExportFile(fmt.Sprintf("relatorio-periodo-%s-a-%s.csv", report.StartDate, report.EndDate), format, content), nil

	case FormatExcel:
		content, err := periodReportExcel(report)
		if err != nil {
			return nil, err
		}
		return newExportFile(fmt.Sprintf("relatorio-periodo-%s-a-%s.xlsx", report.StartDate, report.EndDate), format, content), nil

	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

func newExportFile(name string, format Format, content []byte) *ExportFile {
	contentType := "text/csv"
	if format == FormatExcel {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return &ExportFile{
		Name:        name,
		ContentType: contentType,
		Content:     content,
	}
}
