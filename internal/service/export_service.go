package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
	"github.com/moltaqa/moltaqa-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportProfileRepository interface {
	ListVisible(ctx context.Context, filter models.ProfileFilter) ([]models.StudentProfileDetail, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders the visible profile directory for admins.
type ExportService struct {
	profiles exportProfileRepository
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(profiles exportProfileRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{profiles: profiles, csv: csv, pdf: pdf, logger: logger}
}

// ProfileDirectory renders the visible profile directory in the requested format.
func (s *ExportService) ProfileDirectory(ctx context.Context, format ExportFormat) ([]byte, string, error) {
	profiles, _, err := s.profiles.ListVisible(ctx, models.ProfileFilter{VisibleOnly: true, Page: 1, PageSize: 50})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profiles")
	}

	dataset := export.Dataset{
		Headers: []string{"name", "major", "college", "level", "study_modes"},
		Rows:    make([]map[string]string, 0, len(profiles)),
	}
	for i := range profiles {
		profile := &profiles[i]
		dataset.Rows = append(dataset.Rows, map[string]string{
			"name":        profile.FullName,
			"major":       deref(profile.MajorName),
			"college":     deref(profile.CollegeName),
			"level":       profile.Level,
			"study_modes": strings.Join(profile.StudyModes, ", "),
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Student Directory")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
}
