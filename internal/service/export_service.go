package service

import (
	"context"
	"fmt"

	"github.com/kutrumbo/unlockapp/internal/models"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
	"github.com/kutrumbo/unlockapp/pkg/export"
)

type historyLister interface {
	ListHistory(ctx context.Context) ([]models.DayRecord, error)
}

// ExportResult carries a rendered history document.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the activity history as a downloadable file.
type ExportService struct {
	history historyLister
}

// NewExportService constructs an ExportService.
func NewExportService(history historyLister) *ExportService {
	return &ExportService{history: history}
}

// ExportHistory renders the full history in the requested format.
func (s *ExportService) ExportHistory(ctx context.Context, format export.Format) (*ExportResult, error) {
	exporter, err := export.For(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}

	records, err := s.history.ListHistory(ctx)
	if err != nil {
		return nil, err
	}

	body, err := exporter.Render(historyDataset(records))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("activity-history.%s", exporter.Extension()),
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}

func historyDataset(records []models.DayRecord) export.Dataset {
	headers := []string{"Date"}
	for _, a := range models.Activities {
		headers = append(headers, a.Label())
	}
	headers = append(headers, "Status")

	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := map[string]string{"Date": record.Date, "Status": "Locked"}
		for _, a := range models.Activities {
			row[a.Label()] = yesNo(record.Activities.Has(a))
		}
		if record.Unlocked() {
			row["Status"] = "Unlocked"
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: "Activity History", Headers: headers, Rows: rows}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
