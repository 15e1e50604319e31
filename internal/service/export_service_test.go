package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutrumbo/unlockapp/internal/models"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
	"github.com/kutrumbo/unlockapp/pkg/export"
)

type historyListerStub struct {
	records []models.DayRecord
	err     error
}

func (s historyListerStub) ListHistory(ctx context.Context) ([]models.DayRecord, error) {
	return s.records, s.err
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(historyListerStub{records: []models.DayRecord{
		{Date: "2024-03-01", Activities: models.ActivitySet{Music: true}},
		{Date: "2024-01-05"},
	}})

	result, err := svc.ExportHistory(context.Background(), export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "activity-history.csv", result.Filename)
	assert.Equal(t, "Date,Reading,Exercise,Music,Status\n"+
		"2024-03-01,no,no,yes,Unlocked\n"+
		"2024-01-05,no,no,no,Locked\n", string(result.Body))
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(historyListerStub{records: []models.DayRecord{{Date: "2024-03-01"}}})

	result, err := svc.ExportHistory(context.Background(), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Body, []byte("%PDF-")))
}

func TestExportServicePropagatesHistoryFailure(t *testing.T) {
	svc := NewExportService(historyListerStub{err: appErrors.WrapAs(appErrors.ErrStoreUnavailable, errors.New("down"), "")})

	_, err := svc.ExportHistory(context.Background(), export.FormatCSV)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStoreUnavailable))
}

func TestExportServiceRejectsFormat(t *testing.T) {
	svc := NewExportService(historyListerStub{})
	_, err := svc.ExportHistory(context.Background(), export.Format("xml"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
