package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(rows int) Dataset {
	data := Dataset{Title: "Activity History", Headers: []string{"Date", "Reading", "Status"}}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, map[string]string{
			"Date":    fmt.Sprintf("2024-01-%02d", i%28+1),
			"Reading": "yes",
			"Status":  "Unlocked",
		})
	}
	return data
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	require.Error(t, err)
}

func TestCSVExporterRender(t *testing.T) {
	exporter, err := For(FormatCSV)
	require.NoError(t, err)

	out, err := exporter.Render(sampleDataset(2))
	require.NoError(t, err)
	assert.Equal(t, "Date,Reading,Status\n2024-01-01,yes,Unlocked\n2024-01-02,yes,Unlocked\n", string(out))
	assert.Equal(t, "csv", exporter.Extension())
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRendersManyPages(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(120))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
