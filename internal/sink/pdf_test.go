package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cryptoreport/internal/domain/models"
)

func sampleDoc() models.Document {
	return models.Document{Sections: []models.Section{
		{Label: "title", Style: models.StyleTitle, Text: "Cryptocurrency Market Analysis Report", SpaceAfter: 10},
		{Label: "top.heading", Text: "Top 5 Cryptocurrencies by Market Cap:", SpaceAfter: 5},
		{Label: "top.item", Text: "Bitcoin: $1,324,000,000,000", SpaceAfter: 10},
		{Label: "top.item", Text: "Café Coin: $12"},
	}}
}

func TestPDFReport_WriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crypto_report.pdf")

	require.NoError(t, NewPDFReport().WriteReport(sampleDoc(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "not a PDF")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(artifactPerm), info.Mode().Perm())
}

func TestPDFReport_ManySectionsPaginate(t *testing.T) {
	doc := sampleDoc()
	for i := 0; i < 80; i++ {
		doc.Sections = append(doc.Sections, models.Section{Label: "top.item", Text: "line"})
	}

	pdf := render(doc)
	require.NoError(t, pdf.Error())
	assert.Greater(t, pdf.PageCount(), 1)
}

func TestPDFReport_FailedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "crypto_report.pdf")
	assert.Error(t, NewPDFReport().WriteReport(sampleDoc(), path))
}
