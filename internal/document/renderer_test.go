package document

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimbot/internal/claim"
	"claimbot/internal/legal"
	"claimbot/pkg/platform/sentinel"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
}

func completedRecord() claim.Record {
	return claim.Record{
		ConversationID: 1,
		Marketplace:    claim.MarketplaceWB,
		Reason:         "товар бракованный",
		FullName:       "Иванов Иван Иванович",
		Address:        "г. Москва, ул. Ленина 1",
		OrderNum:       "12345",
		Price:          1500.50,
		Step:           claim.StepEnteringPrice,
	}
}

// documentXML unzips the docx payload and returns word/document.xml, where
// all visible text lives.
func documentXML(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err, "docx must be a valid zip archive")

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestRenderContainsContract(t *testing.T) {
	r := NewRenderer(legal.NewRegistry(), fixedClock)

	data, err := r.Render(completedRecord())
	require.NoError(t, err)

	xml := documentXML(t, data)

	// addressee block carries the resolved legal entity
	assert.Contains(t, xml, "ООО «Вайлдберриз»")
	assert.Contains(t, xml, "ИНН 7733545428")
	assert.Contains(t, xml, "ОГРН 1067746062411")

	// sender block
	assert.Contains(t, xml, "Иванов Иван Иванович")
	assert.Contains(t, xml, "г. Москва, ул. Ленина 1")

	// title, body, citations, demand
	assert.Contains(t, xml, "ДОСУДЕБНАЯ ПРЕТЕНЗИЯ")
	assert.Contains(t, xml, "заказ №12345")
	assert.Contains(t, xml, "товар бракованный")
	assert.Contains(t, xml, "1500.5 руб")
	assert.Contains(t, xml, "О защите прав потребителей")
	assert.Contains(t, xml, "ст. 309 ГК РФ")
	assert.Contains(t, xml, "ТРЕБУЮ:")
	assert.Contains(t, xml, "10 календарных дней")

	// date and signature placeholder
	assert.Contains(t, xml, "Дата: 15.03.2025")
	assert.Contains(t, xml, "Подпись: ____________")
}

func TestRenderEachMarketplace(t *testing.T) {
	registry := legal.NewRegistry()
	r := NewRenderer(registry, fixedClock)

	for _, m := range registry.Marketplaces() {
		rec := completedRecord()
		rec.Marketplace = m

		data, err := r.Render(rec)
		require.NoError(t, err, m)

		entity, err := registry.Lookup(m)
		require.NoError(t, err)

		xml := documentXML(t, data)
		assert.Contains(t, xml, entity.Name)
		assert.Contains(t, xml, "ИНН "+entity.TaxID)
	}
}

func TestRenderUnknownMarketplace(t *testing.T) {
	r := NewRenderer(legal.NewRegistry(), fixedClock)

	rec := completedRecord()
	rec.Marketplace = "AliExpress"

	_, err := r.Render(rec)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Pretenziya_WB.docx", Filename(claim.MarketplaceWB))
	assert.Equal(t, "Pretenziya_OZON.docx", Filename(claim.MarketplaceOzon))
	assert.Equal(t, "Pretenziya_Yandex.docx", Filename(claim.MarketplaceYandex))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1500.5", FormatPrice(1500.50))
	assert.Equal(t, "1234.56", FormatPrice(1234.56))
	assert.Equal(t, "100", FormatPrice(100))
}
