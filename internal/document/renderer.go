package document

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	docx "github.com/fumiama/go-docx"

	"claimbot/internal/claim"
	"claimbot/internal/legal"
)

// Renderer assembles the pre-trial claim document from a completed
// conversation record. It is pure apart from the injected clock: same
// record, same registry, same instant — same document.
type Renderer struct {
	registry *legal.Registry
	now      func() time.Time
}

// NewRenderer constructs a Renderer. The clock is injected so tests can pin
// the date line.
func NewRenderer(registry *legal.Registry, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{registry: registry, now: now}
}

// Filename names the generated attachment for a marketplace.
func Filename(m claim.Marketplace) string {
	return fmt.Sprintf("Pretenziya_%s.docx", m)
}

// FormatPrice renders the claim amount the way it appears in the document:
// shortest decimal form, so 1500.50 becomes "1500.5".
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// Render produces the claim as docx bytes. The marketplace must resolve in
// the legal registry; an unknown key is an error, not an empty addressee
// block.
func (r *Renderer) Render(rec claim.Record) ([]byte, error) {
	entity, err := r.registry.Lookup(rec.Marketplace)
	if err != nil {
		return nil, err
	}

	w := docx.New().WithDefaultTheme()
	price := FormatPrice(rec.Price)

	w.AddParagraph().AddText("Кому:").Bold()
	w.AddParagraph().AddText(entity.Addressee()).Bold()

	w.AddParagraph().AddText("От:")
	w.AddParagraph().AddText(rec.FullName)
	w.AddParagraph().AddText(rec.Address)
	w.AddParagraph()

	w.AddParagraph().Justification("center").AddText("ДОСУДЕБНАЯ ПРЕТЕНЗИЯ")
	w.AddParagraph()

	w.AddParagraph().AddText(fmt.Sprintf(
		"Я оформил заказ №%s на маркетплейсе %s. Возникла проблема: %s.",
		rec.OrderNum, rec.Marketplace, rec.Reason))
	w.AddParagraph().AddText(fmt.Sprintf("Стоимость товара: %s руб.", price))
	w.AddParagraph().AddText(
		"На основании ст. 18 и 22 Закона РФ «О защите прав потребителей» и ст. 309 ГК РФ")
	w.AddParagraph()

	w.AddParagraph().AddText("ТРЕБУЮ:").Bold()
	w.AddParagraph().AddText(fmt.Sprintf(
		"Вернуть денежные средства в размере %s руб. в течение 10 календарных дней.",
		price))
	w.AddParagraph()

	w.AddParagraph().AddText(fmt.Sprintf(
		"Дата: %s   Подпись: ____________", r.now().Format("02.01.2006")))

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
