package flow

// User-facing message texts. Kept together so wording changes never touch
// the state machine.
const (
	msgGreeting = "👋 Юрист-бот по маркетплейсам\n\n" +
		"Помогаю составить юридически корректную досудебную претензию."
	msgChooseMarketplace = "Выберите маркетплейс:"
	msgAskReason         = "Кратко опишите проблему:"
	msgAskFullName       = "Введите ФИО полностью:"
	msgAskAddress        = "Введите почтовый адрес:"
	msgAskOrderNum       = "Введите номер заказа:"
	msgAskPrice          = "Введите сумму претензии (числом):"
	msgPriceNotANumber   = "❌ Введите сумму числом."
	msgGenerating        = "⏳ Формирую документ..."
	msgDocumentReady     = "✅ Претензия готова. Распечатайте и отправьте заказным письмом."
	msgDocumentFailed    = "⚠️ Не удалось сформировать документ. Попробуйте ещё раз."
	msgAskReceiptPhoto   = "📸 Отправьте фото чека (демо-режим распознавания)."
	msgScanningReceipt   = "🔍 Распознаю чек..."

	labelCreateClaim = "📝 Создать претензию"
	labelLegalInfo   = "📚 Правовой справочник"
	labelScanReceipt = "📸 Распознать чек"
)
