package claim

import "time"

// ConversationID identifies one user's chat with the bot. It maps directly
// onto the Telegram chat id.
type ConversationID int64

// Marketplace is one of the fixed set of platforms a claim can target.
type Marketplace string

const (
	MarketplaceWB     Marketplace = "WB"
	MarketplaceOzon   Marketplace = "OZON"
	MarketplaceYandex Marketplace = "Yandex"
)

// ParseMarketplace maps a raw menu code onto a known marketplace. The second
// return is false for anything outside the enumerated set.
func ParseMarketplace(raw string) (Marketplace, bool) {
	switch Marketplace(raw) {
	case MarketplaceWB, MarketplaceOzon, MarketplaceYandex:
		return Marketplace(raw), true
	}
	return "", false
}

// Title returns the user-facing display name for the marketplace.
func (m Marketplace) Title() string {
	switch m {
	case MarketplaceWB:
		return "Wildberries"
	case MarketplaceOzon:
		return "Ozon"
	case MarketplaceYandex:
		return "Яндекс.Маркет"
	}
	return string(m)
}

// Step labels the wizard position. It determines which Record fields are
// guaranteed to be populated: fields fill strictly in step order.
type Step string

const (
	StepIdle                Step = "idle"
	StepChoosingMarketplace Step = "choosing_marketplace"
	StepEnteringReason      Step = "entering_reason"
	StepEnteringFullName    Step = "entering_full_name"
	StepEnteringAddress     Step = "entering_address"
	StepEnteringOrderNum    Step = "entering_order_num"
	StepEnteringPrice       Step = "entering_price"
	StepWaitingForReceipt   Step = "waiting_for_receipt"
)

// Record is the in-progress answer set for one conversation. It lives only
// for the duration of the wizard: created on "create claim", cleared on
// completion or when the wizard is restarted.
type Record struct {
	ConversationID ConversationID `json:"conversation_id"`
	Marketplace    Marketplace    `json:"marketplace,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	FullName       string         `json:"full_name,omitempty"`
	Address        string         `json:"address,omitempty"`
	OrderNum       string         `json:"order_num,omitempty"`
	Price          float64        `json:"price,omitempty"`
	Step           Step           `json:"step"`
	StartedAt      time.Time      `json:"started_at,omitempty"`
}

// Complete reports whether every answer needed by the document renderer is
// present.
func (r Record) Complete() bool {
	return r.Marketplace != "" &&
		r.Reason != "" &&
		r.FullName != "" &&
		r.Address != "" &&
		r.OrderNum != "" &&
		r.Price > 0
}
