package flow

// EventKind discriminates inbound chat occurrences.
type EventKind string

const (
	// EventStart is the /start command.
	EventStart EventKind = "start"
	// EventCallback is an inline menu button press; Data carries the
	// button's action code.
	EventCallback EventKind = "callback"
	// EventText is a plain text message; Data carries the body.
	EventText EventKind = "text"
	// EventPhoto is a photo attachment; Photo carries the image bytes.
	EventPhoto EventKind = "photo"
)

// Event is one inbound occurrence scoped to a conversation. The transport
// adapter produces these; the flow service consumes them.
type Event struct {
	Kind  EventKind
	Data  string
	Photo []byte
}

// Menu action codes. The transport echoes these back verbatim when the
// matching button is pressed.
const (
	ActionCreateClaim = "create_claim"
	ActionLegalInfo   = "legal_info"
	ActionScanReceipt = "ocr_scan"

	// marketplace buttons carry the marketplace key behind this prefix
	marketplacePrefix = "m_"
)

// MenuOption is one labeled inline button.
type MenuOption struct {
	Label  string
	Action string
}

// Menu is an ordered inline option set, one button per row.
type Menu []MenuOption

// Attachment is a named binary document for delivery into the chat.
type Attachment struct {
	Name    string
	Data    []byte
	Caption string
}
