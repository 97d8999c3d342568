package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"claimbot/internal/claim"
	"claimbot/internal/claim/flow"
)

// EventSink receives the inbound events this adapter extracts from Telegram
// updates. The flow dispatcher implements it.
type EventSink interface {
	Submit(conv claim.ConversationID, ev flow.Event)
}

// Adapter is the thin chat transport layer. It converts Telegram updates
// into flow events and implements the flow's Messenger port; business logic
// stays out.
type Adapter struct {
	bot         *tgbotapi.BotAPI
	logger      *slog.Logger
	pollTimeout time.Duration
	httpClient  *http.Client
}

// New authenticates against the Bot API and constructs the adapter.
func New(token string, pollTimeout time.Duration, logger *slog.Logger) (*Adapter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Adapter{
		bot:         bot,
		logger:      logger,
		pollTimeout: pollTimeout,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Username returns the bot account name, for startup logging.
func (a *Adapter) Username() string {
	return a.bot.Self.UserName
}

// Run long-polls Telegram and pushes events into the sink until ctx is
// canceled.
func (a *Adapter) Run(ctx context.Context, sink EventSink) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(a.pollTimeout.Seconds())
	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			a.route(ctx, sink, update)
		}
	}
}

func (a *Adapter) route(ctx context.Context, sink EventSink, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			return
		}
		// Ack immediately so the client stops its spinner; the real reply
		// follows from the flow.
		if _, err := a.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			a.logger.WarnContext(ctx, "callback ack failed", "error", err.Error())
		}
		sink.Submit(claim.ConversationID(cb.Message.Chat.ID),
			flow.Event{Kind: flow.EventCallback, Data: cb.Data})

	case update.Message != nil:
		msg := update.Message
		conv := claim.ConversationID(msg.Chat.ID)
		switch {
		case msg.IsCommand():
			if msg.Command() == "start" {
				sink.Submit(conv, flow.Event{Kind: flow.EventStart})
			}
		case len(msg.Photo) > 0:
			data, err := a.downloadPhoto(ctx, msg.Photo)
			if err != nil {
				a.logger.WarnContext(ctx, "photo download failed",
					"conversation_id", msg.Chat.ID, "error", err.Error())
				return
			}
			sink.Submit(conv, flow.Event{Kind: flow.EventPhoto, Photo: data})
		case msg.Text != "":
			sink.Submit(conv, flow.Event{Kind: flow.EventText, Data: msg.Text})
		}
	}
}

// downloadPhoto fetches the largest size variant of the photo.
func (a *Adapter) downloadPhoto(ctx context.Context, sizes []tgbotapi.PhotoSize) ([]byte, error) {
	best := sizes[len(sizes)-1]
	url, err := a.bot.GetFileDirectURL(best.FileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch photo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch photo: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SendText implements flow.Messenger.
func (a *Adapter) SendText(_ context.Context, conv claim.ConversationID, text string) error {
	_, err := a.bot.Send(tgbotapi.NewMessage(int64(conv), text))
	return err
}

// SendMenu implements flow.Messenger: the menu renders as an inline
// keyboard, one button per row.
func (a *Adapter) SendMenu(_ context.Context, conv claim.ConversationID, text string, menu flow.Menu) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu))
	for _, opt := range menu {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Action)))
	}
	msg := tgbotapi.NewMessage(int64(conv), text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := a.bot.Send(msg)
	return err
}

// SendDocument implements flow.Messenger.
func (a *Adapter) SendDocument(_ context.Context, conv claim.ConversationID, att flow.Attachment) error {
	doc := tgbotapi.NewDocument(int64(conv), tgbotapi.FileBytes{
		Name:  att.Name,
		Bytes: att.Data,
	})
	doc.Caption = att.Caption
	_, err := a.bot.Send(doc)
	return err
}
