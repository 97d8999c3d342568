package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimbot/internal/claim"
	"claimbot/internal/claim/store"
	"claimbot/internal/document"
	"claimbot/internal/legal"
	"claimbot/internal/platform/metrics"
	"claimbot/internal/receipt"
	"claimbot/pkg/platform/sentinel"
)

// Messenger is the outbound half of the chat transport. The flow never
// talks to the chat protocol directly.
type Messenger interface {
	SendText(ctx context.Context, conv claim.ConversationID, text string) error
	SendMenu(ctx context.Context, conv claim.ConversationID, text string, menu Menu) error
	SendDocument(ctx context.Context, conv claim.ConversationID, att Attachment) error
}

// Renderer produces the claim document for a completed record.
type Renderer interface {
	Render(rec claim.Record) ([]byte, error)
}

// Service drives the claim wizard: it reads the conversation's record,
// applies one inbound event, and writes the record back. Transport and
// document concerns stay behind the Messenger and Renderer ports.
type Service struct {
	store     store.Store
	registry  *legal.Registry
	renderer  Renderer
	analyzer  receipt.Analyzer
	messenger Messenger
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// Deps collects the Service collaborators.
type Deps struct {
	Store     store.Store
	Registry  *legal.Registry
	Renderer  Renderer
	Analyzer  receipt.Analyzer
	Messenger Messenger
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	Now       func() time.Time
}

// New validates dependencies and constructs the flow service.
func New(d Deps) (*Service, error) {
	if d.Store == nil {
		return nil, errors.New("conversation store is required")
	}
	if d.Registry == nil {
		return nil, errors.New("legal registry is required")
	}
	if d.Renderer == nil {
		return nil, errors.New("document renderer is required")
	}
	if d.Analyzer == nil {
		return nil, errors.New("receipt analyzer is required")
	}
	if d.Messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if d.Metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if d.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		store:     d.Store,
		registry:  d.Registry,
		renderer:  d.Renderer,
		analyzer:  d.Analyzer,
		messenger: d.Messenger,
		metrics:   d.Metrics,
		logger:    d.Logger,
		now:       d.Now,
	}, nil
}

// Handle applies one inbound event to the conversation's state machine.
// Events for one conversation must arrive here one at a time in order; the
// Dispatcher guarantees that.
func (s *Service) Handle(ctx context.Context, conv claim.ConversationID, ev Event) error {
	rec, err := s.store.Find(ctx, conv)
	if errors.Is(err, sentinel.ErrNotFound) {
		rec = claim.Record{ConversationID: conv, Step: claim.StepIdle}
	} else if err != nil {
		return fmt.Errorf("load conversation %d: %w", conv, err)
	}

	switch ev.Kind {
	case EventStart:
		return s.handleStart(ctx, conv)
	case EventCallback:
		return s.handleCallback(ctx, rec, ev.Data)
	case EventText:
		return s.handleText(ctx, rec, ev.Data)
	case EventPhoto:
		return s.handlePhoto(ctx, rec, ev.Photo)
	}
	s.logger.DebugContext(ctx, "ignoring unknown event kind",
		"conversation_id", int64(conv), "kind", string(ev.Kind))
	return nil
}

func (s *Service) handleStart(ctx context.Context, conv claim.ConversationID) error {
	return s.messenger.SendMenu(ctx, conv, msgGreeting, mainMenu())
}

func (s *Service) handleCallback(ctx context.Context, rec claim.Record, data string) error {
	conv := rec.ConversationID
	switch {
	case data == ActionCreateClaim:
		// Restarting the wizard always discards partial data.
		fresh := claim.Record{
			ConversationID: conv,
			Step:           claim.StepChoosingMarketplace,
			StartedAt:      s.now(),
		}
		if err := s.store.Save(ctx, fresh); err != nil {
			return err
		}
		s.metrics.IncClaimsStarted()
		return s.messenger.SendMenu(ctx, conv, msgChooseMarketplace, s.marketplaceMenu())

	case data == ActionLegalInfo:
		return s.messenger.SendText(ctx, conv, legal.Reference)

	case data == ActionScanReceipt:
		if err := s.store.Save(ctx, claim.Record{
			ConversationID: conv,
			Step:           claim.StepWaitingForReceipt,
			StartedAt:      s.now(),
		}); err != nil {
			return err
		}
		return s.messenger.SendText(ctx, conv, msgAskReceiptPhoto)

	case strings.HasPrefix(data, marketplacePrefix):
		if rec.Step != claim.StepChoosingMarketplace {
			return nil
		}
		m, ok := claim.ParseMarketplace(strings.TrimPrefix(data, marketplacePrefix))
		if !ok {
			// Unrecognized selection is silently ignored; logged so the
			// gap stays observable.
			s.logger.DebugContext(ctx, "unrecognized marketplace selection",
				"conversation_id", int64(conv), "data", data)
			return nil
		}
		rec.Marketplace = m
		rec.Step = claim.StepEnteringReason
		if err := s.store.Save(ctx, rec); err != nil {
			return err
		}
		return s.messenger.SendText(ctx, conv, msgAskReason)
	}

	s.logger.DebugContext(ctx, "unrecognized callback",
		"conversation_id", int64(conv), "data", data)
	return nil
}

func (s *Service) handleText(ctx context.Context, rec claim.Record, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	switch rec.Step {
	case claim.StepEnteringReason:
		rec.Reason = body
		rec.Step = claim.StepEnteringFullName
		return s.saveAndAsk(ctx, rec, msgAskFullName)

	case claim.StepEnteringFullName:
		rec.FullName = body
		rec.Step = claim.StepEnteringAddress
		return s.saveAndAsk(ctx, rec, msgAskAddress)

	case claim.StepEnteringAddress:
		rec.Address = body
		rec.Step = claim.StepEnteringOrderNum
		return s.saveAndAsk(ctx, rec, msgAskOrderNum)

	case claim.StepEnteringOrderNum:
		// Stored as opaque text: order formats differ per marketplace.
		rec.OrderNum = body
		rec.Step = claim.StepEnteringPrice
		return s.saveAndAsk(ctx, rec, msgAskPrice)

	case claim.StepEnteringPrice:
		return s.handlePrice(ctx, rec, body)
	}

	// Text outside the wizard (idle, choosing via buttons, waiting for a
	// photo) is ignored.
	return nil
}

func (s *Service) saveAndAsk(ctx context.Context, rec claim.Record, prompt string) error {
	if err := s.store.Save(ctx, rec); err != nil {
		return err
	}
	return s.messenger.SendText(ctx, rec.ConversationID, prompt)
}

func (s *Service) handlePrice(ctx context.Context, rec claim.Record, body string) error {
	conv := rec.ConversationID
	price, err := strconv.ParseFloat(strings.ReplaceAll(body, ",", "."), 64)
	if err != nil {
		s.metrics.IncPriceParseFailures()
		return s.messenger.SendText(ctx, conv, msgPriceNotANumber)
	}
	rec.Price = price

	if err := s.messenger.SendText(ctx, conv, msgGenerating); err != nil {
		return err
	}

	genID := uuid.NewString()
	started := s.now()
	data, err := s.renderer.Render(rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "document render failed",
			"conversation_id", int64(conv), "generation_id", genID, "error", err.Error())
		if sendErr := s.messenger.SendText(ctx, conv, msgDocumentFailed); sendErr != nil {
			return sendErr
		}
		return err
	}
	s.metrics.ObserveRenderDuration(time.Since(started))

	att := Attachment{
		Name:    document.Filename(rec.Marketplace),
		Data:    data,
		Caption: msgDocumentReady,
	}
	if err := s.messenger.SendDocument(ctx, conv, att); err != nil {
		return err
	}

	s.metrics.IncDocumentsGenerated()
	s.logger.InfoContext(ctx, "claim document delivered",
		"conversation_id", int64(conv),
		"generation_id", genID,
		"marketplace", string(rec.Marketplace),
		"size_bytes", len(data))

	return s.store.Clear(ctx, conv)
}

func (s *Service) handlePhoto(ctx context.Context, rec claim.Record, image []byte) error {
	conv := rec.ConversationID
	if rec.Step != claim.StepWaitingForReceipt {
		return nil
	}

	if err := s.messenger.SendText(ctx, conv, msgScanningReceipt); err != nil {
		return err
	}

	fields, err := s.analyzer.Analyze(ctx, image)
	if err != nil {
		return fmt.Errorf("analyze receipt for conversation %d: %w", conv, err)
	}

	if err := s.store.Clear(ctx, conv); err != nil {
		return err
	}
	s.metrics.IncReceiptScans()

	reply := fmt.Sprintf("✅ Чек распознан (демо).\nЗаказ №%s от %s.",
		fields.OrderNum, fields.ScannedAt.Format("02.01.2006"))
	return s.messenger.SendMenu(ctx, conv, reply, Menu{
		{Label: labelCreateClaim, Action: ActionCreateClaim},
	})
}

func mainMenu() Menu {
	return Menu{
		{Label: labelCreateClaim, Action: ActionCreateClaim},
		{Label: labelLegalInfo, Action: ActionLegalInfo},
		{Label: labelScanReceipt, Action: ActionScanReceipt},
	}
}

func (s *Service) marketplaceMenu() Menu {
	menu := make(Menu, 0, 3)
	for _, m := range s.registry.Marketplaces() {
		menu = append(menu, MenuOption{
			Label:  m.Title(),
			Action: marketplacePrefix + string(m),
		})
	}
	return menu
}
