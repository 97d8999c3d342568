package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"claimbot/internal/claim"
	"claimbot/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) TestFind() {
	ctx := context.Background()

	s.Run("missing conversation returns ErrNotFound", func() {
		_, err := s.store.Find(ctx, 42)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("saved record round-trips", func() {
		rec := claim.Record{
			ConversationID: 42,
			Marketplace:    claim.MarketplaceWB,
			Reason:         "товар бракованный",
			Step:           claim.StepEnteringFullName,
		}
		s.Require().NoError(s.store.Save(ctx, rec))

		got, err := s.store.Find(ctx, 42)
		s.NoError(err)
		s.Equal(rec, got)
	})
}

func (s *InMemoryStoreSuite) TestSaveReplaces() {
	ctx := context.Background()

	first := claim.Record{ConversationID: 7, Step: claim.StepChoosingMarketplace}
	s.Require().NoError(s.store.Save(ctx, first))

	second := claim.Record{
		ConversationID: 7,
		Marketplace:    claim.MarketplaceOzon,
		Step:           claim.StepEnteringReason,
	}
	s.Require().NoError(s.store.Save(ctx, second))

	got, err := s.store.Find(ctx, 7)
	s.NoError(err)
	s.Equal(second, got)
}

func (s *InMemoryStoreSuite) TestClear() {
	ctx := context.Background()

	s.Run("clearing an absent record is not an error", func() {
		s.NoError(s.store.Clear(ctx, 99))
	})

	s.Run("cleared record is gone", func() {
		rec := claim.Record{ConversationID: 99, Step: claim.StepEnteringPrice}
		s.Require().NoError(s.store.Save(ctx, rec))
		s.Require().NoError(s.store.Clear(ctx, 99))

		_, err := s.store.Find(ctx, 99)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestConversationsAreIsolated() {
	ctx := context.Background()

	a := claim.Record{ConversationID: 1, Marketplace: claim.MarketplaceWB, Step: claim.StepEnteringReason}
	b := claim.Record{ConversationID: 2, Marketplace: claim.MarketplaceYandex, Step: claim.StepEnteringPrice}
	s.Require().NoError(s.store.Save(ctx, a))
	s.Require().NoError(s.store.Save(ctx, b))

	s.Require().NoError(s.store.Clear(ctx, 1))

	_, err := s.store.Find(ctx, 1)
	s.ErrorIs(err, sentinel.ErrNotFound)

	got, err := s.store.Find(ctx, 2)
	s.NoError(err)
	s.Equal(b, got)
}
