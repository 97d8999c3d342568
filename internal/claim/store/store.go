package store

import (
	"context"

	"claimbot/internal/claim"
)

// Store holds in-progress conversation records. It is interface-driven to
// keep the flow controller testable and to allow swapping the in-memory
// default for a shared Redis backend without rewiring business code.
type Store interface {
	// Find returns the record for the conversation, or
	// sentinel.ErrNotFound (possibly wrapped) when none is in progress.
	Find(ctx context.Context, id claim.ConversationID) (claim.Record, error)
	// Save creates or replaces the conversation's record.
	Save(ctx context.Context, rec claim.Record) error
	// Clear drops the conversation's record. Clearing an absent record is
	// not an error.
	Clear(ctx context.Context, id claim.ConversationID) error
}
