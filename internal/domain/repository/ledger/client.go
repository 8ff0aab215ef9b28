package ledger

import (
	"context"
	"math/big"

	"momentchain/internal/domain/model"
)

// Client is the identity/ledger contract gateway.
type Client interface {
	// GetBalance returns the fee-token balance of owner in the smallest unit.
	GetBalance(ctx context.Context, owner string) (*big.Int, error)

	// CreateCharacter submits an identity-creation request and returns the
	// resulting character id. The handle inside profile is deterministic per
	// source account, so repeated runs target the same identity.
	CreateCharacter(ctx context.Context, profile model.CharacterProfile) (int64, error)

	// PostNotes publishes one batch of notes in a single call.
	PostNotes(ctx context.Context, notes []model.Note) error
}
