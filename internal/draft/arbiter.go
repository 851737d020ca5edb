package draft

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotYourTurn = errors.New("not your turn")
var ErrAlreadyTaken = errors.New("game already taken")
var ErrValidation = errors.New("missing required fields")
var ErrRoomNotFound = errors.New("room not found")

// Arbiter performs the claim-if-unclaimed operation. Mutual exclusion is not
// implemented here: it is delegated entirely to the store's conditional write,
// which must be atomic. Two racing claims on the same game get exactly one
// success between them.
type Arbiter struct {
	store Store
}

func NewArbiter(store Store) *Arbiter {
	return &Arbiter{store: store}
}

// Claim drafts a game for claimant. It re-reads the room so the turn check
// runs against the freshest state available, then issues the conditional
// write, and only on success advances the shared turn counter by one.
//
// Outcomes: nil on success, ErrNotYourTurn, ErrAlreadyTaken, or a wrapped
// store error. On a store error the caller must not assume the claim landed;
// re-read state before retrying.
func (a *Arbiter) Claim(ctx context.Context, code string, gameID uint, claimant string) error {
	room, err := a.store.GetRoom(ctx, code)
	if err != nil {
		return fmt.Errorf("claim: read room: %w", err)
	}

	active, ok := ActiveName(room.Order, room.Turn, room.Snake)
	if !ok || active != claimant {
		return ErrNotYourTurn
	}

	matched, err := a.store.ClaimGame(ctx, code, gameID, claimant)
	if err != nil {
		return fmt.Errorf("claim: write: %w", err)
	}
	if matched == 0 {
		return ErrAlreadyTaken
	}

	// Exactly one advance per successful claim. The increment is applied in
	// the store so two racing advances cannot stomp each other.
	if err := a.store.AdvanceTurn(ctx, code); err != nil {
		return fmt.Errorf("claim: advance turn: %w", err)
	}
	return nil
}
