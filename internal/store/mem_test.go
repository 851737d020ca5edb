package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/notify"
)

func TestMem_GetRoom_Unknown(t *testing.T) {
	s := NewMem(nil)
	_, err := s.GetRoom(context.Background(), "NOPE")
	require.ErrorIs(t, err, draft.ErrRoomNotFound)
}

func TestMem_ClaimGame_ConditionalOnUnclaimed(t *testing.T) {
	ctx := context.Background()
	s := NewMem(nil)

	_, err := s.EnsureRoom(ctx, "R1")
	require.NoError(t, err)
	require.NoError(t, s.InsertGame(ctx, draft.Game{RoomCode: "R1", Opponent: "New York"}))
	games, err := s.ListGames(ctx, "R1")
	require.NoError(t, err)

	matched, err := s.ClaimGame(ctx, "R1", games[0].ID, "Alice")
	require.NoError(t, err)
	require.EqualValues(t, 1, matched)

	// Second claim must not match, and must not overwrite.
	matched, err = s.ClaimGame(ctx, "R1", games[0].ID, "Bob")
	require.NoError(t, err)
	require.EqualValues(t, 0, matched)

	games, err = s.ListGames(ctx, "R1")
	require.NoError(t, err)
	require.Equal(t, "Alice", *games[0].PickedBy)
}

func TestMem_MutationsPublishInvalidations(t *testing.T) {
	ctx := context.Background()
	bus := notify.NewMemory()
	s := NewMem(bus)

	var fired int
	unsub, err := bus.Subscribe(ctx, "R1", func() { fired++ })
	require.NoError(t, err)
	defer unsub()

	_, err = s.EnsureRoom(ctx, "R1")
	require.NoError(t, err)
	require.NoError(t, s.SetRoomOrder(ctx, "R1", []string{"A"}))
	require.NoError(t, s.SetRoomSnake(ctx, "R1", true))
	require.NoError(t, s.AdvanceTurn(ctx, "R1"))
	require.NoError(t, s.UpsertPlayer(ctx, "R1", "a@x.com", "A"))

	require.Equal(t, 4, fired)
}

func TestMem_ReturnedStateIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewMem(nil)

	_, err := s.EnsureRoom(ctx, "R1")
	require.NoError(t, err)
	require.NoError(t, s.SetRoomOrder(ctx, "R1", []string{"A", "B"}))

	room, err := s.GetRoom(ctx, "R1")
	require.NoError(t, err)
	room.Order[0] = "mutated"

	again, err := s.GetRoom(ctx, "R1")
	require.NoError(t, err)
	require.Equal(t, "A", again.Order[0])
}
