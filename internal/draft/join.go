package draft

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Join registers (or re-registers) a player in a room and keeps the draft
// order in sync with the submitted display name. Identity is the
// case-insensitively compared email; the display name is mutable across
// joins. The order write is a full overwrite, and only happens when the
// order actually changed.
func Join(ctx context.Context, s Store, code, name, email string) (Player, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if code == "" || name == "" || email == "" {
		return Player{}, ErrValidation
	}

	room, err := s.EnsureRoom(ctx, code)
	if err != nil {
		return Player{}, fmt.Errorf("join: ensure room: %w", err)
	}

	prev, existed, err := s.GetPlayerByEmail(ctx, code, email)
	if err != nil {
		return Player{}, fmt.Errorf("join: lookup player: %w", err)
	}

	if err := s.UpsertPlayer(ctx, code, email, name); err != nil {
		return Player{}, fmt.Errorf("join: upsert player: %w", err)
	}

	order := room.Order
	if existed {
		if prev.Name != name {
			order = RenameInPlace(order, prev.Name, name)
		}
	} else {
		order = AppendIfAbsent(order, name)
	}
	if !slices.Equal(order, room.Order) {
		if err := s.SetRoomOrder(ctx, code, order); err != nil {
			return Player{}, fmt.Errorf("join: persist order: %w", err)
		}
	}

	return Player{RoomCode: code, Email: email, Name: name}, nil
}

// LoadState assembles the full board view in one pass over the store. If the
// room has no draft order yet and at least two players have joined, it seeds
// the order from join order and persists it, so the first board load after a
// draft fills in works without a manual step.
func LoadState(ctx context.Context, s Store, code string) (State, error) {
	room, err := s.EnsureRoom(ctx, code)
	if err != nil {
		return State{}, fmt.Errorf("load state: room: %w", err)
	}

	players, err := s.ListPlayers(ctx, code)
	if err != nil {
		return State{}, fmt.Errorf("load state: players: %w", err)
	}

	if len(room.Order) == 0 && len(players) >= 2 {
		names := make([]string, 0, len(players))
		for _, p := range players {
			names = append(names, p.Name)
		}
		if err := s.SetRoomOrder(ctx, code, names); err != nil {
			return State{}, fmt.Errorf("load state: seed order: %w", err)
		}
		room.Order = names
	}

	games, err := s.ListGames(ctx, code)
	if err != nil {
		return State{}, fmt.Errorf("load state: games: %w", err)
	}

	active, _ := ActiveName(room.Order, room.Turn, room.Snake)
	return State{
		Code:    room.Code,
		Order:   room.Order,
		Turn:    room.Turn,
		Snake:   room.Snake,
		Players: players,
		Games:   games,
		Active:  active,
	}, nil
}
