package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/notify"
)

// Mem is a mutex-guarded in-memory Room Store. It exists for tests and keeps
// the same contract as Postgres, including the atomic conditional claim.
type Mem struct {
	mu      sync.Mutex
	rooms   map[string]*draft.Room
	players map[string][]draft.Player
	games   map[string][]draft.Game
	nextID  uint
	bus     notify.Bus
}

func NewMem(bus notify.Bus) *Mem {
	return &Mem{
		rooms:   make(map[string]*draft.Room),
		players: make(map[string][]draft.Player),
		games:   make(map[string][]draft.Game),
		nextID:  1,
		bus:     bus,
	}
}

func (m *Mem) notifyRoom(ctx context.Context, code string) {
	if m.bus != nil {
		_ = m.bus.Publish(ctx, code)
	}
}

func (m *Mem) GetRoom(ctx context.Context, code string) (draft.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[code]
	if !ok {
		return draft.Room{}, draft.ErrRoomNotFound
	}
	out := *room
	out.Order = slices.Clone(room.Order)
	return out, nil
}

func (m *Mem) EnsureRoom(ctx context.Context, code string) (draft.Room, error) {
	m.mu.Lock()
	if _, ok := m.rooms[code]; !ok {
		m.rooms[code] = &draft.Room{Code: code}
	}
	room := *m.rooms[code]
	room.Order = slices.Clone(m.rooms[code].Order)
	m.mu.Unlock()
	return room, nil
}

func (m *Mem) SetRoomOrder(ctx context.Context, code string, order []string) error {
	m.mu.Lock()
	if room, ok := m.rooms[code]; ok {
		room.Order = slices.Clone(order)
	}
	m.mu.Unlock()
	m.notifyRoom(ctx, code)
	return nil
}

func (m *Mem) SetRoomSnake(ctx context.Context, code string, snake bool) error {
	m.mu.Lock()
	if room, ok := m.rooms[code]; ok {
		room.Snake = snake
	}
	m.mu.Unlock()
	m.notifyRoom(ctx, code)
	return nil
}

func (m *Mem) AdvanceTurn(ctx context.Context, code string) error {
	m.mu.Lock()
	if room, ok := m.rooms[code]; ok {
		room.Turn++
	}
	m.mu.Unlock()
	m.notifyRoom(ctx, code)
	return nil
}

func (m *Mem) ListPlayers(ctx context.Context, code string) ([]draft.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.players[code]), nil
}

func (m *Mem) GetPlayerByEmail(ctx context.Context, code, email string) (draft.Player, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ci := strings.ToLower(email)
	for _, p := range m.players[code] {
		if p.EmailCI == ci {
			return p, true, nil
		}
	}
	return draft.Player{}, false, nil
}

func (m *Mem) UpsertPlayer(ctx context.Context, code, email, name string) error {
	m.mu.Lock()
	ci := strings.ToLower(email)
	updated := false
	for i, p := range m.players[code] {
		if p.EmailCI == ci {
			m.players[code][i].Name = name
			m.players[code][i].Email = email
			updated = true
			break
		}
	}
	if !updated {
		m.players[code] = append(m.players[code], draft.Player{
			ID:        m.nextID,
			RoomCode:  code,
			Email:     email,
			EmailCI:   ci,
			Name:      name,
			CreatedAt: time.Now(),
		})
		m.nextID++
	}
	m.mu.Unlock()
	m.notifyRoom(ctx, code)
	return nil
}

func (m *Mem) ListGames(ctx context.Context, code string) ([]draft.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.games[code]), nil
}

func (m *Mem) InsertGame(ctx context.Context, g draft.Game) error {
	m.mu.Lock()
	g.ID = m.nextID
	m.nextID++
	m.games[g.RoomCode] = append(m.games[g.RoomCode], g)
	m.mu.Unlock()
	m.notifyRoom(ctx, g.RoomCode)
	return nil
}

func (m *Mem) DeleteGame(ctx context.Context, code string, id uint) error {
	m.mu.Lock()
	m.games[code] = slices.DeleteFunc(m.games[code], func(g draft.Game) bool {
		return g.ID == id
	})
	m.mu.Unlock()
	m.notifyRoom(ctx, code)
	return nil
}

func (m *Mem) ClaimGame(ctx context.Context, code string, id uint, claimant string) (int64, error) {
	m.mu.Lock()
	var matched int64
	for i, g := range m.games[code] {
		if g.ID == id && g.PickedBy == nil {
			name := claimant
			m.games[code][i].PickedBy = &name
			matched = 1
			break
		}
	}
	m.mu.Unlock()
	if matched > 0 {
		m.notifyRoom(ctx, code)
	}
	return matched, nil
}
