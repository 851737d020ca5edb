package draft

import (
	"context"
	"time"
)

// Room is one draft session. Order is the persisted draft order, a permutation
// of the display names of the players currently in the room. Turn only ever
// grows; the active player is derived from (Turn, Order, Snake), never stored.
type Room struct {
	Code  string   `gorm:"primaryKey;size:16" json:"code"`
	Order []string `gorm:"column:draft_order;serializer:json" json:"draft_order"`
	Turn  int      `json:"turn"`
	Snake bool     `json:"snake"`
}

// Player identity is (room, email) with email compared case-insensitively.
// EmailCI holds the folded form so the uniqueness constraint lives in the DB.
type Player struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomCode  string    `gorm:"size:16;uniqueIndex:idx_players_room_email_ci" json:"room_code"`
	Email     string    `json:"email"`
	EmailCI   string    `gorm:"size:191;uniqueIndex:idx_players_room_email_ci" json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Game is one draftable ticket. PickedBy is nil until drafted; the
// unclaimed -> claimed transition is one-way and owned by the Arbiter.
type Game struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RoomCode string  `gorm:"index;size:16" json:"room_code"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Day      string  `json:"day"`
	Opponent string  `json:"opponent"`
	Tier     string  `json:"tier"`
	Price    float64 `json:"price"`
	PickedBy *string `json:"picked_by,omitempty"`
}

// Store is the persistence surface the core needs. Implementations must make
// ClaimGame a single atomic conditional write: it may only succeed while the
// game is unclaimed, and must report how many rows it touched.
type Store interface {
	GetRoom(ctx context.Context, code string) (Room, error)
	EnsureRoom(ctx context.Context, code string) (Room, error)
	SetRoomOrder(ctx context.Context, code string, order []string) error
	SetRoomSnake(ctx context.Context, code string, snake bool) error
	AdvanceTurn(ctx context.Context, code string) error

	ListPlayers(ctx context.Context, code string) ([]Player, error)
	GetPlayerByEmail(ctx context.Context, code, email string) (Player, bool, error)
	UpsertPlayer(ctx context.Context, code, email, name string) error

	ListGames(ctx context.Context, code string) ([]Game, error)
	InsertGame(ctx context.Context, g Game) error
	DeleteGame(ctx context.Context, code string, id uint) error
	ClaimGame(ctx context.Context, code string, id uint, claimant string) (int64, error)
}

// State is everything a client needs to render the board, assembled from one
// pass over the store. It is a cache, never authoritative.
type State struct {
	Code    string   `json:"code"`
	Order   []string `json:"draft_order"`
	Turn    int      `json:"turn"`
	Snake   bool     `json:"snake"`
	Players []Player `json:"players"`
	Games   []Game   `json:"games"`
	Active  string   `json:"active,omitempty"`
}
