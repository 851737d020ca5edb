package types

import "github.com/ticketdraft/ticket-draft-backend/internal/draft"

type ClientMessage struct {
	Type     string  `json:"type"`
	GameID   uint    `json:"game_id,omitempty"`
	Snake    bool    `json:"snake,omitempty"`
	Index    int     `json:"index,omitempty"`
	Dir      int     `json:"dir,omitempty"`
	Date     string  `json:"date,omitempty"`
	Time     string  `json:"time,omitempty"`
	Day      string  `json:"day,omitempty"`
	Opponent string  `json:"opponent,omitempty"`
	Tier     string  `json:"tier,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

type ServerMessage struct {
	Type    string       `json:"type"` // "StateSnapshot" | "Error"
	Version int          `json:"version,omitempty"`
	State   *draft.State `json:"state,omitempty"`
	Code    string       `json:"code,omitempty"` // error taxonomy code
	Error   string       `json:"error,omitempty"`
}
