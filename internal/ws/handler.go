package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/hub"
	"github.com/ticketdraft/ticket-draft-backend/internal/session"
	"github.com/ticketdraft/ticket-draft-backend/internal/types"
)

func Handler(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(r.URL.Query().Get("code"))
		name := r.URL.Query().Get("name")
		if code == "" || name == "" {
			http.Error(w, "missing code or name", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "room unavailable", http.StatusInternalServerError)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		errs := make(chan session.CmdError, 8)
		clientID := uuid.NewString()

		s.Inbox() <- session.Join{ClientID: clientID, Outbox: out, Errs: errs}
		defer func() { s.Inbox() <- session.Leave{ClientID: clientID} }()

		// Writer goroutine: snapshots and per-command errors share the socket.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			write := func(msg types.ServerMessage) {
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						return
					}
					write(types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &snap.State})
				case ce := <-errs:
					write(types.ServerMessage{Type: "Error", Code: ce.Code, Error: ce.Message})
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (session.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"bad json"}`))
				continue
			}

			cmd, ok := toCommand(cm, name)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText, []byte(`{"type":"Error","error":"unknown type"}`))
				continue
			}

			s.Inbox() <- session.FromClient{ClientID: clientID, Cmd: cmd}
		}
	}
}

func toCommand(m types.ClientMessage, actor string) (session.Command, bool) {
	switch m.Type {
	case "Draft":
		return session.Command{Type: session.CmdDraft, Actor: actor, GameID: m.GameID}, true
	case "SetSnake":
		return session.Command{Type: session.CmdSetSnake, Actor: actor, Snake: m.Snake}, true
	case "MoveOrder":
		return session.Command{Type: session.CmdMoveOrder, Actor: actor, Index: m.Index, Dir: m.Dir}, true
	case "PromoteOrder":
		return session.Command{Type: session.CmdPromoteOrder, Actor: actor, Index: m.Index}, true
	case "ResetOrder":
		return session.Command{Type: session.CmdResetOrder, Actor: actor}, true
	case "ShuffleOrder":
		return session.Command{Type: session.CmdShuffleOrder, Actor: actor}, true
	case "AddGame":
		return session.Command{Type: session.CmdAddGame, Actor: actor, Game: draft.Game{
			Date:     m.Date,
			Time:     m.Time,
			Day:      m.Day,
			Opponent: m.Opponent,
			Tier:     m.Tier,
			Price:    m.Price,
		}}, true
	case "RemoveGame":
		return session.Command{Type: session.CmdRemoveGame, Actor: actor, GameID: m.GameID}, true
	default:
		return session.Command{}, false
	}
}
