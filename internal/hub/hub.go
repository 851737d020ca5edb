package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/notify"
	"github.com/ticketdraft/ticket-draft-backend/internal/session"
)

type HubMsg interface{ isHubMsg() }

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	Reply chan *session.Session // nil on creation failure
}

type RemoveSession struct {
	Code string
}

type ShutdownHub struct{}

func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub is the actor registry of live room sessions. Sessions are created on
// demand; room state itself lives in the store, so evicting a session loses
// nothing.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	store    draft.Store
	bus      notify.Bus
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, store draft.Store, bus notify.Bus, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		store:    store,
		bus:      bus,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case EnsureSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				s, err := session.New(h.ctx, msg.Code, h.store, h.bus, h.log)
				if err != nil {
					h.log.Error("create session", zap.String("room", msg.Code), zap.Error(err))
					msg.Reply <- nil
					break
				}
				h.sessions[msg.Code] = s
				msg.Reply <- s

			case RemoveSession:
				if s := h.sessions[msg.Code]; s != nil {
					s.Inbox() <- session.Shutdown{}
					delete(h.sessions, msg.Code)
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for code, s := range h.sessions {
		s.Inbox() <- session.Shutdown{}
		delete(h.sessions, code)
	}
	h.cancel()
}
