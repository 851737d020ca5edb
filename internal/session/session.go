package session

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/notify"
)

type Msg interface{ isSessionMsg() }

type FromClient struct {
	ClientID string
	Cmd      Command
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
	Errs     chan CmdError // per-client command failures
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   draft.State
}

// CmdError is returned to the issuing client only, with the taxonomy code
// the UI switches on.
type CmdError struct {
	Code    string // "NotYourTurn" | "AlreadyTaken" | "ValidationError" | "StoreError"
	Message string
}

type View struct {
	Version    int
	NumClients int
	State      draft.State
}

type CommandType string

const (
	CmdDraft        CommandType = "Draft"
	CmdSetSnake     CommandType = "SetSnake"
	CmdMoveOrder    CommandType = "MoveOrder"
	CmdPromoteOrder CommandType = "PromoteOrder"
	CmdResetOrder   CommandType = "ResetOrder"
	CmdShuffleOrder CommandType = "ShuffleOrder"
	CmdAddGame      CommandType = "AddGame"
	CmdRemoveGame   CommandType = "RemoveGame"
)

type Command struct {
	Type   CommandType
	Actor  string // display name of the issuing client
	GameID uint
	Snake  bool
	Index  int
	Dir    int
	Game   draft.Game // AddGame fields
}

type client struct {
	out  chan Snapshot
	errs chan CmdError
}

// Session is the per-room actor. It owns no authoritative state: every
// mutation goes through the store, and the cached snapshot is rebuilt from
// the store whenever an invalidation arrives. Invalidations are coalesced;
// one pending signal is enough because the refetch reads the latest state.
type Session struct {
	code        string
	inbox       chan Msg
	invalidated chan struct{}
	state       draft.State
	version     int
	clients     map[string]client
	store       draft.Store
	arbiter     *draft.Arbiter
	unsubscribe func()
	rng         *rand.Rand
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(parent context.Context, code string, store draft.Store, bus notify.Bus, log *zap.Logger) (*Session, error) {
	ctx, cancel := context.WithCancel(parent)

	initial, err := draft.LoadState(ctx, store, code)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Session{
		code:        code,
		inbox:       make(chan Msg, 64),
		invalidated: make(chan struct{}, 1),
		state:       initial,
		clients:     make(map[string]client),
		store:       store,
		arbiter:     draft.NewArbiter(store),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		log:         log.With(zap.String("room", code)),
		ctx:         ctx,
		cancel:      cancel,
	}

	unsub, err := bus.Subscribe(ctx, code, s.notify)
	if err != nil {
		cancel()
		return nil, err
	}
	s.unsubscribe = unsub

	go s.loop()
	return s, nil
}

// notify runs on the bus's goroutine; coalesce into a single pending signal.
func (s *Session) notify() {
	select {
	case s.invalidated <- struct{}{}:
	default:
	}
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case <-s.invalidated:
			s.refetch()

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = client{out: msg.Outbox, errs: msg.Errs}
				msg.Outbox <- Snapshot{Version: s.version, State: s.state}

			case Leave:
				delete(s.clients, msg.ClientID)

			case FromClient:
				if err := s.handle(msg.Cmd); err != nil {
					s.reportError(msg.ClientID, err)
				}

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.state,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

// handle applies one client command through the store. No broadcast happens
// here: every successful mutation publishes an invalidation, and the refetch
// it triggers is what fans the new state out.
func (s *Session) handle(cmd Command) error {
	switch cmd.Type {
	case CmdDraft:
		return s.arbiter.Claim(s.ctx, s.code, cmd.GameID, cmd.Actor)

	case CmdSetSnake:
		return s.store.SetRoomSnake(s.ctx, s.code, cmd.Snake)

	case CmdMoveOrder:
		return s.reorder(func(order []string) []string {
			return draft.MoveBy(order, cmd.Index, cmd.Dir)
		})

	case CmdPromoteOrder:
		return s.reorder(func(order []string) []string {
			return draft.PromoteToFirst(order, cmd.Index)
		})

	case CmdResetOrder:
		return s.reorder(draft.ResetAlphabetical)

	case CmdShuffleOrder:
		return s.reorder(func(order []string) []string {
			return draft.Shuffle(order, s.rng)
		})

	case CmdAddGame:
		g := cmd.Game
		if g.Date == "" || g.Time == "" || g.Day == "" || g.Opponent == "" || g.Tier == "" || g.Price <= 0 {
			return draft.ErrValidation
		}
		g.RoomCode = s.code
		g.PickedBy = nil
		return s.store.InsertGame(s.ctx, g)

	case CmdRemoveGame:
		// Removal of claimed games is refused here: the store does not
		// enforce it, but no client surface offers it either.
		for _, g := range s.state.Games {
			if g.ID == cmd.GameID && g.PickedBy != nil {
				return draft.ErrAlreadyTaken
			}
		}
		return s.store.DeleteGame(s.ctx, s.code, cmd.GameID)

	default:
		return errors.New("unsupported command")
	}
}

// reorder is the read-modify-write shared by every roster op: fresh order in,
// transformed order out, persisted as one full overwrite.
func (s *Session) reorder(op func([]string) []string) error {
	room, err := s.store.GetRoom(s.ctx, s.code)
	if err != nil {
		return err
	}
	return s.store.SetRoomOrder(s.ctx, s.code, op(room.Order))
}

func (s *Session) refetch() {
	state, err := draft.LoadState(s.ctx, s.store, s.code)
	if err != nil {
		s.log.Warn("refetch failed", zap.Error(err))
		return
	}
	s.state = state
	s.version++
	s.broadcast(Snapshot{Version: s.version, State: s.state})
}

func (s *Session) reportError(clientID string, err error) {
	c, ok := s.clients[clientID]
	if !ok {
		return
	}
	ce := CmdError{Code: errorCode(err), Message: err.Error()}
	select {
	case c.errs <- ce:
	default:
		// Client is not draining errors; drop rather than stall the loop.
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, draft.ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, draft.ErrAlreadyTaken):
		return "AlreadyTaken"
	case errors.Is(err, draft.ErrValidation):
		return "ValidationError"
	default:
		return "StoreError"
	}
}

func (s *Session) shutdown() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	for id, c := range s.clients {
		close(c.out) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, c := range s.clients {
		select {
		case c.out <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(c.out)
			delete(s.clients, id)
		}
	}
}
