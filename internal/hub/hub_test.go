package hub

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ticketdraft/ticket-draft-backend/internal/notify"
	"github.com/ticketdraft/ticket-draft-backend/internal/session"
	"github.com/ticketdraft/ticket-draft-backend/internal/store"
)

func recvSession(t *testing.T, ch <-chan *session.Session) *session.Session {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for session")
		return nil // unreachable
	}
}

func TestHub_Ensure_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	bus := notify.NewMemory()
	h := NewHub(ctx, store.NewMem(bus), bus, zap.NewNop())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- EnsureSession{Code: "ZED123", Reply: reply}
	s1 := recvSession(t, reply)

	h.Inbox() <- GetSession{Code: "ZED123", Reply: reply}
	s2 := recvSession(t, reply)

	if s1 == nil || s2 == nil || s1 != s2 {
		t.Fatalf("expected same session pointer")
	}
}

func TestHub_GetUnknownCode_Nil(t *testing.T) {
	ctx := context.Background()
	bus := notify.NewMemory()
	h := NewHub(ctx, store.NewMem(bus), bus, zap.NewNop())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- GetSession{Code: "NOPE99", Reply: reply}
	if s := recvSession(t, reply); s != nil {
		t.Fatalf("expected nil for unknown code")
	}
}

func TestHub_RemoveThenEnsure_NewSession(t *testing.T) {
	ctx := context.Background()
	bus := notify.NewMemory()
	h := NewHub(ctx, store.NewMem(bus), bus, zap.NewNop())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- EnsureSession{Code: "ZED123", Reply: reply}
	s1 := recvSession(t, reply)

	h.Inbox() <- RemoveSession{Code: "ZED123"}

	h.Inbox() <- EnsureSession{Code: "ZED123", Reply: reply}
	s2 := recvSession(t, reply)

	if s1 == nil || s2 == nil || s1 == s2 {
		t.Fatalf("expected a fresh session after removal")
	}
}
