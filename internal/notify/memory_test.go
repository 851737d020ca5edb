package notify

import (
	"context"
	"testing"
)

func TestMemory_PublishReachesSubscribersOfThatRoomOnly(t *testing.T) {
	bus := NewMemory()
	ctx := context.Background()

	var got, other int
	unsub, err := bus.Subscribe(ctx, "R1", func() { got++ })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()
	if _, err := bus.Subscribe(ctx, "R2", func() { other++ }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "R1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got != 1 || other != 0 {
		t.Fatalf("got=%d other=%d, want 1/0", got, other)
	}
}

func TestMemory_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemory()
	ctx := context.Background()

	var got int
	unsub, err := bus.Subscribe(ctx, "R1", func() { got++ })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	unsub()
	if err := bus.Publish(ctx, "R1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected no delivery after unsubscribe, got %d", got)
	}
}
