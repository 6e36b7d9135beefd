package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
)

func testClient(hub *Hub, householdID string) *Client {
	return &Client{
		hub:         hub,
		householdID: householdID,
		send:        make(chan []byte, sendBufferSize),
	}
}

func TestHubBroadcastScopedToHousehold(t *testing.T) {
	hub := NewHub(slog.Default())

	a := testClient(hub, "house-a")
	b := testClient(hub, "house-b")
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast("house-a", NewMessage("item", "created", "x1", nil))

	select {
	case data := <-a.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != "item_created" || msg.ID != "x1" {
			t.Errorf("msg = %+v", msg)
		}
	default:
		t.Fatal("client in household did not receive broadcast")
	}

	select {
	case <-b.send:
		t.Fatal("client in another household received broadcast")
	default:
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c := testClient(hub, "house-a")
	hub.Register(c)
	if n := hub.ClientCount("house-a"); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}

	hub.Unregister(c)
	if n := hub.ClientCount("house-a"); n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}

	// Unregistering twice must not panic or double-close the channel.
	hub.Unregister(c)
}

func TestHubBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(slog.Default())

	c := &Client{hub: hub, householdID: "house-a", send: make(chan []byte)}
	hub.Register(c)

	// Nothing is draining c.send; the broadcast must not block.
	hub.Broadcast("house-a", NewMessage("item", "created", "x1", nil))
}
