package websocket

import (
	"testing"
	"time"
)

func TestPublishDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, nil)
	hub.Register <- client

	hub.Publish([]byte(`{"action":"event"}`))

	select {
	case msg := <-client.Send:
		if string(msg) != `{"action":"event"}` {
			t.Errorf("unexpected message %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("client never received the published message")
	}
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Publish([]byte(`{"action":"event"}`))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked after the hub was stopped")
	}
}

func TestStopClosesClientChannels(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil)
	hub.Register <- client
	hub.Stop()

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected send channel to be closed, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed on hub stop")
	}
}
