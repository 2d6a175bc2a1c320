package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialTestClient connects one websocket client to the hub under the given
// participant id and drains incoming frames until the connection closes.
func dialTestClient(t *testing.T, hub *WSHub, participantID string) (*websocket.Conn, func()) {
	t.Helper()
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(participantID, conn)
		<-done
		hub.Unregister(participantID)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial test server: %v", err)
	}

	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for i := 0; i < 100 && !hub.IsOnline(participantID); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if !hub.IsOnline(participantID) {
		srv.Close()
		t.Fatal("connection was never registered with the hub")
	}

	cleanup := func() {
		close(done)
		client.Close()
		srv.Close()
	}
	return client, cleanup
}

// Broadcast and SendToParticipant may run from parallel requests; both write
// to the same connection, so the writes must be serialized.
func TestConcurrentBroadcastAndSend(t *testing.T) {
	hub := NewWSHub()
	_, cleanup := dialTestClient(t, hub, "p1")
	defer cleanup()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Broadcast(WSMessage{Type: "tick"})
				hub.SendToParticipant("p1", WSMessage{Type: "direct"})
			}
		}()
	}
	wg.Wait()

	if !hub.IsOnline("p1") {
		t.Error("expected the connection to survive concurrent writes")
	}
}

func TestSendToDisconnectedParticipant(t *testing.T) {
	hub := NewWSHub()
	if err := hub.SendToParticipant("ghost", WSMessage{Type: "direct"}); err == nil {
		t.Error("expected error sending to a participant without a connection")
	}
}

func TestRegisterReplacesExistingConnection(t *testing.T) {
	hub := NewWSHub()
	_, cleanupFirst := dialTestClient(t, hub, "p1")
	defer cleanupFirst()
	_, cleanupSecond := dialTestClient(t, hub, "p1")
	defer cleanupSecond()

	if !hub.IsOnline("p1") {
		t.Error("expected the replacement connection to be registered")
	}
	if err := hub.SendToParticipant("p1", WSMessage{Type: "direct"}); err != nil {
		t.Errorf("expected send over the replacement connection, got %v", err)
	}
}
