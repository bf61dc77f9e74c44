package peer

import (
	"testing"
	"time"

	"github.com/copernet/bitwire/chaincfg"
)

func TestDialListenHandshake(t *testing.T) {
	cfg := &Config{Params: &chaincfg.MainNetParams, LocalVersion: 60002, Nonce: 777}

	accepted := make(chan *Connection, 1)
	go Listen("127.0.0.1:19833", cfg, func(c *Connection) {
		if err := c.SendVersion(0); err != nil {
			t.Errorf("server SendVersion: %v", err)
		}
		accepted <- c
		c.Run()
	})
	time.Sleep(50 * time.Millisecond)

	client, err := Dial("127.0.0.1:19833", &Config{Params: &chaincfg.MainNetParams, LocalVersion: 60002, Nonce: 778})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	var clientActive bool
	go client.Run()

	select {
	case server := <-accepted:
		defer server.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted the connection")
	}

	waitFor(t, func() bool { return client.Active() })
	clientActive = client.Active()
	if !clientActive {
		t.Fatal("client connection never became active")
	}
}
