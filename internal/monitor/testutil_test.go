package monitor

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"network-monitor/internal/stomp"
)

// fakeFeed plays the events service: it accepts any login, acknowledges
// subscriptions and lets the test push messages or drop the connection.
type fakeFeed struct {
	mu           sync.Mutex
	onMessage    func(string)
	onDisconnect func(error)
	subID        string
	down         bool
	subscribed   chan string
	reject       bool
}

func newFakeFeed() *fakeFeed { return &fakeFeed{subscribed: make(chan string, 4)} }

func (f *fakeFeed) Connect(_ context.Context, onMessage func(string), onDisconnect func(error)) error {
	f.mu.Lock()
	f.onMessage, f.onDisconnect = onMessage, onDisconnect
	f.mu.Unlock()
	return nil
}

func (f *fakeFeed) Send(_ context.Context, msg string) error {
	frame, err := stomp.ParseFrame(msg)
	if err != nil {
		return err
	}
	switch frame.Command() {
	case stomp.CommandStomp:
		if f.reject {
			f.onMessage("ERROR\nmessage:bad credentials\n\n\x00")
			return nil
		}
		f.onMessage("CONNECTED\nversion:1.2\n\n\x00")
	case stomp.CommandSubscribe:
		id := frame.Header(stomp.HeaderID)
		f.mu.Lock()
		f.subID = id
		f.mu.Unlock()
		f.onMessage("RECEIPT\nreceipt-id:" + frame.Header(stomp.HeaderReceipt) + "\n\n\x00")
		f.subscribed <- id
	}
	return nil
}

func (f *fakeFeed) Close(context.Context) error {
	f.drop(nil)
	return nil
}

func (f *fakeFeed) drop(err error) {
	f.mu.Lock()
	if f.down || f.onDisconnect == nil {
		f.mu.Unlock()
		return
	}
	f.down = true
	cb := f.onDisconnect
	f.mu.Unlock()
	cb(err)
}

func (f *fakeFeed) push(t *testing.T, contentType, body string) {
	t.Helper()
	f.mu.Lock()
	id, deliver := f.subID, f.onMessage
	f.mu.Unlock()
	headers := []stomp.Header{
		{Key: stomp.HeaderSubscription, Value: id},
		{Key: stomp.HeaderDestination, Value: "/passengers"},
		{Key: stomp.HeaderMessageID, Value: "m"},
	}
	if contentType != "" {
		headers = append(headers, stomp.Header{Key: stomp.HeaderContentType, Value: contentType})
	}
	frame, err := stomp.NewFrame(stomp.CommandMessage, headers, body)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	deliver(frame.String())
}

func waitSubscribed(t *testing.T, f *fakeFeed) string {
	t.Helper()
	select {
	case id := <-f.subscribed:
		return id
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for subscription")
		return ""
	}
}

// layoutCopy copies the test layout into a temp dir and returns its path.
func layoutCopy(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/network-layout.json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	p := filepath.Join(t.TempDir(), "network-layout.json")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return p
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met")
}
