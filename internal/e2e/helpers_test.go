package e2e

import (
	"context"
	"encoding/json"
	"encoding/pem"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"

	"network-monitor/internal/stomp"
)

// feedServer is a TLS server that publishes the network layout over HTTPS and
// speaks STOMP over a WebSocket at /network-events.
type feedServer struct {
	*httptest.Server
	host, port string
	caFile     string
	login      string
	events     []string
}

func newFeedServer(t *testing.T, login string, events ...string) *feedServer {
	t.Helper()
	layout, err := os.ReadFile(filepath.Join("..", "network", "testdata", "network-layout.json"))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	fs := &feedServer{login: login, events: events}
	up := gorilla.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/network-layout.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(layout)
	})
	mux.HandleFunc("/network-events", func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fs.serveStomp(t, conn)
	})
	fs.Server = httptest.NewTLSServer(mux)
	t.Cleanup(fs.Close)

	fs.host, fs.port, err = net.SplitHostPort(fs.Listener.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	fs.caFile = filepath.Join(t.TempDir(), "ca.pem")
	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: fs.Certificate().Raw})
	if err := os.WriteFile(fs.caFile, caPEM, 0o644); err != nil {
		t.Fatalf("write ca: %v", err)
	}
	return fs
}

func (fs *feedServer) serveStomp(t *testing.T, conn *gorilla.Conn) {
	defer conn.Close()
	write := func(cmd stomp.Command, headers []stomp.Header, body string) bool {
		f, err := stomp.NewFrame(cmd, headers, body)
		if err != nil {
			t.Errorf("build %s frame: %v", cmd, err)
			return false
		}
		return conn.WriteMessage(gorilla.TextMessage, []byte(f.String())) == nil
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		f, err := stomp.ParseFrame(string(data))
		if err != nil {
			write(stomp.CommandError, []stomp.Header{{Key: stomp.HeaderMessage, Value: "malformed frame"}}, "")
			return
		}
		switch f.Command() {
		case stomp.CommandStomp, stomp.CommandConnect:
			if f.Header(stomp.HeaderLogin) != fs.login {
				write(stomp.CommandError, []stomp.Header{{Key: stomp.HeaderMessage, Value: "bad credentials"}}, "")
				return
			}
			if !write(stomp.CommandConnected, []stomp.Header{{Key: stomp.HeaderVersion, Value: "1.2"}}, "") {
				return
			}
		case stomp.CommandSubscribe:
			id, dest := f.Header(stomp.HeaderID), f.Header(stomp.HeaderDestination)
			if !write(stomp.CommandReceipt, []stomp.Header{{Key: stomp.HeaderReceiptID, Value: f.Header(stomp.HeaderReceipt)}}, "") {
				return
			}
			for i, body := range fs.events {
				if !write(stomp.CommandMessage, []stomp.Header{
					{Key: stomp.HeaderSubscription, Value: id},
					{Key: stomp.HeaderDestination, Value: dest},
					{Key: stomp.HeaderMessageID, Value: "m-" + strconv.Itoa(i)},
					{Key: stomp.HeaderContentType, Value: "application/json"},
				}, body) {
					return
				}
			}
		}
	}
}

func passengerEvent(station, kind string) string {
	b, _ := json.Marshal(map[string]string{
		"datetime":        "2020-11-01T07:18:50.234000Z",
		"passenger_event": kind,
		"station_id":      station,
	})
	return string(b)
}

func httpGetJSON(t *testing.T, url string, v any) int {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, v); err != nil {
			t.Fatalf("decode %s: %v (%s)", url, err, body)
		}
	}
	return resp.StatusCode
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
