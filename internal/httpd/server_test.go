package httpd

import (
	"context"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/station"
)

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	srv := &Server{
		Addr:   "127.0.0.1:0",
		Router: newTestRouter(),
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	return srv, srv.BoundAddr().String()
}

// roundTrip sends one raw request and reads until the server closes.
func roundTrip(t *testing.T, addr string, request string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	if _, err := conn.Write([]byte(request)); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(raw)
}

func TestServer_roundTrip(t *testing.T) {
	srv, addr := startTestServer(t)
	srv.Router.Snapshot.Set(station.Reading{Temperatura: 22.1, Umidade: 55, Pressao: 100.1, Altitude: 100})

	t.Run("estado over a real socket", func(t *testing.T) {
		raw := roundTrip(t, addr, "GET /estado HTTP/1.1\r\nHost: x\r\n\r\n")

		if !strings.HasPrefix(raw, "HTTP/1.1 200 OK\r\n") {
			t.Errorf("status line: %q", firstLine(raw))
		}
		if !strings.Contains(raw, "Connection: close\r\n") {
			t.Error("missing Connection: close")
		}
		if !strings.Contains(raw, "Content-Type: application/json\r\n") {
			t.Error("missing json content type")
		}

		head, body, ok := strings.Cut(raw, "\r\n\r\n")
		if !ok {
			t.Fatalf("no header/body separator in %q", raw)
		}
		if got, want := contentLength(t, head), len(body); got != want {
			t.Errorf("Content-Length = %d; body is %d bytes", got, want)
		}
		if !strings.Contains(body, `"temperatura":22.10`) {
			t.Errorf("body = %s", body)
		}
	})

	t.Run("page response length matches assembled body", func(t *testing.T) {
		raw := roundTrip(t, addr, "GET / HTTP/1.1\r\nHost: x\r\n\r\n")

		head, body, ok := strings.Cut(raw, "\r\n\r\n")
		if !ok {
			t.Fatalf("no header/body separator")
		}
		if got, want := contentLength(t, head), len(body); got != want {
			t.Errorf("Content-Length = %d; body is %d bytes", got, want)
		}
	})

	t.Run("config post round-trips through the store", func(t *testing.T) {
		body := "temp_offset=3.5"
		raw := roundTrip(t, addr,
			"POST /config HTTP/1.1\r\nHost: x\r\nContent-Length: "+strconv.Itoa(len(body))+"\r\n\r\n"+body)

		if !strings.HasPrefix(raw, "HTTP/1.1 200 OK\r\n") {
			t.Errorf("status line: %q", firstLine(raw))
		}
		if !strings.Contains(raw, "Content-Length: 0\r\n") {
			t.Error("config reply should have an empty body")
		}
		if got := srv.Router.Thresholds.Snapshot().Temperature.Offset; got != 3.5 {
			t.Errorf("temp_offset = %v; want 3.5", got)
		}
	})

	t.Run("connections are served sequentially and closed", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			raw := roundTrip(t, addr, "GET /navigate HTTP/1.1\r\nHost: x\r\n\r\n")
			if !strings.Contains(raw, `{"goto":null}`) {
				t.Errorf("request %d: body %q", i, raw)
			}
		}
	})
}

func TestServer_listenFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()

	srv := &Server{Addr: taken.Addr().String(), Router: newTestRouter()}
	if err := srv.Listen(); err == nil {
		t.Error("Listen on an occupied port should fail")
	}
}

func firstLine(raw string) string {
	line, _, _ := strings.Cut(raw, "\r\n")
	return line
}

func contentLength(t *testing.T, head string) int {
	t.Helper()
	for _, line := range strings.Split(head, "\r\n") {
		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				t.Fatalf("bad Content-Length %q: %v", v, err)
			}
			return n
		}
	}
	t.Fatal("no Content-Length header")
	return 0
}
