package httpd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

const (
	// One transport read per request; anything past this is dropped, and a
	// request split across segments is not reassembled. Known constraint
	// carried over from the device firmware.
	readBufferSize = 1024

	connDeadline = 5 * time.Second
)

// Server accepts one connection at a time, reads a single request, writes
// the response and closes. Every reply is HTTP/1.1 200 with
// Connection: close; malformed requests degrade to the home page inside the
// Router rather than producing an error status.
type Server struct {
	Addr   string
	Router *Router

	ln net.Listener
}

// Listen binds the listener. A bind failure is fatal to startup.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.ln = ln
	slog.Info("http listening", "addr", ln.Addr().String())
	return nil
}

// BoundAddr reports the listener address. Only valid after Listen.
func (s *Server) BoundAddr() net.Addr {
	return s.ln.Addr()
}

// Serve blocks accepting connections until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return ctx.Err()
			}
			slog.Warn("accept failed", "error", err)
			continue
		}
		s.serveConn(conn)
	}
}

// ListenAndServe binds and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) serveConn(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("conn close", "error", err)
		}
	}()
	start := time.Now()

	if err := conn.SetDeadline(start.Add(connDeadline)); err != nil {
		slog.Warn("set deadline failed", "error", err)
		return
	}

	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		slog.Debug("read request failed", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}
	raw := buf[:n]

	resp := s.Router.Route(raw)
	if err := writeResponse(conn, resp); err != nil {
		slog.Warn("write response failed", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}

	method, path := requestLine(raw)
	slog.Info("http request",
		"method", method,
		"path", path,
		"bytes", len(resp.Body),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// writeResponse emits the status line and headers with the length computed
// from the assembled body, then the body itself.
func writeResponse(conn net.Conn, resp Response) error {
	var head bytes.Buffer
	head.WriteString("HTTP/1.1 200 OK\r\n")
	if resp.ContentType != "" {
		head.WriteString("Content-Type: " + resp.ContentType + "\r\n")
	}
	fmt.Fprintf(&head, "Content-Length: %d\r\n", len(resp.Body))
	head.WriteString("Connection: close\r\n\r\n")

	if _, err := conn.Write(head.Bytes()); err != nil {
		return err
	}
	if len(resp.Body) == 0 {
		return nil
	}
	_, err := conn.Write(resp.Body)
	return err
}

// requestLine extracts method and path for logging. Routing itself matches
// raw tokens and does not depend on this.
func requestLine(raw []byte) (method, path string) {
	line, _, _ := bytes.Cut(raw, []byte("\r\n"))
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return "?", "?"
	}
	return string(fields[0]), string(fields[1])
}
