package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"
)

const (
	readChunkSize = 32 * 1024
	// defaultIdleGap ends a request: the protocol has no framing, so the
	// first pause after data marks the end of the payload.
	defaultIdleGap = 50 * time.Millisecond
)

// Handler processes one request payload and returns the response bytes.
type Handler func(ctx context.Context, req []byte) []byte

// Server accepts loopback connections and answers each with one response
// followed by close, the same contract the daemon follows.
type Server struct {
	// IdleGap is how long the server waits for more request bytes before
	// handing the payload to the handler. Zero means 50ms.
	IdleGap time.Duration

	addr     string
	handler  Handler
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer creates a new server. Use port 0 in addr to pick a free port.
func NewServer(addr string, handler Handler) *Server {
	return &Server{
		addr:    addr,
		handler: handler,
	}
}

// Start begins listening for connections.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	s.listener = ln

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop()
	}()
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Port returns the bound port once started.
func (s *Server) Port() int {
	_, port, err := net.SplitHostPort(s.Addr())
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(port)
	return n
}

// Stop closes the listener and waits for in-flight connections.
func (s *Server) Stop() {
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return // listener closed
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	req, err := s.readRequest(conn)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The client never half-closes, so a read error here means it went away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		var probe [1]byte
		if _, err := conn.Read(probe[:]); err != nil {
			cancel()
		}
	}()

	resp := s.handler(ctx, req)
	_ = conn.SetReadDeadline(time.Now())
	<-done
	_ = conn.SetReadDeadline(time.Time{})
	conn.Write(resp) //nolint: errcheck
}

// readRequest blocks for the first bytes, then keeps reading until the
// client pauses for IdleGap or half-closes.
func (s *Server) readRequest(conn net.Conn) ([]byte, error) {
	gap := s.IdleGap
	if gap <= 0 {
		gap = defaultIdleGap
	}
	defer conn.SetReadDeadline(time.Time{}) //nolint:errcheck

	var req []byte
	buf := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(buf)
		req = append(req, buf[:n]...)
		if err != nil {
			var netErr net.Error
			if len(req) > 0 && (errors.Is(err, io.EOF) || (errors.As(err, &netErr) && netErr.Timeout())) {
				return req, nil
			}
			return nil, err
		}
		if err := conn.SetReadDeadline(time.Now().Add(gap)); err != nil {
			return nil, err
		}
	}
}
