package ipc

import (
	"bytes"
	"io"
	"net"
	"time"
)

// Transport carries one request/response exchange.
type Transport interface {
	RoundTrip(payload []byte) ([]byte, error)
}

var dialTimeoutFn = net.DialTimeout

// StreamTransport speaks the unframed protocol: one write, then read until
// the daemon closes the connection. End of stream is the only message
// boundary.
type StreamTransport struct {
	Address     string
	DialTimeout time.Duration
	// ReadTimeout bounds the whole response read. Zero waits for the
	// daemon to close, however long that takes.
	ReadTimeout time.Duration
}

// RoundTrip implements Transport.
func (t *StreamTransport) RoundTrip(payload []byte) ([]byte, error) {
	conn, err := dialTimeoutFn("tcp", t.Address, t.DialTimeout)
	if err != nil {
		return nil, &SessionError{Kind: ErrConnectFailed, Address: t.Address, Err: err}
	}
	defer shutdown(conn)

	if _, err := conn.Write(payload); err != nil {
		return nil, &SessionError{Kind: ErrWriteFailed, Address: t.Address, Err: err}
	}

	if t.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(t.ReadTimeout)); err != nil {
			return nil, &SessionError{Kind: ErrReadFailed, Address: t.Address, Err: err}
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		return nil, &SessionError{Kind: ErrReadFailed, Address: t.Address, Err: err}
	}
	return buf.Bytes(), nil
}

// shutdown closes both directions explicitly so the daemon observes a clean
// close, then releases the socket.
func shutdown(conn net.Conn) {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseRead()
		_ = tcp.CloseWrite()
	}
	_ = conn.Close()
}
