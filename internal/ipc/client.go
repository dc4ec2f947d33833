package ipc

import (
	"time"

	"github.com/lydakis/zowex/internal/config"
)

// Client sends invocations to the daemon.
type Client struct {
	encoder   Encoder
	transport Transport
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	Encoder     Encoder
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// NewClient creates a client for the daemon listening at endpoint.
func NewClient(endpoint config.Endpoint, opts ClientOptions) *Client {
	enc := opts.Encoder
	if enc == nil {
		enc = TextEncoder{}
	}
	return &Client{
		encoder: enc,
		transport: &StreamTransport{
			Address:     endpoint.Address(),
			DialTimeout: opts.DialTimeout,
			ReadTimeout: opts.ReadTimeout,
		},
	}
}

// NewClientWithTransport creates a client over an arbitrary transport.
func NewClientWithTransport(enc Encoder, transport Transport) *Client {
	if enc == nil {
		enc = TextEncoder{}
	}
	return &Client{encoder: enc, transport: transport}
}

// Send transmits inv and returns the daemon's complete response.
func (c *Client) Send(inv Invocation) (string, error) {
	payload, err := c.encoder.Encode(inv)
	if err != nil {
		return "", err
	}

	resp, err := c.transport.RoundTrip(ensureNonEmpty(payload))
	if err != nil {
		return "", err
	}
	return string(resp), nil
}
