package remote

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/eigerco/scaledecode/pkg/log"
	"github.com/eigerco/scaledecode/pkg/registry"
	"github.com/eigerco/scaledecode/pkg/scaledecode"
)

// DialTimeout bounds how long Dial waits for the QUIC handshake.
const DialTimeout = 10 * time.Second

// Client is a scaledecode.Resolver that fetches shapes from a remote
// Server over a single long-lived QUIC connection, opening one stream
// per Resolve call. It has no local cache of its own; wrap it in a
// registry.CachedResolver for that.
type Client struct {
	conn quic.Connection

	mu sync.Mutex
}

var _ scaledecode.Resolver = (*Client)(nil)

// Dial opens a connection to a remote.Server at addr. Certificate
// verification is skipped (InsecureSkipVerify), mirroring the teacher
// transport's self-signed-certificate trust model: the registry's
// identity is not established by a CA chain, and Dial does no
// certificate pinning of its own.
func Dial(ctx context.Context, addr string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()

	tlsConf := &tls.Config{
		NextProtos:         []string{ALPN},
		MinVersion:         tls.VersionTLS13,
		InsecureSkipVerify: true,
	}
	conn, err := quic.DialAddr(ctx, addr, tlsConf, &quic.Config{})
	if err != nil {
		return nil, fmt.Errorf("remote: dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Resolve implements scaledecode.Resolver by round-tripping a request
// over a fresh QUIC stream.
func (c *Client) Resolve(id scaledecode.TypeID) (scaledecode.Shape, error) {
	c.mu.Lock()
	stream, err := c.conn.OpenStreamSync(context.Background())
	c.mu.Unlock()
	if err != nil {
		return scaledecode.Shape{}, fmt.Errorf("remote: open stream: %w", err)
	}
	defer stream.Close()

	out, err := writeJSON(request{TypeID: uint32(id)})
	if err != nil {
		return scaledecode.Shape{}, err
	}
	if _, err := stream.Write(out); err != nil {
		return scaledecode.Shape{}, fmt.Errorf("remote: write request: %w", err)
	}

	scanner := bufio.NewScanner(stream)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return scaledecode.Shape{}, fmt.Errorf("remote: read response: %w", err)
		}
		return scaledecode.Shape{}, fmt.Errorf("remote: connection closed without a response")
	}

	var resp response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return scaledecode.Shape{}, fmt.Errorf("remote: decoding response: %w", err)
	}
	if resp.Error != "" {
		return scaledecode.Shape{}, fmt.Errorf("remote: %s", resp.Error)
	}

	shape, err := registry.DecodeShape(resp.Shape)
	if err != nil {
		return scaledecode.Shape{}, fmt.Errorf("remote: decoding shape: %w", err)
	}

	log.Net.Debug().Uint32("type_id", uint32(id)).Msg("resolved via remote")
	return shape, nil
}

// Close closes the underlying QUIC connection.
func (c *Client) Close() error {
	return c.conn.CloseWithError(0, "")
}
