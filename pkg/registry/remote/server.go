package remote

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"

	"github.com/quic-go/quic-go"

	"github.com/eigerco/scaledecode/pkg/log"
	"github.com/eigerco/scaledecode/pkg/registry"
	"github.com/eigerco/scaledecode/pkg/scaledecode"
)

// Server answers Resolve requests over QUIC, backed by any
// scaledecode.Resolver (typically a registry.MemoryRegistry loaded
// from a chain's metadata export).
type Server struct {
	resolver scaledecode.Resolver
	listener *quic.Listener
}

// Listen starts a Server on addr using cert for its TLS identity.
// Grounded on pkg/network/transport.Transport.Start, trimmed to a
// single ALPN and no per-connection handler registry: this server
// speaks exactly one protocol.
func Listen(addr string, cert *tls.Certificate, resolver scaledecode.Resolver) (*Server, error) {
	tlsConf := &tls.Config{
		Certificates: []tls.Certificate{*cert},
		NextProtos:   []string{ALPN},
		MinVersion:   tls.VersionTLS13,
	}
	listener, err := quic.ListenAddr(addr, tlsConf, &quic.Config{})
	if err != nil {
		return nil, fmt.Errorf("remote: listen: %w", err)
	}
	return &Server{resolver: resolver, listener: listener}, nil
}

// Addr returns the address the server is actually listening on
// (useful when addr was ":0").
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve accepts connections until ctx is cancelled or the listener is
// closed.
func (s *Server) Serve(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("remote: accept: %w", err)
		}
		go s.handleConn(ctx, conn)
	}
}

// Close shuts down the listener.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) handleConn(ctx context.Context, conn quic.Connection) {
	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			return
		}
		go s.handleStream(stream)
	}
}

func (s *Server) handleStream(stream quic.Stream) {
	defer stream.Close()

	scanner := bufio.NewScanner(stream)
	if !scanner.Scan() {
		return
	}

	var req request
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		log.Net.Warn().Err(err).Msg("malformed request")
		return
	}

	var resp response
	shape, err := s.resolver.Resolve(scaledecode.TypeID(req.TypeID))
	if err != nil {
		resp.Error = err.Error()
	} else {
		encoded, eerr := registry.EncodeShape(shape)
		if eerr != nil {
			resp.Error = eerr.Error()
		} else {
			resp.Shape = encoded
		}
	}

	out, err := writeJSON(resp)
	if err != nil {
		log.Net.Warn().Err(err).Msg("failed to encode response")
		return
	}
	if _, err := stream.Write(out); err != nil {
		log.Net.Warn().Err(err).Uint32("type_id", req.TypeID).Msg("failed to write response")
	}
}
