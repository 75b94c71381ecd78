// Package remote implements a Resolver that fetches shapes over QUIC
// from a registry server, for callers decoding against a chain's
// metadata without holding the whole portable registry in memory.
// Grounded on pkg/network/transport.Transport, trimmed from a
// multi-protocol peer-to-peer node down to a single request/response
// exchange: one stream per Resolve call, one JSON request, one JSON
// response.
package remote

import (
	"encoding/json"
	"fmt"
)

// ALPN is the TLS ALPN protocol string negotiated by client and
// server, the same role pkg/network/protocol's per-chain ALPN strings
// play for the teacher's peer connections.
const ALPN = "scaledecode-registry/1"

// request is the wire form of a single Resolve call.
type request struct {
	TypeID uint32 `json:"typeId"`
}

// response is the wire form of a single Resolve reply. Exactly one of
// Shape or Error is set. Shape is carried as the registry package's
// own encoding (via registry.EncodeShape/DecodeShape) rather than
// re-derived here, so the wire format has one definition.
type response struct {
	Shape json.RawMessage `json:"shape,omitempty"`
	Error string          `json:"error,omitempty"`
}

func writeJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("remote: encoding message: %w", err)
	}
	return append(b, '\n'), nil
}
