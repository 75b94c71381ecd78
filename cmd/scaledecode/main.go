package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/eigerco/scaledecode/pkg/log"
	"github.com/eigerco/scaledecode/pkg/registry"
	"github.com/eigerco/scaledecode/pkg/registry/remote"
	"github.com/eigerco/scaledecode/pkg/scaledecode"
)

// main decodes a hex-encoded SCALE blob against a type id, printing the
// result as JSON.
//
// go run ./cmd/scaledecode -registry metadata.json -type 3 -hex 0x2a000000
// go run ./cmd/scaledecode -remote 127.0.0.1:9000 -type 3 -hex 0x2a000000
func main() {
	registryPath := flag.String("registry", "", "path to a JSON type registry (pkg/registry's LoadJSON format)")
	remoteAddr := flag.String("remote", "", "address of a remote registry server to resolve types from instead of -registry")
	cacheDir := flag.String("cache", "", "directory for a persistent cache in front of -remote")
	typeID := flag.Uint("type", 0, "type id to decode the input as")
	hexData := flag.String("hex", "", "SCALE-encoded bytes, hex encoded (0x prefix optional)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	level, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scaledecode: bad log level: %v\n", err)
		os.Exit(1)
	}
	log.Init(log.Options{LogLevel: level, Type: log.ConsoleLogger})

	if *hexData == "" {
		fmt.Fprintln(os.Stderr, "scaledecode: -hex is required")
		os.Exit(1)
	}

	data, err := decodeHex(*hexData)
	if err != nil {
		fail("decoding -hex: %v", err)
	}

	resolver, closeResolver, err := buildResolver(*registryPath, *remoteAddr, *cacheDir)
	if err != nil {
		fail("%v", err)
	}
	defer closeResolver()

	val, rest, err := scaledecode.DecodeWithVisitor[any](data, scaledecode.TypeID(*typeID), resolver, scaledecode.JSONVisitor{})
	if err != nil {
		fail("decode: %v", err)
	}
	if len(rest) > 0 {
		log.Decode.Warn().Int("trailing_bytes", len(rest)).Msg("input had trailing bytes after decode")
	}

	out, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		fail("encoding result: %v", err)
	}
	fmt.Println(string(out))
}

func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

// buildResolver assembles a scaledecode.Resolver from the flags given,
// preferring -remote (optionally wrapped in a cache) over a local
// -registry file.
func buildResolver(registryPath, remoteAddr, cacheDir string) (scaledecode.Resolver, func(), error) {
	noop := func() {}

	if remoteAddr != "" {
		client, err := remote.Dial(context.Background(), remoteAddr)
		if err != nil {
			return nil, noop, fmt.Errorf("dialing %s: %w", remoteAddr, err)
		}
		var resolver scaledecode.Resolver = client
		closer := func() { client.Close() }

		if cacheDir != "" {
			cached, err := registry.NewCachedResolver(cacheDir, client, remoteAddr)
			if err != nil {
				client.Close()
				return nil, noop, fmt.Errorf("opening cache at %s: %w", cacheDir, err)
			}
			resolver = cached
			closer = func() {
				cached.Close()
				client.Close()
			}
		}
		return resolver, closer, nil
	}

	if registryPath == "" {
		return nil, noop, fmt.Errorf("one of -registry or -remote is required")
	}
	data, err := os.ReadFile(registryPath)
	if err != nil {
		return nil, noop, fmt.Errorf("reading %s: %w", registryPath, err)
	}
	reg, err := registry.LoadJSON(data)
	if err != nil {
		return nil, noop, fmt.Errorf("loading %s: %w", registryPath, err)
	}
	return reg, noop, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "scaledecode: "+format+"\n", args...)
	os.Exit(1)
}
