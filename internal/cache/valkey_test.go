// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"net"
	"os"
	"testing"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping after connect: %v", err)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	// Grab a free port and close it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	ln.Close()

	if _, err := ConnectValkey("127.0.0.1", port, ""); err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}
