// Package test holds helpers shared by Punch tests.
package test

import (
	"net"
	"testing"
)

// ListenAddr reserves a free localhost port and returns its address. The
// port is released before returning so a server under test can bind it.
func ListenAddr(tb testing.TB) string {
	tb.Helper()
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		tb.Fatalf("reserve port: %v", err)
	}
	addr := l.Addr().String()
	if err := l.Close(); err != nil {
		tb.Fatalf("release port: %v", err)
	}
	return addr
}
