package main

import "testing"

func TestListenAddr(t *testing.T) {
	tests := []struct {
		addr, host, port string
		want             string
	}{
		{":23234", "", "", ":23234"},
		{":23234", "", "2222", ":2222"},
		{":23234", "127.0.0.1", "", "127.0.0.1:23234"},
		{"0.0.0.0:1", "::", "22", "[::]:22"},
		{"garbage", "", "", ":23234"},
	}
	for _, tt := range tests {
		if got := listenAddr(tt.addr, tt.host, tt.port); got != tt.want {
			t.Errorf("listenAddr(%q, %q, %q) = %q, want %q", tt.addr, tt.host, tt.port, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/player")
	if got := expandHome("~/.arcade/log"); got != "/home/player/.arcade/log" {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("expandHome changed an absolute path: %q", got)
	}
}
