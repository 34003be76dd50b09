package main

import (
	"testing"

	"github.com/vovakirdan/forge-studio/internal/engine"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{"generate", "list", "play", "render", "export", "delete", "scores", "serve", "ssh", "schema", "config", "auth"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("command %q not registered", name)
		}
	}

	cmd, _, err := rootCmd.Find([]string{"auth", "set-key"})
	if err != nil || cmd.Name() != "set-key" {
		t.Errorf("auth set-key not registered")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		def      engine.Mode
		expected engine.Mode
	}{
		{"", engine.ModeClick, engine.ModeClick},
		{"", engine.ModeLoop, engine.ModeLoop},
		{"loop", engine.ModeClick, engine.ModeLoop},
		{"click", engine.ModeLoop, engine.ModeClick},
	}
	for _, tc := range tests {
		if got := parseMode(tc.in, tc.def); got != tc.expected {
			t.Errorf("parseMode(%q, %q) = %q, expected %q", tc.in, tc.def, got, tc.expected)
		}
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"127.0.0.1:9090": "127.0.0.1:9090",
		"":               "",
	}
	for in, expected := range tests {
		if got := displayAddr(in); got != expected {
			t.Errorf("displayAddr(%q) = %q, expected %q", in, got, expected)
		}
	}
}
