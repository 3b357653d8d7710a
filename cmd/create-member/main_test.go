package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "jo\njo@example.com\nhunter22\n", false},
		{"trims whitespace", "  jo \n jo@example.com \n hunter22 \n", false},
		{"missing username", "\njo@example.com\nhunter22\n", true},
		{"bad email", "jo\njo.example.com\nhunter22\n", true},
		{"short password", "jo\njo@example.com\nshort\n", true},
		{"eof", "jo\n", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			m, err := prompt(strings.NewReader(tc.input), &out)
			if (err != nil) != tc.wantErr {
				t.Fatalf("prompt() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && m.Username != "jo" {
				t.Errorf("username = %q, want jo", m.Username)
			}
			if !strings.Contains(out.String(), "Username: ") {
				t.Errorf("expected prompt output, got %q", out.String())
			}
		})
	}
}
