package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/noel/systems"
)

// tenPerRune measures text at a fixed 10 pixels per byte.
func tenPerRune(s string) int32 {
	return int32(len(s)) * 10
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int32
		want  []string
	}{
		{"empty", "   ", 100, nil},
		{"fits", "Merry Christmas", 200, []string{"Merry Christmas"}},
		{"wraps words", "May your days be bright", 120, []string{"May your", "days be", "bright"}},
		{"keeps breaks", "May your studies flourish\nand your days read like poetry.", 1000,
			[]string{"May your studies flourish", "and your days read like poetry."}},
		{"wraps after break", "Hello there\nall my good friends", 110,
			[]string{"Hello there", "all my good", "friends"}},
		{"blank line kept", "one\n\ntwo", 100, []string{"one", "", "two"}},
		{"long word alone", "extraordinarily", 50, []string{"extraordinarily"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLines(tt.text, tt.width, tenPerRune)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWrapLinesGreetings(t *testing.T) {
	for i, msg := range systems.Greetings {
		lines := wrapLines(msg, 1<<20, tenPerRune)
		if want := strings.Count(msg, "\n") + 1; len(lines) != want {
			t.Errorf("greeting %d: expected %d lines, got %d", i, want, len(lines))
		}
	}
}
