package input

import (
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/trytobebee/snake_jinx/pkg/game"
)

func TestAction(t *testing.T) {
	tests := []struct {
		name string
		in   KeyInput
		want string
	}{
		{"arrow up", KeyInput{Key: keyboard.KeyArrowUp}, "up"},
		{"arrow left", KeyInput{Key: keyboard.KeyArrowLeft}, "left"},
		{"wasd down", KeyInput{Char: 's'}, "down"},
		{"wasd right upper", KeyInput{Char: 'D'}, "right"},
		{"space pauses", KeyInput{Key: keyboard.KeySpace}, "pause"},
		{"p pauses", KeyInput{Char: 'p'}, "pause"},
		{"restart", KeyInput{Char: 'R'}, "restart"},
		{"menu", KeyInput{Char: 'm'}, "menu"},
		{"auto", KeyInput{Char: 't'}, "auto"},
		{"unmapped", KeyInput{Char: 'x'}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Action(tt.in); got != tt.want {
				t.Errorf("Action(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestActionDirectionsRoundTrip(t *testing.T) {
	for _, key := range []keyboard.Key{keyboard.KeyArrowUp, keyboard.KeyArrowDown, keyboard.KeyArrowLeft, keyboard.KeyArrowRight} {
		in := KeyInput{Key: key}
		want, _ := ParseDirection(in)
		got, ok := game.ParseDirection(Action(in))
		if !ok || got != want {
			t.Errorf("key %v: action %q parsed to %v, want %v", key, Action(in), got, want)
		}
	}
}

func TestIsQuit(t *testing.T) {
	for _, in := range []KeyInput{{Char: 'q'}, {Char: 'Q'}, {Key: keyboard.KeyEsc}, {Key: keyboard.KeyCtrlC}} {
		if !IsQuit(in) {
			t.Errorf("expected %+v to quit", in)
		}
	}
	if IsQuit(KeyInput{Char: 'w'}) {
		t.Error("w must not quit")
	}
}
