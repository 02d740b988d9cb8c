package fuzzy

import "testing"

func TestMatch(t *testing.T) {
	arrivals := []string{"yes", "close", "no"}
	commands := []string{"/history", "/help", "/quit", "/reset"}

	tests := []struct {
		name       string
		input      string
		candidates []string
		want       string
		wantOK     bool
	}{
		{"exact", "yes", arrivals, "yes", true},
		{"case and space", "  CLOSE ", arrivals, "close", true},
		{"single letter prefix", "y", arrivals, "yes", true},
		{"prefix", "clo", arrivals, "close", true},
		{"typo", "yess", arrivals, "yes", true},
		{"transposition too far for short word", "yse", arrivals, "", false},
		{"typo in longer word", "clise", arrivals, "close", true},
		{"too far", "maybe", arrivals, "", false},
		{"empty", "   ", arrivals, "", false},
		{"ambiguous prefix", "/h", commands, "", false},
		{"command typo", "/histroy", commands, "/history", true},
		{"command prefix", "/q", commands, "/quit", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.input, tt.candidates)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
