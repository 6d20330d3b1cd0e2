package logger

import "testing"

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		json  bool
		debug bool
	}{
		{json: false, debug: false},
		{json: true, debug: true},
	} {
		logger, err := New(tt.json, tt.debug)
		if err != nil {
			t.Fatalf("New(%v, %v) returned error: %v", tt.json, tt.debug, err)
		}
		if got := logger.Core().Enabled(-1); got != tt.debug {
			t.Fatalf("New(%v, %v): debug enabled = %v", tt.json, tt.debug, got)
		}
	}
}
