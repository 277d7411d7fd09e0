package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		cfg  Config
		want zap.AtomicLevel
		ok   bool
	}{
		{cfg: Config{}, want: zap.NewAtomicLevelAt(zap.WarnLevel), ok: true},
		{cfg: Config{Level: "debug", Encoding: "json"}, want: zap.NewAtomicLevelAt(zap.DebugLevel), ok: true},
		{cfg: Config{Level: "ERROR", Encoding: "Console", ColorEnabled: true}, want: zap.NewAtomicLevelAt(zap.ErrorLevel), ok: true},
		{cfg: Config{Level: "loud"}},
		{cfg: Config{Encoding: "xml"}},
	}
	for _, tt := range tests {
		log, err := New(tt.cfg)
		if !tt.ok {
			if err == nil {
				t.Fatalf("New(%+v) expected error", tt.cfg)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%+v): %v", tt.cfg, err)
		}
		if !log.Core().Enabled(tt.want.Level()) {
			t.Fatalf("New(%+v) drops %s", tt.cfg, tt.want.Level())
		}
		if tt.want.Level() > zap.DebugLevel && log.Core().Enabled(tt.want.Level()-1) {
			t.Fatalf("New(%+v) enables below %s", tt.cfg, tt.want.Level())
		}
	}
}
