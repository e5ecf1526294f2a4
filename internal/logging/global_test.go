// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGlobalHelpers_WriteThroughConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "trace", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { initLogger(DefaultConfig()) })

	tests := []struct {
		level string
		event func() *zerolog.Event
	}{
		{"trace", Trace},
		{"debug", Debug},
		{"info", Info},
		{"warn", Warn},
		{"error", Error},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.event().Str("k", "v").Msg("ping")

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) {
				t.Errorf("output missing level %q: %s", tt.level, out)
			}
			if !strings.Contains(out, `"ping"`) {
				t.Errorf("output missing message: %s", out)
			}
		})
	}

	// Fatal exits the process when the event is sent, so only the
	// constructor is exercised here.
	if Fatal() == nil {
		t.Error("Fatal() returned nil event")
	}
}

func TestGlobalHelpers_RespectLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "error", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { initLogger(DefaultConfig()) })

	Info().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info event emitted at error level: %s", buf.String())
	}

	Error().Msg("kept")
	if !strings.Contains(buf.String(), `"kept"`) {
		t.Errorf("error event missing: %s", buf.String())
	}
}
