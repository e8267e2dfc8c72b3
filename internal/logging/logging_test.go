package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
		wantErr   bool
	}{
		{level: "", wantWarn: true},
		{level: "debug", wantDebug: true, wantWarn: true},
		{level: "warn", wantWarn: true},
		{level: "error"},
		{level: "chatty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(&buf, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			logger.Debug("debug line")
			logger.Warn("warn line")
			out := buf.String()

			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, expected %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, expected %v", got, tt.wantWarn)
			}
			if out != "" && !strings.Contains(out, Prefix) {
				t.Errorf("output %q missing prefix %q", out, Prefix)
			}
		})
	}
}
