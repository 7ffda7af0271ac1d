package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestGocronLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewGocronLogger(newLogger(&buf, "debug", false))

	l.Info("job scheduled", "name", "sql_maintenance")
	l.Error("job failed", "name", "voice_cleanup", "dangling")

	out := buf.String()
	for _, want := range []string{"component=gocron", "name=sql_maintenance", "extra=dangling", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "BADKEY") {
		t.Errorf("unexpected BADKEY:\n%s", out)
	}
}
