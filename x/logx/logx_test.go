package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsAndTag(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	t.Cleanup(func() { SetLevel(LevelInfo) })

	l := New("touch")
	l.Debugf("hidden %d", 1)
	l.Infof("setup complete")
	l.Errorf("bus %s", "i2c1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "[touch] setup complete") {
		t.Fatalf("missing tagged info line: %q", out)
	}
	if !strings.Contains(out, "[touch] error: bus i2c1") {
		t.Fatalf("missing error line: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug, "INFO": LevelInfo, "warning": LevelWarn, "error": LevelError, "bogus": LevelInfo,
	} {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
