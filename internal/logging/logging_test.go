package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", in, got, want)
		}
	}
}

func TestSetupWriter_FiltersByLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetupWriter(&buf, slog.LevelWarn)

	slog.Info("隐藏的信息")
	slog.Warn("楼栋表单缺失", "building", 12)

	out := buf.String()
	if strings.Contains(out, "隐藏的信息") {
		t.Fatalf("info should be filtered: %s", out)
	}
	if !strings.Contains(out, "楼栋表单缺失") || !strings.Contains(out, "building") {
		t.Fatalf("warn missing: %s", out)
	}
}
