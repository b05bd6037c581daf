package logx

import (
    "bytes"
    "context"
    "log/slog"
    "strings"
    "testing"
)

func TestParseLevel(t *testing.T) {
    cases := map[string]slog.Level{
        "debug": slog.LevelDebug,
        "info":  slog.LevelInfo,
        "WARN":  slog.LevelWarn,
        "error": slog.LevelError,
        "":      slog.LevelInfo,
        "bogus": slog.LevelInfo,
        "off":   silenced,
    }
    for in, want := range cases {
        if got := ParseLevel(in); got != want {
            t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
        }
    }
}

func TestPrettyHandler_ChineseLabels(t *testing.T) {
    var buf bytes.Buffer
    h := NewPrettyHandler(&buf, slog.LevelDebug, "zh-CN", "never")
    lg := slog.New(h)
    lg.Info("聚合完成", "posts", 3)
    out := buf.String()
    if !strings.Contains(out, "[信息]") { t.Fatalf("missing label: %q", out) }
    if !strings.Contains(out, "聚合完成") { t.Fatalf("missing message: %q", out) }
    if !strings.Contains(out, "posts=3") { t.Fatalf("missing attr: %q", out) }
    if strings.Contains(out, "\x1b[") { t.Fatalf("unexpected color codes: %q", out) }
}

func TestPrettyHandler_EnglishLabelsAndLevelGate(t *testing.T) {
    var buf bytes.Buffer
    h := NewPrettyHandler(&buf, slog.LevelWarn, "en", "never")
    if h.Enabled(context.Background(), slog.LevelInfo) { t.Fatal("info should be gated") }
    lg := slog.New(h)
    lg.Warn("partial failure")
    if !strings.Contains(buf.String(), "[WARN]") { t.Fatalf("output: %q", buf.String()) }
}

func TestPrettyHandler_GroupPrefixesKeys(t *testing.T) {
    var buf bytes.Buffer
    h := NewPrettyHandler(&buf, slog.LevelDebug, "en", "never")
    lg := slog.New(h).WithGroup("db").With("table", "posts").WithGroup("tx")
    lg.Info("saved", "rows", 7)
    out := buf.String()
    if !strings.Contains(out, "db.table=posts") { t.Fatalf("missing grouped attr: %q", out) }
    if !strings.Contains(out, "db.tx.rows=7") { t.Fatalf("missing nested group attr: %q", out) }

    // 原 handler 不受派生副本影响
    buf.Reset()
    slog.New(h).Info("plain", "rows", 1)
    if !strings.Contains(buf.String(), " rows=1") { t.Fatalf("base handler changed: %q", buf.String()) }
}

func TestPrettyHandler_Silenced(t *testing.T) {
    h := NewPrettyHandler(&bytes.Buffer{}, silenced, "en", "never")
    if h.Enabled(context.Background(), slog.LevelError) { t.Fatal("silenced level should gate everything") }
}

func TestShouldColor_NoColorEnv(t *testing.T) {
    t.Setenv("NO_COLOR", "1")
    if shouldColor(&bytes.Buffer{}, "always") { t.Fatal("NO_COLOR should win over always") }
}
