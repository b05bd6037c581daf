package fetch

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "net/url"
    "sync/atomic"
    "testing"
    "time"
)

func TestGetJSON_UserAgentAndDecode(t *testing.T) {
    t.Setenv("RADAR_UA", "test-agent/1.0")
    var gotUA string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotUA = r.Header.Get("User-Agent")
        _, _ = w.Write([]byte(`{"ok":true}`))
    }))
    defer srv.Close()

    cl := New(Options{Delay: time.Millisecond, Timeout: 2 * time.Second})
    var v struct{ OK bool `json:"ok"` }
    if err := cl.GetJSON(context.Background(), srv.URL, nil, &v); err != nil { t.Fatalf("get: %v", err) }
    if !v.OK { t.Fatalf("decode failed: %+v", v) }
    if gotUA != "test-agent/1.0" { t.Fatalf("user-agent = %q", gotUA) }
}

func TestGetJSON_UpstreamStatusNoRetry(t *testing.T) {
    var calls int32
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt32(&calls, 1)
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    cl := New(Options{Delay: time.Millisecond})
    var v any
    err := cl.GetJSON(context.Background(), srv.URL, nil, &v)
    if err == nil { t.Fatal("expected error") }
    var fe *Error
    if !errors.As(err, &fe) || fe.Kind != KindUpstream { t.Fatalf("kind = %v, err = %v", fe, err) }
    if n := atomic.LoadInt32(&calls); n != 1 { t.Fatalf("calls = %d, want 1 (no retry)", n) }
}

func TestGetJSON_MalformedBody(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte(`<html>not json`))
    }))
    defer srv.Close()

    cl := New(Options{Delay: time.Millisecond})
    var v any
    err := cl.GetJSON(context.Background(), srv.URL, nil, &v)
    var fe *Error
    if !errors.As(err, &fe) || fe.Kind != KindUpstream { t.Fatalf("want upstream error, got %v", err) }
}

func TestGetJSON_TransportError(t *testing.T) {
    cl := New(Options{Delay: time.Millisecond, Timeout: 500 * time.Millisecond})
    var v any
    err := cl.GetJSON(context.Background(), "http://127.0.0.1:1", nil, &v)
    if !IsTransport(err) { t.Fatalf("want transport error, got %v", err) }
}

func TestGetJSON_DelayBetweenRequests(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte(`{}`))
    }))
    defer srv.Close()

    const delay = 150 * time.Millisecond
    cl := New(Options{Delay: delay})
    var v any
    start := time.Now()
    for i := 0; i < 3; i++ {
        if err := cl.GetJSON(context.Background(), srv.URL, nil, &v); err != nil { t.Fatalf("get %d: %v", i, err) }
    }
    // 三次请求之间至少要等满两个间隔
    if elapsed := time.Since(start); elapsed < 2*delay {
        t.Fatalf("elapsed = %v, want >= %v", elapsed, 2*delay)
    }
}

func TestGetJSON_DelayAppliesAfterFailure(t *testing.T) {
    var calls int32
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if atomic.AddInt32(&calls, 1) == 1 {
            w.WriteHeader(http.StatusBadGateway)
            return
        }
        _, _ = w.Write([]byte(`{}`))
    }))
    defer srv.Close()

    const delay = 120 * time.Millisecond
    cl := New(Options{Delay: delay})
    var v any
    start := time.Now()
    _ = cl.GetJSON(context.Background(), srv.URL, nil, &v) // 失败，但同样占用间隔
    if err := cl.GetJSON(context.Background(), srv.URL, nil, &v); err != nil { t.Fatalf("get: %v", err) }
    if elapsed := time.Since(start); elapsed < delay {
        t.Fatalf("elapsed = %v, want >= %v", elapsed, delay)
    }
}

func TestGetJSON_Params(t *testing.T) {
    var got url.Values
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        got = r.URL.Query()
        _, _ = w.Write([]byte(`{}`))
    }))
    defer srv.Close()

    cl := New(Options{Delay: time.Millisecond})
    var v any
    params := url.Values{"q": {"Apple iPhone"}, "sort": {"new"}}
    if err := cl.GetJSON(context.Background(), srv.URL, params, &v); err != nil { t.Fatalf("get: %v", err) }
    if got.Get("q") != "Apple iPhone" || got.Get("sort") != "new" { t.Fatalf("params = %v", got) }
}
