package crawl

import (
    "context"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "go-reddit-radar/internal/config"
    "go-reddit-radar/internal/fetch"
    "go-reddit-radar/internal/model"
)

func testConfig(t *testing.T, baseURL string, subreddits ...string) *config.Config {
    t.Helper()
    c := &config.Config{
        Brand:      "Apple",
        Product:    "iPhone",
        StartDate:  "01/01/2024",
        EndDate:    "31/12/2024",
        Subreddits: subreddits,
        Limit:      10,
        BaseURL:    baseURL,
        SimpleMode: true,
    }
    if err := c.Validate(); err != nil { t.Fatalf("validate: %v", err) }
    c.RequestDelayMS = 1
    return c
}

const inWindowUTC = 1717200000 // 2024-06-01

func TestRun_FailingForumDoesNotBlockOthers(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path == "/r/bad/search.json" {
            w.WriteHeader(http.StatusNotFound)
            return
        }
        fmt.Fprintf(w, `{"data":{"after":"","children":[
            {"kind":"t3","data":{"id":"ok1","title":"t","author":"u","subreddit":"good",
             "created_utc":%d,"score":1,"num_comments":0,"permalink":"/r/good/comments/ok1/x"}}
        ]}}`, inWindowUTC)
    }))
    defer srv.Close()

    cfg := testConfig(t, srv.URL, "bad", "good")
    col, err := New(cfg, fetch.New(fetch.Options{Delay: time.Millisecond})).Run(context.Background())
    if err != nil { t.Fatalf("run: %v", err) }
    posts, _ := col.Data()
    if len(posts) != 1 || posts[0].Subreddit != "good" {
        t.Fatalf("posts = %+v, want one from r/good", posts)
    }
}

func TestRun_EmptyResultIsNotError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        fmt.Fprint(w, `{"data":{"after":"","children":[]}}`)
    }))
    defer srv.Close()

    cfg := testConfig(t, srv.URL, "quiet")
    col, err := New(cfg, fetch.New(fetch.Options{Delay: time.Millisecond})).Run(context.Background())
    if err != nil { t.Fatalf("run: %v", err) }
    posts, comments := col.Data()
    if len(posts) != 0 || len(comments) != 0 { t.Fatalf("expected empty run") }
}

func TestRun_CanceledContext(t *testing.T) {
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    cfg := testConfig(t, "http://127.0.0.1:1", "tech")
    if _, err := New(cfg, fetch.New(fetch.Options{Delay: time.Millisecond})).Run(ctx); err == nil {
        t.Fatal("expected cancellation error")
    }
}

func TestCollector_DedupAndOrder(t *testing.T) {
    c := NewCollector()
    if !c.AddPost(model.Post{ID: "a"}) { t.Fatal("first add rejected") }
    if !c.AddPost(model.Post{ID: "b"}) { t.Fatal("second add rejected") }
    if c.AddPost(model.Post{ID: "a"}) { t.Fatal("duplicate id accepted") }
    if c.AddPost(model.Post{}) { t.Fatal("empty id accepted") }
    c.AddComments([]model.Comment{{ID: "c1", PostID: "a"}, {ID: "c2", PostID: "a"}})
    posts, comments := c.Data()
    if len(posts) != 2 || posts[0].ID != "a" || posts[1].ID != "b" {
        t.Fatalf("posts = %+v", posts)
    }
    if len(comments) != 2 || comments[0].ID != "c1" { t.Fatalf("comments = %+v", comments) }
}
