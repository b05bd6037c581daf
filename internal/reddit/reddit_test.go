package reddit

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "go-reddit-radar/internal/config"
    "go-reddit-radar/internal/fetch"
    "go-reddit-radar/internal/model"
)

// testWindow 覆盖 2024 全年。
var testWindow = config.Window{
    Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
    End:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
}

// inWindowUTC 为窗口内的固定时间戳。
const inWindowUTC = 1717200000 // 2024-06-01

type testSink struct {
    posts    []model.Post
    comments []model.Comment
    seen     map[string]struct{}
}

func newTestSink() *testSink { return &testSink{seen: map[string]struct{}{}} }

func (s *testSink) AddPost(p model.Post) bool {
    if _, ok := s.seen[p.ID]; ok { return false }
    s.seen[p.ID] = struct{}{}
    s.posts = append(s.posts, p)
    return true
}

func (s *testSink) AddComments(cs []model.Comment) { s.comments = append(s.comments, cs...) }

// postJSON 构造单个搜索结果节点。
func postJSON(id string, createdUTC int64, numComments int) string {
    return fmt.Sprintf(`{"kind":"t3","data":{"id":%q,"title":"post %s","author":"u_%s",
        "subreddit":"tech","created_utc":%d,"score":1,"num_comments":%d,
        "permalink":"/r/tech/comments/%s/x"}}`, id, id, id, createdUTC, numComments, id)
}

func pageJSON(after string, children []string) string {
    return fmt.Sprintf(`{"data":{"after":%q,"children":[%s]}}`, after, strings.Join(children, ","))
}

func newSearcher(srvURL string) *Searcher {
    return &Searcher{
        Client:  fetch.New(fetch.Options{Delay: time.Millisecond}),
        BaseURL: srvURL,
        Window:  testWindow,
    }
}

func TestSearch_PaginationStopsAtLimit(t *testing.T) {
    var pages int
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        pages++
        var children []string
        switch r.URL.Query().Get("after") {
        case "":
            for i := 0; i < 100; i++ {
                children = append(children, postJSON(fmt.Sprintf("p%03d", i), inWindowUTC, 0))
            }
            fmt.Fprint(w, pageJSON("t3_p099", children))
        case "t3_p099":
            for i := 0; i < 100; i++ {
                children = append(children, postJSON(fmt.Sprintf("q%03d", i), inWindowUTC, 0))
            }
            fmt.Fprint(w, pageJSON("t3_q099", children))
        default:
            fmt.Fprint(w, pageJSON("", nil))
        }
    }))
    defer srv.Close()

    sink := newTestSink()
    if err := newSearcher(srv.URL).Search(context.Background(), "tech", "apple", 150, sink); err != nil {
        t.Fatalf("search: %v", err)
    }
    if len(sink.posts) != 150 { t.Fatalf("posts = %d, want 150", len(sink.posts)) }
    if pages != 2 { t.Fatalf("pages fetched = %d, want 2", pages) }
}

func TestSearch_OutOfWindowSkippedButPaginationContinues(t *testing.T) {
    // 第一页全部在窗口外（如置顶旧帖），第二页在窗口内
    outOfWindow := testWindow.Start.Add(-time.Hour).Unix()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Query().Get("after") == "" {
            fmt.Fprint(w, pageJSON("t3_next", []string{
                postJSON("old1", outOfWindow, 0),
                postJSON("old2", outOfWindow, 0),
            }))
            return
        }
        fmt.Fprint(w, pageJSON("", []string{postJSON("new1", inWindowUTC, 0)}))
    }))
    defer srv.Close()

    sink := newTestSink()
    if err := newSearcher(srv.URL).Search(context.Background(), "tech", "apple", 10, sink); err != nil {
        t.Fatalf("search: %v", err)
    }
    if len(sink.posts) != 1 || sink.posts[0].ID != "new1" {
        t.Fatalf("posts = %+v, want only new1", sink.posts)
    }
}

func TestSearch_GlobalScope(t *testing.T) {
    var gotPath, gotRestrict string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotPath = r.URL.Path
        gotRestrict = r.URL.Query().Get("restrict_sr")
        fmt.Fprint(w, pageJSON("", nil))
    }))
    defer srv.Close()

    if err := newSearcher(srv.URL).Search(context.Background(), "ALL", "apple", 10, newTestSink()); err != nil {
        t.Fatalf("search: %v", err)
    }
    if gotPath != "/search.json" { t.Fatalf("path = %q, want /search.json", gotPath) }
    if gotRestrict != "off" { t.Fatalf("restrict_sr = %q, want off", gotRestrict) }
}

func TestSearch_ScopedSubreddit(t *testing.T) {
    var gotPath, gotRestrict string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotPath = r.URL.Path
        gotRestrict = r.URL.Query().Get("restrict_sr")
        fmt.Fprint(w, pageJSON("", nil))
    }))
    defer srv.Close()

    if err := newSearcher(srv.URL).Search(context.Background(), "tech", "apple", 10, newTestSink()); err != nil {
        t.Fatalf("search: %v", err)
    }
    if gotPath != "/r/tech/search.json" { t.Fatalf("path = %q", gotPath) }
    if gotRestrict != "on" { t.Fatalf("restrict_sr = %q, want on", gotRestrict) }
}

func TestSearch_MidPaginationFailureKeepsPartial(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Query().Get("after") == "" {
            fmt.Fprint(w, pageJSON("t3_next", []string{postJSON("a1", inWindowUTC, 0)}))
            return
        }
        w.WriteHeader(http.StatusBadGateway)
    }))
    defer srv.Close()

    sink := newTestSink()
    err := newSearcher(srv.URL).Search(context.Background(), "tech", "apple", 10, sink)
    if err == nil { t.Fatal("expected error from failed page") }
    if len(sink.posts) != 1 { t.Fatalf("partial posts = %d, want 1", len(sink.posts)) }
}

func TestSearch_FetchesCommentTree(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if strings.HasSuffix(r.URL.Path, "/x.json") {
            fmt.Fprintf(w, `[{"data":{"children":[]}},{"data":{"children":[
                {"kind":"t1","data":{"id":"c1","body":"great phone","author":"alice",
                 "created_utc":%d,"score":3,"permalink":"/r/tech/comments/p1/x/c1"}}
            ]}}]`, inWindowUTC)
            return
        }
        fmt.Fprint(w, pageJSON("", []string{postJSON("p1", inWindowUTC, 1)}))
    }))
    defer srv.Close()

    sink := newTestSink()
    if err := newSearcher(srv.URL).Search(context.Background(), "tech", "apple", 10, sink); err != nil {
        t.Fatalf("search: %v", err)
    }
    if len(sink.comments) != 1 { t.Fatalf("comments = %d, want 1", len(sink.comments)) }
    if sink.comments[0].PostID != "p1" { t.Fatalf("post_id = %q", sink.comments[0].PostID) }
}

// chainJSON 构造 depth 层单链评论树（c1 -> c2 -> ... -> cN）。
func chainJSON(depth int) []thing {
    inner := ""
    for i := depth; i >= 1; i-- {
        replies := ""
        if inner != "" {
            replies = fmt.Sprintf(`,"replies":{"data":{"children":[%s]}}`, inner)
        }
        inner = fmt.Sprintf(`{"kind":"t1","data":{"id":"c%d","body":"b%d","author":"u%d",
            "created_utc":%d,"score":1%s}}`, i, i, i, inWindowUTC, replies)
    }
    var l listing
    if err := json.Unmarshal([]byte(fmt.Sprintf(`{"data":{"children":[%s]}}`, inner)), &l); err != nil {
        panic(err)
    }
    return l.Data.Children
}

func TestWalkCommentTree_DeepChain(t *testing.T) {
    out := WalkCommentTree(chainJSON(50), "p1", "tech", testWindow)
    if len(out) != 50 { t.Fatalf("comments = %d, want 50", len(out)) }
    for i, c := range out {
        if want := fmt.Sprintf("c%d", i+1); c.ID != want {
            t.Fatalf("out[%d].ID = %q, want %q (父在子前)", i, c.ID, want)
        }
    }
}

func TestWalkCommentTree_PreOrderSiblings(t *testing.T) {
    raw := fmt.Sprintf(`{"data":{"children":[
        {"kind":"t1","data":{"id":"a","body":"x","created_utc":%d,
         "replies":{"data":{"children":[
            {"kind":"t1","data":{"id":"a1","body":"x","created_utc":%d}},
            {"kind":"t1","data":{"id":"a2","body":"x","created_utc":%d}}
         ]}}}},
        {"kind":"t1","data":{"id":"b","body":"x","created_utc":%d}}
    ]}}`, inWindowUTC, inWindowUTC, inWindowUTC, inWindowUTC)
    var l listing
    if err := json.Unmarshal([]byte(raw), &l); err != nil { t.Fatalf("unmarshal: %v", err) }
    out := WalkCommentTree(l.Data.Children, "p", "tech", testWindow)
    got := make([]string, len(out))
    for i, c := range out { got[i] = c.ID }
    want := []string{"a", "a1", "a2", "b"}
    if len(got) != len(want) { t.Fatalf("ids = %v, want %v", got, want) }
    for i := range want {
        if got[i] != want[i] { t.Fatalf("ids = %v, want %v", got, want) }
    }
}

func TestWalkCommentTree_Filtering(t *testing.T) {
    outOfWindow := testWindow.End.Add(time.Hour).Unix()
    raw := fmt.Sprintf(`{"data":{"children":[
        {"kind":"more","data":{"id":"m1"}},
        {"kind":"t1","data":{"id":"empty","body":"","created_utc":%d}},
        {"kind":"t1","data":{"id":"removed","body":"[removed]","created_utc":%d}},
        {"kind":"t1","data":{"id":"late","body":"x","created_utc":%d,
         "replies":{"data":{"children":[
            {"kind":"t1","data":{"id":"kid","body":"x","created_utc":%d}}
         ]}}}},
        {"kind":"t1","data":{"id":"ok","body":"x","created_utc":%d}}
    ]}}`, inWindowUTC, inWindowUTC, outOfWindow, inWindowUTC, inWindowUTC)
    var l listing
    if err := json.Unmarshal([]byte(raw), &l); err != nil { t.Fatalf("unmarshal: %v", err) }
    out := WalkCommentTree(l.Data.Children, "p", "tech", testWindow)
    // late 在窗口外被剔除，但它的子回复 kid 仍被下探收录
    got := make([]string, len(out))
    for i, c := range out { got[i] = c.ID }
    if len(got) != 2 || got[0] != "kid" || got[1] != "ok" {
        t.Fatalf("ids = %v, want [kid ok]", got)
    }
}

func TestItemData_Defaults(t *testing.T) {
    var d itemData
    if err := json.Unmarshal([]byte(`{"id":"x","created_utc":1717200000}`), &d); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    p := d.toPost()
    if p.Author != model.DeletedAuthor { t.Fatalf("author = %q, want deleted sentinel", p.Author) }
    if p.Score != 0 || p.UpvoteRatio != 0 || p.CommentCount != 0 { t.Fatalf("defaults: %+v", p) }
    if !p.CreatedAt.Equal(time.Unix(1717200000, 0).UTC()) { t.Fatalf("created_at = %v", p.CreatedAt) }
}

func TestHTMLToText(t *testing.T) {
    got := htmlToText("&lt;div&gt;&lt;p&gt;hello   &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;&lt;/div&gt;")
    if got != "hello world" { t.Fatalf("got %q", got) }
}
