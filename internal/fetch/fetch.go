// 包 fetch 封装对 Reddit 只读 JSON 端点的 HTTP 访问：
// - 同一时刻只允许一个在途请求，两次请求起始之间保持最小间隔
// - 失败时不自动重试，重试策略由上层编排决定
// - 以 *Error 区分传输错误与上游错误，供调用方分类处理
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

// Kind 为错误分类。
type Kind string

const (
	// KindTransport 网络/超时等传输层失败
	KindTransport Kind = "transport"
	// KindUpstream 非 2xx 状态或响应体不是合法 JSON
	KindUpstream Kind = "upstream"
)

// Error 为抓取失败的类型化错误。
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport 判断是否为传输层错误。
func IsTransport(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindTransport
}

// Client 为串行限速的 JSON 客户端。
type Client struct {
	http  *http.Client
	delay time.Duration

	mu        sync.Mutex
	lastStart time.Time
}

// Options 为客户端构造参数。
type Options struct {
	// Delay 两次请求起始之间的最小间隔，<=0 时默认 2s
	Delay time.Duration
	// Timeout 单次请求超时，<=0 时默认 10s
	Timeout time.Duration
}

// New 创建客户端。
func New(opts Options) *Client {
	if opts.Delay <= 0 {
		opts.Delay = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		http:  &http.Client{Transport: transport, Timeout: opts.Timeout},
		delay: opts.Delay,
	}
}

// GetJSON 发起一次 GET 请求并将响应体解码到 v。
// 限速对失败的请求同样生效：下一次请求仍需等满间隔。
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.lastStart.IsZero() {
		wait := c.delay - time.Since(c.lastStart)
		if wait > 0 {
			select {
			case <-ctx.Done():
				return &Error{Kind: KindTransport, URL: rawURL, Err: ctx.Err()}
			case <-time.After(wait):
			}
		}
	}
	c.lastStart = time.Now()

	full := rawURL
	if len(params) > 0 {
		full = rawURL + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return &Error{Kind: KindTransport, URL: full, Err: err}
	}
	// 使用常见浏览器 UA，减少 403/反爬误判；支持环境变量覆盖（RADAR_UA）
	ua := os.Getenv("RADAR_UA")
	if ua == "" {
		ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, URL: full, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &Error{Kind: KindUpstream, URL: full, Err: fmt.Errorf("http status: %s", resp.Status)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return &Error{Kind: KindTransport, URL: full, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Kind: KindUpstream, URL: full, Err: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}
