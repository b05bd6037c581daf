package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go-reddit-radar/internal/config"
	"go-reddit-radar/internal/fetch"
	"go-reddit-radar/internal/logx"
	"go-reddit-radar/internal/model"
)

// ResultSink 为采集结果的接收端（由编排层的 Collector 实现）。
// AddPost 返回该帖子是否为首次收录（跨社区按 id 去重）。
type ResultSink interface {
	AddPost(p model.Post) bool
	AddComments(cs []model.Comment)
}

// pageSize 为单页请求的结果上限（上游允许的最大值）。
const pageSize = 100

// Searcher 在单个 subreddit 内分页搜索并采集帖子与评论。
type Searcher struct {
	Client  *fetch.Client
	BaseURL string
	Window  config.Window
}

// Search 执行一个社区的完整分页采集。
// 中途抓取失败时保留已采集的部分结果并返回错误，由编排层降级为警告。
func (s *Searcher) Search(ctx context.Context, forum, query string, limit int, sink ResultSink) error {
	global := strings.EqualFold(forum, "all")
	endpoint := s.BaseURL + "/r/" + forum + "/search.json"
	restrict := "on"
	if global {
		// all 为全站搜索：不限定社区，走全局端点
		endpoint = s.BaseURL + "/search.json"
		restrict = "off"
	}

	collected := 0
	after := ""
	for collected < limit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		params := url.Values{
			"q":           {query},
			"sort":        {"new"},
			"limit":       {fmt.Sprint(pageSize)},
			"restrict_sr": {restrict},
		}
		if after != "" {
			params.Set("after", after)
		}
		var page listing
		if err := s.Client.GetJSON(ctx, endpoint, params, &page); err != nil {
			return fmt.Errorf("search page (after=%q): %w", after, err)
		}
		if len(page.Data.Children) == 0 {
			logx.Debugf("r/%s 没有更多帖子", forum)
			break
		}
		for i := range page.Data.Children {
			if collected >= limit {
				break
			}
			child := &page.Data.Children[i]
			if child.Kind != "" && child.Kind != kindPost {
				continue
			}
			d := &child.Data
			// 窗口外的帖子仅跳过，不终止分页：
			// 端点按 sort=new 排序并不保证严格时间序（置顶贴会打乱顺序）
			if !s.Window.Contains(d.createdAt()) {
				continue
			}
			if !sink.AddPost(d.toPost()) {
				continue
			}
			collected++
			if d.NumComments > 0 {
				if err := s.fetchComments(ctx, d, sink); err != nil {
					// 评论失败不影响帖子分页，记警告继续
					logx.Warnf("r/%s 获取评论失败：%s 错误=%v", forum, d.ID, err)
				}
			}
		}
		after = page.Data.After
		if after == "" {
			logx.Debugf("r/%s 已到达最后一页", forum)
			break
		}
	}
	return nil
}

// fetchComments 抓取单个帖子的完整评论树并展开写入 sink。
// 评论端点返回两元素数组，第二个元素才是评论 listing。
func (s *Searcher) fetchComments(ctx context.Context, post *itemData, sink ResultSink) error {
	var payload []listing
	if err := s.Client.GetJSON(ctx, s.BaseURL+post.Permalink+".json", nil, &payload); err != nil {
		return err
	}
	if len(payload) < 2 {
		return nil
	}
	comments := WalkCommentTree(payload[1].Data.Children, post.ID, post.Subreddit, s.Window)
	sink.AddComments(comments)
	return nil
}
