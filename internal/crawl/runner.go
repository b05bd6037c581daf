// 包 crawl 负责主流程编排：
// - 按配置顺序逐个社区执行搜索采集
// - 单个社区失败只记警告，不中断整轮运行
// - 结果统一写入单一属主的 Collector，结束后交给分析层
package crawl

import (
	"context"
	"fmt"

	"go-reddit-radar/internal/config"
	"go-reddit-radar/internal/fetch"
	"go-reddit-radar/internal/logx"
	"go-reddit-radar/internal/reddit"
)

// Runner 爬取执行器，持有配置与 HTTP 客户端。
type Runner struct {
	cfg      *config.Config
	searcher *reddit.Searcher
}

// New 创建 Runner。
func New(cfg *config.Config, cl *fetch.Client) *Runner {
	return &Runner{
		cfg: cfg,
		searcher: &reddit.Searcher{
			Client:  cl,
			BaseURL: cfg.BaseURL,
			Window:  cfg.Window(),
		},
	}
}

// Run 执行一轮采集并返回结果缓冲区。
// 整轮失败只发生在配置无效或运行被取消；零结果是成功的空运行。
func (r *Runner) Run(ctx context.Context) (*Collector, error) {
	query := r.cfg.Query()
	w := r.cfg.Window()
	logx.Infof("搜索查询：%q 时间范围：%s 至 %s", query,
		w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))

	col := NewCollector()
	for _, forum := range r.cfg.Subreddits {
		select {
		case <-ctx.Done():
			return col, fmt.Errorf("crawl canceled: %w", ctx.Err())
		default:
		}
		logx.Infof("正在搜索 r/%s...", forum)
		if err := r.searcher.Search(ctx, forum, query, r.cfg.Limit, col); err != nil {
			if ctx.Err() != nil {
				return col, fmt.Errorf("crawl canceled: %w", ctx.Err())
			}
			// 单社区失败不致命：保留已采集的部分结果，继续下一个
			logx.Warnf("搜索 r/%s 出错：%v", forum, err)
			continue
		}
	}

	posts, comments := col.Len()
	if posts == 0 && comments == 0 {
		logx.Warnf("未找到任何数据，可尝试放宽查询词或时间范围")
	} else {
		logx.Infof("共找到 %d 个相关帖子，收集 %d 条评论", posts, comments)
	}
	return col, nil
}
