// 命令行入口：
// - 解析 flags 与 settings.yaml/topics.yaml
// - 初始化日志、限速 HTTP 客户端、数据库
// - 执行 采集→情感标注→统计分析→导出 的完整流水线
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-reddit-radar/internal/analyze"
	"go-reddit-radar/internal/config"
	"go-reddit-radar/internal/crawl"
	"go-reddit-radar/internal/export"
	"go-reddit-radar/internal/fetch"
	"go-reddit-radar/internal/logx"
	"go-reddit-radar/internal/model"
	"go-reddit-radar/internal/sentiment"
	"go-reddit-radar/internal/store"
	"go-reddit-radar/internal/topics"
)

// topN 为各项排名的默认条数。
const topN = 10

func main() {
	var (
		configPath = flag.String("config", "settings.yaml", "path to settings.yaml")
		topicsPath = flag.String("topics", "", "path to topics.yaml (optional, overrides built-in taxonomy)")
		outDir     = flag.String("out", "", "export directory (overrides EXPORT_DIR)")
		saveRaw    = flag.Bool("raw", false, "also export posts_raw.json / comments_raw.json")
	)
	flag.Parse()

	// 1) 加载配置：配置错误在任何网络活动之前即失败
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *outDir != "" {
		cfg.ExportDir = *outDir
	}

	// 2) 初始化日志：级别/格式/语言/颜色
	logx.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogLocale, cfg.LogColor)

	// 3) 话题表：默认内置，可用 topics.yaml 覆盖
	var taxonomy topics.Taxonomy
	if *topicsPath != "" {
		taxonomy, err = topics.LoadTaxonomy(*topicsPath)
		if err != nil {
			log.Fatalf("load topics: %v", err)
		}
		logx.Infof("已加载话题表：%s（%d 个话题）", *topicsPath, len(taxonomy))
	}

	// 余下步骤经 run 返回，保证失败路径也走 defer 释放资源
	if err := run(cfg, taxonomy, *saveRaw); err != nil {
		logx.Errorf("运行失败：%v", err)
		os.Exit(1)
	}
}

// run 执行 采集→情感标注→统计分析→导出→落库 的完整流水线。
func run(cfg *config.Config, taxonomy topics.Taxonomy, saveRaw bool) error {
	// 4) 数据存储：极简模式不打开数据库
	var st *store.SQLite
	if !cfg.SimpleMode {
		var err error
		st, err = store.OpenSQLite(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer st.Close()
	}

	// 5) 运行级取消：Ctrl-C 在社区之间与翻页之间生效
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if st != nil && cfg.ResetOnStart {
		if err := st.Reset(ctx); err != nil {
			logx.Warnf("启动清理数据库失败：%v", err)
		} else {
			logx.Infof("已清理数据库表（posts/comments）")
		}
	}

	// 6) 采集
	cl := fetch.New(fetch.Options{Delay: cfg.RequestDelay()})
	cr := crawl.New(cfg, cl)
	col, err := cr.Run(ctx)
	if err != nil {
		return fmt.Errorf("采集失败：%w", err)
	}
	posts, comments := col.Data()

	// 7) 情感标注（内置词表分类器，可在库内替换）
	logx.Infof("正在分析情感...")
	sentiment.Enrich(posts, comments, nil)

	// 8) 统计与话题分析
	sum := buildSummary(posts, comments, taxonomy)

	// 9) 导出
	path, err := export.WriteSummary(cfg.ExportDir, sum)
	if err != nil {
		return fmt.Errorf("export summary: %w", err)
	}
	logx.Infof("分析摘要已保存到 %s", path)
	if saveRaw {
		if err := export.WriteRaw(cfg.ExportDir, posts, comments); err != nil {
			return fmt.Errorf("export raw: %w", err)
		}
		logx.Infof("原始数据已保存到 %s/", cfg.ExportDir)
	}

	// 10) 落库
	if st != nil {
		if err := st.SavePosts(ctx, posts); err != nil {
			logx.Warnf("写入帖子失败：%v", err)
		}
		if err := st.SaveComments(ctx, comments); err != nil {
			logx.Warnf("写入评论失败：%v", err)
		}
	}
	return nil
}

// buildSummary 汇总统计/情感/话题三类摘要为导出结构。
func buildSummary(posts []model.Post, comments []model.Comment, taxonomy topics.Taxonomy) model.Summary {
	an := analyze.New(posts, comments)
	tx := topics.New(posts, comments, taxonomy)
	hashtags, mentions := tx.HashtagsAndMentions(20)
	return model.Summary{
		BasicStats:            an.BasicStats(),
		SubredditDistribution: an.SubredditDistribution(topN),
		TimeDistribution:      an.TimeDistribution(),
		EngagementStats:       an.EngagementStats(),
		SentimentDistribution: sentiment.Distribution(posts, comments),
		SentimentBySubreddit:  sentiment.BySubreddit(posts, comments),
		SentimentOverTime:     sentiment.OverTime(posts, comments),
		SentimentExtremes:     sentiment.Extremes(posts, comments, 5),
		TopPosts:              an.TopPosts(topN),
		TopUsers:              an.TopUsers(topN),
		MostDiscussed:         an.MostDiscussed(topN),
		Keywords:              tx.ExtractKeywords(50),
		TopicClusters:         tx.ExtractTopicClusters(topN),
		TopicSentiment:        tx.TopicSentiment(topN),
		TopHashtags:           hashtags,
		TopMentions:           mentions,
		GeneratedAt:           time.Now().UTC(),
	}
}
