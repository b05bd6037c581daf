package sentiment

import (
	"math"
	"sort"

	"go-reddit-radar/internal/model"
)

// Distribution 统计三档情感标签的数量与占比；空输入返回全零。
func Distribution(posts []model.Post, comments []model.Comment) model.SentimentDistribution {
	var pos, neu, neg int
	count := func(label string) {
		switch label {
		case LabelPositive:
			pos++
		case LabelNegative:
			neg++
		default:
			neu++
		}
	}
	for i := range posts {
		count(posts[i].Sentiment)
	}
	for i := range comments {
		count(comments[i].Sentiment)
	}
	total := pos + neu + neg
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return math.Round(float64(n)/float64(total)*10000) / 100
	}
	return model.SentimentDistribution{
		Positive: model.SentimentBucket{Count: pos, Percentage: pct(pos)},
		Neutral:  model.SentimentBucket{Count: neu, Percentage: pct(neu)},
		Negative: model.SentimentBucket{Count: neg, Percentage: pct(neg)},
	}
}

// BySubreddit 按社区统计情感标签分布。
func BySubreddit(posts []model.Post, comments []model.Comment) map[string]model.LabelCounts {
	out := make(map[string]model.LabelCounts)
	add := func(forum, label string) {
		lc := out[forum]
		switch label {
		case LabelPositive:
			lc.Positive++
		case LabelNegative:
			lc.Negative++
		default:
			lc.Neutral++
		}
		out[forum] = lc
	}
	for i := range posts {
		add(posts[i].Subreddit, posts[i].Sentiment)
	}
	for i := range comments {
		add(comments[i].Subreddit, comments[i].Sentiment)
	}
	return out
}

// OverTime 按 UTC 日期统计情感标签分布。
func OverTime(posts []model.Post, comments []model.Comment) map[string]model.LabelCounts {
	out := make(map[string]model.LabelCounts)
	add := func(date, label string) {
		lc := out[date]
		switch label {
		case LabelPositive:
			lc.Positive++
		case LabelNegative:
			lc.Negative++
		default:
			lc.Neutral++
		}
		out[date] = lc
	}
	for i := range posts {
		add(posts[i].CreatedAt.UTC().Format("2006-01-02"), posts[i].Sentiment)
	}
	for i := range comments {
		add(comments[i].CreatedAt.UTC().Format("2006-01-02"), comments[i].Sentiment)
	}
	return out
}

// Extremes 返回最正面与最负面的内容各 topN 条。
// 排序使用稳定排序，极性相同保持发现顺序。
func Extremes(posts []model.Post, comments []model.Comment, topN int) model.SentimentExtremes {
	var ex model.SentimentExtremes
	if topN <= 0 {
		return ex
	}
	if len(posts) > 0 {
		byPolarity := append([]model.Post(nil), posts...)
		sort.SliceStable(byPolarity, func(i, j int) bool {
			return byPolarity[i].Polarity > byPolarity[j].Polarity
		})
		ex.MostPositivePosts = head(byPolarity, topN)
		ex.MostNegativePosts = tailReversed(byPolarity, topN)
	}
	if len(comments) > 0 {
		byPolarity := append([]model.Comment(nil), comments...)
		sort.SliceStable(byPolarity, func(i, j int) bool {
			return byPolarity[i].Polarity > byPolarity[j].Polarity
		})
		ex.MostPositiveComments = head(byPolarity, topN)
		ex.MostNegativeComments = tailReversed(byPolarity, topN)
	}
	return ex
}

func head[T any](s []T, n int) []T {
	if len(s) < n {
		n = len(s)
	}
	return append([]T(nil), s[:n]...)
}

// tailReversed 取尾部 n 个并反转，使最负面的排在前。
func tailReversed[T any](s []T, n int) []T {
	if len(s) < n {
		n = len(s)
	}
	out := make([]T, 0, n)
	for i := len(s) - 1; i >= len(s)-n; i-- {
		out = append(out, s[i])
	}
	return out
}
