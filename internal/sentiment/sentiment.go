// 包 sentiment 负责情感标注：
// - Classifier 为可注入的文本评分函数（极性/主观性/标签）
// - Enrich 对采集完成的帖子与评论做一次标注回填
// - 另提供分布/趋势/极值等统计摘要
package sentiment

import (
	"strings"

	"go-reddit-radar/internal/model"
)

// 情感标签取值。
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// 极性超过该阈值判正面，低于其相反数判负面。
const polarityThreshold = 0.1

// Score 为单条文本的评分结果。
type Score struct {
	Polarity     float64 // [-1, 1]
	Subjectivity float64 // [0, 1]
	Label        string
}

// Classifier 为文本→评分的外部函数边界，可替换为任意实现。
type Classifier func(text string) Score

// LabelFor 按极性阈值给出标签。
func LabelFor(polarity float64) string {
	switch {
	case polarity > polarityThreshold:
		return LabelPositive
	case polarity < -polarityThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Enrich 对全部帖子与评论执行标注：
// 帖子取标题+正文合并评分，评论取正文；结果原地写入记录。
func Enrich(posts []model.Post, comments []model.Comment, classify Classifier) {
	if classify == nil {
		classify = Classify
	}
	for i := range posts {
		s := classify(strings.TrimSpace(posts[i].Title + " " + posts[i].Body))
		posts[i].Polarity = s.Polarity
		posts[i].Subjectivity = s.Subjectivity
		posts[i].Sentiment = s.Label
	}
	for i := range comments {
		s := classify(comments[i].Body)
		comments[i].Polarity = s.Polarity
		comments[i].Subjectivity = s.Subjectivity
		comments[i].Sentiment = s.Label
	}
}
