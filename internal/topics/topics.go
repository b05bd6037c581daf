package topics

import (
	"regexp"
	"sort"
	"strings"

	"go-reddit-radar/internal/model"
)

// stopWords 为词频统计剔除的常见英文停用词。
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
		"be", "have", "has", "had", "do", "does", "did", "will", "would",
		"could", "should", "may", "might", "can", "this", "that", "these",
		"those", "i", "you", "he", "she", "it", "we", "they", "what", "which",
		"who", "when", "where", "why", "how", "my", "your", "his", "her", "its",
		"our", "their", "me", "him", "them", "us", "just", "not", "ve", "re",
		"ll", "s", "t", "m", "d", "like", "get", "got", "one", "also", "really",
		"even", "still", "much", "more", "very", "so", "too", "out", "up", "down",
		"https", "http", "com", "www",
	} {
		stopWords[w] = struct{}{}
	}
}

var (
	urlPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9\s]`)
	hashtagPattern  = regexp.MustCompile(`#(\w+)`)
	mentionPattern  = regexp.MustCompile(`@(\w+)`)
)

// Extractor 持有一次运行的文本来源与话题表。
type Extractor struct {
	posts    []model.Post
	comments []model.Comment
	taxonomy Taxonomy
}

// New 创建话题分析器；taxonomy 为 nil 时使用内置表。
func New(posts []model.Post, comments []model.Comment, taxonomy Taxonomy) *Extractor {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Extractor{posts: posts, comments: comments, taxonomy: taxonomy}
}

// allText 拼接全部帖子标题/正文与评论正文。
func (e *Extractor) allText() string {
	var sb strings.Builder
	for i := range e.posts {
		sb.WriteString(e.posts[i].Title)
		sb.WriteByte(' ')
		if e.posts[i].Body != "" {
			sb.WriteString(e.posts[i].Body)
			sb.WriteByte(' ')
		}
	}
	for i := range e.comments {
		if e.comments[i].Body != "" {
			sb.WriteString(e.comments[i].Body)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// cleanText 清洗文本：小写、去 URL、非字母数字替换为空格。
func cleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonAlnumPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// ExtractKeywords 返回前 topN 个高频关键词：
// 过滤停用词与长度 <3 的词；同频按首次出现顺序排列（稳定）。
func (e *Extractor) ExtractKeywords(topN int) []model.CountEntry {
	if topN <= 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(cleanText(e.allText())) {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}
	out := make([]model.CountEntry, 0, len(order))
	for _, w := range order {
		out = append(out, model.CountEntry{Name: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// ExtractTopicClusters 把前 100 个关键词按话题表归类：
// 话题的提及数为命中关键词的词频之和，零命中的话题省略，
// 结果按提及数降序取前 topN（同数保持话题表顺序）。
func (e *Extractor) ExtractTopicClusters(topN int) []model.TopicCluster {
	if topN <= 0 {
		return nil
	}
	keywords := e.ExtractKeywords(100)
	if len(keywords) == 0 {
		return nil
	}
	freq := make(map[string]int, len(keywords))
	for _, kw := range keywords {
		freq[kw.Name] = kw.Count
	}
	var out []model.TopicCluster
	for _, topic := range e.taxonomy {
		matched := make(map[string]int)
		total := 0
		for _, kw := range topic.Keywords {
			if n, ok := freq[kw]; ok {
				matched[kw] = n
				total += n
			}
		}
		if total == 0 {
			continue
		}
		out = append(out, model.TopicCluster{
			Topic:         topic.Name,
			Keywords:      matched,
			TotalMentions: total,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMentions > out[j].TotalMentions
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// TopicSentiment 统计包含各话题命中关键词的内容的情感标签分布。
func (e *Extractor) TopicSentiment(topN int) map[string]model.LabelCounts {
	clusters := e.ExtractTopicClusters(topN)
	if len(clusters) == 0 {
		return nil
	}
	out := make(map[string]model.LabelCounts, len(clusters))
	for _, cl := range clusters {
		var lc model.LabelCounts
		tally := func(text, label string) {
			text = strings.ToLower(text)
			for kw := range cl.Keywords {
				if strings.Contains(text, kw) {
					switch label {
					case "positive":
						lc.Positive++
					case "negative":
						lc.Negative++
					default:
						lc.Neutral++
					}
					return
				}
			}
		}
		for i := range e.posts {
			tally(e.posts[i].Title+" "+e.posts[i].Body, e.posts[i].Sentiment)
		}
		for i := range e.comments {
			tally(e.comments[i].Body, e.comments[i].Sentiment)
		}
		out[cl.Topic] = lc
	}
	return out
}

// HashtagsAndMentions 提取 #话题标签 与 @提及 的前 topN 计数。
func (e *Extractor) HashtagsAndMentions(topN int) (hashtags, mentions []model.CountEntry) {
	text := e.allText()
	return topMatches(hashtagPattern, text, topN), topMatches(mentionPattern, text, topN)
}

// topMatches 统计正则首个分组的出现频次并取前 n。
func topMatches(re *regexp.Regexp, text string, n int) []model.CountEntry {
	if n <= 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}
	out := make([]model.CountEntry, 0, len(order))
	for _, name := range order {
		out = append(out, model.CountEntry{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
