// 包 analyze 对采集完成的集合做纯函数统计：
// 计数、分布、互动指标与排名。不做 I/O，不修改输入；
// 空输入一律返回定义好的零值结果，绝不除零或报错。
package analyze

import (
	"sort"

	"go-reddit-radar/internal/model"
)

// Analyzer 持有一次运行的只读数据视图。
type Analyzer struct {
	posts    []model.Post
	comments []model.Comment
}

// New 创建分析器；传入的切片视为冻结快照，调用方不得再修改。
func New(posts []model.Post, comments []model.Comment) *Analyzer {
	return &Analyzer{posts: posts, comments: comments}
}

// BasicStats 计算基础声量：总量、帖子/评论数、唯一用户与社区数。
// 唯一用户剔除已注销账户与站务机器人哨兵。
func (a *Analyzer) BasicStats() model.BasicStats {
	users := make(map[string]struct{})
	forums := make(map[string]struct{})
	for i := range a.posts {
		users[a.posts[i].Author] = struct{}{}
		forums[a.posts[i].Subreddit] = struct{}{}
	}
	for i := range a.comments {
		users[a.comments[i].Author] = struct{}{}
		forums[a.comments[i].Subreddit] = struct{}{}
	}
	delete(users, model.DeletedAuthor)
	delete(users, model.BotAuthor)
	return model.BasicStats{
		TotalVolume:      len(a.posts) + len(a.comments),
		PostCount:        len(a.posts),
		CommentCount:     len(a.comments),
		UniqueUsers:      len(users),
		UniqueSubreddits: len(forums),
	}
}

// SubredditDistribution 统计帖子+评论合并后的社区分布，
// 按计数降序取前 topN；计数相同按首次出现顺序（稳定）。
func (a *Analyzer) SubredditDistribution(topN int) []model.CountEntry {
	c := newCounter()
	for i := range a.posts {
		c.add(a.posts[i].Subreddit)
	}
	for i := range a.comments {
		c.add(a.comments[i].Subreddit)
	}
	return c.top(topN)
}

// TimeDistribution 按 UTC 日期分别统计帖子与评论两条序列。
func (a *Analyzer) TimeDistribution() model.TimeDistribution {
	td := model.TimeDistribution{
		PostsByDate:    make(map[string]int),
		CommentsByDate: make(map[string]int),
	}
	for i := range a.posts {
		td.PostsByDate[a.posts[i].CreatedAt.UTC().Format("2006-01-02")]++
	}
	for i := range a.comments {
		td.CommentsByDate[a.comments[i].CreatedAt.UTC().Format("2006-01-02")]++
	}
	return td
}

// EngagementStats 计算互动统计；对应集合为空时各项保持 0。
func (a *Analyzer) EngagementStats() model.EngagementStats {
	var es model.EngagementStats
	if len(a.posts) > 0 {
		scores := make([]int, len(a.posts))
		commentSum := 0
		for i := range a.posts {
			scores[i] = a.posts[i].Score
			es.TotalPostScore += a.posts[i].Score
			commentSum += a.posts[i].CommentCount
		}
		es.AvgPostScore = float64(es.TotalPostScore) / float64(len(a.posts))
		es.MedianPostScore = median(scores)
		es.AvgCommentsPerPost = float64(commentSum) / float64(len(a.posts))
	}
	if len(a.comments) > 0 {
		scores := make([]int, len(a.comments))
		for i := range a.comments {
			scores[i] = a.comments[i].Score
			es.TotalCommentScore += a.comments[i].Score
		}
		es.AvgCommentScore = float64(es.TotalCommentScore) / float64(len(a.comments))
		es.MedianCommentScore = median(scores)
	}
	return es
}

// TopPosts 按分数降序取前 topN；同分保持发现顺序。
func (a *Analyzer) TopPosts(topN int) []model.Post {
	return topBy(a.posts, topN, func(p model.Post) int { return p.Score })
}

// MostDiscussed 按评论数降序取前 topN；同数保持发现顺序。
func (a *Analyzer) MostDiscussed(topN int) []model.Post {
	return topBy(a.posts, topN, func(p model.Post) int { return p.CommentCount })
}

// TopUsers 统计帖子+评论的作者活跃度，剔除哨兵账户。
func (a *Analyzer) TopUsers(topN int) []model.CountEntry {
	c := newCounter()
	for i := range a.posts {
		c.add(a.posts[i].Author)
	}
	for i := range a.comments {
		c.add(a.comments[i].Author)
	}
	c.remove(model.DeletedAuthor)
	c.remove(model.BotAuthor)
	return c.top(topN)
}

// topBy 返回按 key 降序的前 n 条帖子副本（稳定排序）。
func topBy(posts []model.Post, n int, key func(model.Post) int) []model.Post {
	if n <= 0 || len(posts) == 0 {
		return nil
	}
	sorted := append([]model.Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) > key(sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// median 返回整数序列的中位数（偶数个取中间两数均值）。
func median(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := append([]int(nil), vals...)
	sort.Ints(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return float64(s[mid])
	}
	return float64(s[mid-1]+s[mid]) / 2
}

// counter 为保持首次出现顺序的计数器，排名时用于稳定的同分次序。
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) remove(name string) {
	if _, ok := c.counts[name]; !ok {
		return
	}
	delete(c.counts, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// top 按计数降序返回前 n 条；同分按首次出现顺序。
func (c *counter) top(n int) []model.CountEntry {
	if n <= 0 || len(c.order) == 0 {
		return nil
	}
	out := make([]model.CountEntry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, model.CountEntry{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
