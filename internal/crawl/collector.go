package crawl

import (
	"sync"

	"go-reddit-radar/internal/model"
)

// Collector 为单次运行的采集缓冲区：
// - 帖子按发现顺序保存，跨社区按 id 去重
// - 评论保持各帖子树内的前序
// 由 Runner 独占持有并写入，运行结束后整体交给分析层只读。
type Collector struct {
	mu       sync.Mutex
	posts    []model.Post
	comments []model.Comment
	seen     map[string]struct{} // post id
}

func NewCollector() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// AddPost 收录帖子；重复 id（多个社区返回同一帖）返回 false。
func (c *Collector) AddPost(p model.Post) bool {
	if p.ID == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[p.ID]; ok {
		return false
	}
	c.seen[p.ID] = struct{}{}
	c.posts = append(c.posts, p)
	return true
}

// AddComments 追加一棵评论树的展开结果。
func (c *Collector) AddComments(cs []model.Comment) {
	if len(cs) == 0 {
		return
	}
	c.mu.Lock()
	c.comments = append(c.comments, cs...)
	c.mu.Unlock()
}

// Data 返回已采集的帖子与评论切片（运行结束后调用）。
func (c *Collector) Data() ([]model.Post, []model.Comment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posts, c.comments
}

// Len 返回帖子数与评论数。
func (c *Collector) Len() (posts, comments int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.posts), len(c.comments)
}
