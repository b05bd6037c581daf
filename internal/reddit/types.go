// 包 reddit 负责上游 JSON 边界：
// - 列表信封（listing）与节点（thing）的反序列化
// - 搜索分页（SearchSubreddit）与评论树展开（WalkCommentTree）
// - 在采集入口处把松散 JSON 映射为强类型 model 记录
package reddit

import (
	"encoding/json"
	"time"

	"go-reddit-radar/internal/model"
)

// 节点类型：t1 评论、t3 帖子；其余（如 more 占位符）一律跳过。
const (
	kindComment = "t1"
	kindPost    = "t3"
)

// listing 对应上游的列表信封 {data: {after, children[]}}。
type listing struct {
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

// thing 为列表中的单个节点。
type thing struct {
	Kind string   `json:"kind"`
	Data itemData `json:"data"`
}

// itemData 覆盖帖子与评论共用的字段；缺失字段按零值降级，不会失败。
type itemData struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	Body         string  `json:"body"`
	BodyHTML     string  `json:"body_html"`
	Author       string  `json:"author"`
	Subreddit    string  `json:"subreddit"`
	CreatedUTC   float64 `json:"created_utc"`
	Score        int     `json:"score"`
	UpvoteRatio  float64 `json:"upvote_ratio"`
	NumComments  int     `json:"num_comments"`
	URL          string  `json:"url"`
	Permalink    string  `json:"permalink"`
	// Replies 可能是空字符串 "" 或嵌套 listing，原样保留延迟解析
	Replies json.RawMessage `json:"replies"`
}

// createdAt 把 created_utc 秒级时间戳转为 UTC 时刻。
func (d *itemData) createdAt() time.Time {
	return time.Unix(int64(d.CreatedUTC), 0).UTC()
}

// author 返回作者名，缺失时降级为删除哨兵。
func (d *itemData) author() string {
	if d.Author == "" {
		return model.DeletedAuthor
	}
	return d.Author
}

// toPost 把搜索结果节点映射为 Post 记录。
func (d *itemData) toPost() model.Post {
	body := d.Selftext
	if body == "" && d.SelftextHTML != "" {
		body = htmlToText(d.SelftextHTML)
	}
	return model.Post{
		ID:           d.ID,
		Title:        d.Title,
		Body:         body,
		Author:       d.author(),
		Subreddit:    d.Subreddit,
		CreatedAt:    d.createdAt(),
		Score:        d.Score,
		UpvoteRatio:  d.UpvoteRatio,
		CommentCount: d.NumComments,
		URL:          d.URL,
		Permalink:    "https://reddit.com" + d.Permalink,
	}
}

// toComment 把评论节点映射为 Comment 记录。
func (d *itemData) toComment(postID, subreddit string) model.Comment {
	return model.Comment{
		ID:        d.ID,
		PostID:    postID,
		Body:      d.commentBody(),
		Author:    d.author(),
		Subreddit: subreddit,
		CreatedAt: d.createdAt(),
		Score:     d.Score,
		Permalink: "https://reddit.com" + d.Permalink,
	}
}

// commentBody 返回评论正文，纯文本缺失时回退到 body_html 抽取。
func (d *itemData) commentBody() string {
	if d.Body != "" {
		return d.Body
	}
	if d.BodyHTML != "" {
		return htmlToText(d.BodyHTML)
	}
	return ""
}

// replyChildren 解析嵌套回复；replies 为空串或缺失时返回 nil。
func (d *itemData) replyChildren() []thing {
	if len(d.Replies) == 0 {
		return nil
	}
	var l listing
	if err := json.Unmarshal(d.Replies, &l); err != nil {
		return nil
	}
	return l.Data.Children
}
