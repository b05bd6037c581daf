// 包 model 定义全局数据模型（帖子/评论/统计摘要结构）。
package model

import "time"

// 作者哨兵值：已注销账户与站务机器人，统计用户数时剔除。
const (
	DeletedAuthor = "[deleted]"
	BotAuthor     = "AutoModerator"
)

// Post 为归一化后的帖子记录。
// CreatedAt 在采集入口处已保证落在配置的时间窗内，之后不再变更。
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"selftext"`
	Author       string    `json:"author"`
	Subreddit    string    `json:"subreddit"`
	CreatedAt    time.Time `json:"created_at"`
	Score        int       `json:"score"`
	UpvoteRatio  float64   `json:"upvote_ratio"`
	CommentCount int       `json:"num_comments"`
	URL          string    `json:"url"`
	Permalink    string    `json:"permalink"`

	// 情感分析阶段原地补充的字段
	Polarity     float64 `json:"sentiment_polarity"`
	Subjectivity float64 `json:"sentiment_subjectivity"`
	Sentiment    string  `json:"sentiment,omitempty"`
}

// Comment 为归一化后的评论记录。
// PostID 指向所属帖子；时间窗过滤对评论独立生效。
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Subreddit string    `json:"subreddit"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
	Permalink string    `json:"permalink"`

	Polarity     float64 `json:"sentiment_polarity"`
	Subjectivity float64 `json:"sentiment_subjectivity"`
	Sentiment    string  `json:"sentiment,omitempty"`
}

// BasicStats 为基础声量统计。
type BasicStats struct {
	TotalVolume      int `json:"total_volume"`
	PostCount        int `json:"post_count"`
	CommentCount     int `json:"comment_count"`
	UniqueUsers      int `json:"unique_users"`
	UniqueSubreddits int `json:"unique_subreddits"`
}

// CountEntry 为带名称的计数条目（社区分布、活跃用户等排名）。
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimeDistribution 为按 UTC 日期分桶的两条时间序列。
type TimeDistribution struct {
	PostsByDate    map[string]int `json:"posts_by_date"`
	CommentsByDate map[string]int `json:"comments_by_date"`
}

// EngagementStats 为互动统计；对应集合为空时全部为 0。
type EngagementStats struct {
	AvgPostScore       float64 `json:"avg_post_score"`
	AvgCommentScore    float64 `json:"avg_comment_score"`
	TotalPostScore     int     `json:"total_post_score"`
	TotalCommentScore  int     `json:"total_comment_score"`
	AvgCommentsPerPost float64 `json:"avg_comments_per_post"`
	MedianPostScore    float64 `json:"median_post_score"`
	MedianCommentScore float64 `json:"median_comment_score"`
}

// SentimentBucket 为单个情感标签的数量与占比。
type SentimentBucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SentimentDistribution 固定三档：positive/neutral/negative。
type SentimentDistribution struct {
	Positive SentimentBucket `json:"positive"`
	Neutral  SentimentBucket `json:"neutral"`
	Negative SentimentBucket `json:"negative"`
}

// LabelCounts 为按情感标签分组的计数（按社区/按日期共用）。
type LabelCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SentimentExtremes 为极性最高与最低的内容（帖子/评论各取 topN）。
type SentimentExtremes struct {
	MostPositivePosts    []Post    `json:"most_positive_posts"`
	MostNegativePosts    []Post    `json:"most_negative_posts"`
	MostPositiveComments []Comment `json:"most_positive_comments"`
	MostNegativeComments []Comment `json:"most_negative_comments"`
}

// TopicCluster 为关键词命中后的单个话题统计。
type TopicCluster struct {
	Topic         string         `json:"topic"`
	Keywords      map[string]int `json:"keywords"`
	TotalMentions int            `json:"total_mentions"`
}

// Summary 为一次运行的完整分析摘要（导出为 analysis_summary.json）。
type Summary struct {
	BasicStats            BasicStats             `json:"basic_stats"`
	SubredditDistribution []CountEntry           `json:"subreddit_distribution"`
	TimeDistribution      TimeDistribution       `json:"time_distribution"`
	EngagementStats       EngagementStats        `json:"engagement_stats"`
	SentimentDistribution SentimentDistribution  `json:"sentiment_distribution"`
	SentimentBySubreddit  map[string]LabelCounts `json:"sentiment_by_subreddit"`
	SentimentOverTime     map[string]LabelCounts `json:"sentiment_over_time"`
	SentimentExtremes     SentimentExtremes      `json:"sentiment_extremes"`
	TopPosts              []Post                 `json:"top_posts"`
	TopUsers              []CountEntry           `json:"top_users"`
	MostDiscussed         []Post                 `json:"most_discussed_posts"`
	Keywords              []CountEntry           `json:"keywords"`
	TopicClusters         []TopicCluster         `json:"topic_clusters"`
	TopicSentiment        map[string]LabelCounts `json:"topic_sentiment"`
	TopHashtags           []CountEntry           `json:"top_hashtags"`
	TopMentions           []CountEntry           `json:"top_mentions"`
	GeneratedAt           time.Time              `json:"generated_at"`
}
