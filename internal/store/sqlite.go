// 包 store 提供存储实现（SQLite），将单次运行的采集结果落库，
// 包含表迁移/写入/查询/清理等操作。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"go-reddit-radar/internal/model"
)

// SQLite 封装 *sql.DB，基于 modernc.org/sqlite（纯 Go 实现）。
type SQLite struct {
	db *sql.DB
}

// OpenSQLite 打开 SQLite 数据库并执行自动迁移。
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Reset 清空业务数据表（不删除数据库文件）。
func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM comments`); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	return nil
}

// migrate 执行建表语句，保持幂等。
func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts (
            id TEXT PRIMARY KEY,
            title TEXT,
            selftext TEXT,
            author TEXT,
            subreddit TEXT,
            created_at TIMESTAMP,
            score INTEGER,
            upvote_ratio REAL,
            num_comments INTEGER,
            url TEXT,
            permalink TEXT,
            sentiment_polarity REAL,
            sentiment_subjectivity REAL,
            sentiment TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS comments (
            id TEXT PRIMARY KEY,
            post_id TEXT,
            body TEXT,
            author TEXT,
            subreddit TEXT,
            created_at TIMESTAMP,
            score INTEGER,
            permalink TEXT,
            sentiment_polarity REAL,
            sentiment_subjectivity REAL,
            sentiment TEXT
        );`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec migrate: %w", err)
		}
	}
	return nil
}

// SavePosts 批量写入帖子（id 主键冲突时覆盖更新）。
func (s *SQLite) SavePosts(ctx context.Context, posts []model.Post) error {
	for i := range posts {
		p := &posts[i]
		if p.ID == "" {
			return errors.New("post.id required")
		}
		_, err := s.db.ExecContext(ctx, `INSERT INTO posts(
            id, title, selftext, author, subreddit, created_at, score,
            upvote_ratio, num_comments, url, permalink,
            sentiment_polarity, sentiment_subjectivity, sentiment)
            VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)
            ON CONFLICT(id) DO UPDATE SET
                score=excluded.score, num_comments=excluded.num_comments,
                sentiment_polarity=excluded.sentiment_polarity,
                sentiment_subjectivity=excluded.sentiment_subjectivity,
                sentiment=excluded.sentiment`,
			p.ID, p.Title, p.Body, p.Author, p.Subreddit, p.CreatedAt.UTC(), p.Score,
			p.UpvoteRatio, p.CommentCount, p.URL, p.Permalink,
			p.Polarity, p.Subjectivity, p.Sentiment)
		if err != nil {
			return fmt.Errorf("upsert post %s: %w", p.ID, err)
		}
	}
	return nil
}

// SaveComments 批量写入评论（id 主键冲突时覆盖更新）。
func (s *SQLite) SaveComments(ctx context.Context, comments []model.Comment) error {
	for i := range comments {
		c := &comments[i]
		if c.ID == "" {
			return errors.New("comment.id required")
		}
		_, err := s.db.ExecContext(ctx, `INSERT INTO comments(
            id, post_id, body, author, subreddit, created_at, score, permalink,
            sentiment_polarity, sentiment_subjectivity, sentiment)
            VALUES(?,?,?,?,?,?,?,?,?,?,?)
            ON CONFLICT(id) DO UPDATE SET
                score=excluded.score,
                sentiment_polarity=excluded.sentiment_polarity,
                sentiment_subjectivity=excluded.sentiment_subjectivity,
                sentiment=excluded.sentiment`,
			c.ID, c.PostID, c.Body, c.Author, c.Subreddit, c.CreatedAt.UTC(), c.Score,
			c.Permalink, c.Polarity, c.Subjectivity, c.Sentiment)
		if err != nil {
			return fmt.Errorf("upsert comment %s: %w", c.ID, err)
		}
	}
	return nil
}

// ListPosts 返回全部帖子，按创建时间倒序。
func (s *SQLite) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, selftext, author, subreddit,
        created_at, score, upvote_ratio, num_comments, url, permalink,
        sentiment_polarity, sentiment_subjectivity, COALESCE(sentiment,'')
        FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()
	var out []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Author, &p.Subreddit,
			&p.CreatedAt, &p.Score, &p.UpvoteRatio, &p.CommentCount, &p.URL, &p.Permalink,
			&p.Polarity, &p.Subjectivity, &p.Sentiment); err != nil {
			return nil, fmt.Errorf("scan posts: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// ListComments 返回全部评论，按创建时间倒序。
func (s *SQLite) ListComments(ctx context.Context) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, post_id, body, author, subreddit,
        created_at, score, permalink,
        sentiment_polarity, sentiment_subjectivity, COALESCE(sentiment,'')
        FROM comments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()
	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Body, &c.Author, &c.Subreddit,
			&c.CreatedAt, &c.Score, &c.Permalink,
			&c.Polarity, &c.Subjectivity, &c.Sentiment); err != nil {
			return nil, fmt.Errorf("scan comments: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

// Counts 返回帖子与评论的行数。
func (s *SQLite) Counts(ctx context.Context) (posts, comments int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM posts`).Scan(&posts); err != nil {
		return 0, 0, fmt.Errorf("count posts: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM comments`).Scan(&comments); err != nil {
		return 0, 0, fmt.Errorf("count comments: %w", err)
	}
	return posts, comments, nil
}
