// 包 export 负责结果落盘：分析摘要与原始采集数据写为 JSON 文件。
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-reddit-radar/internal/model"
)

// WriteSummary 将分析摘要写入 <dir>/analysis_summary.json（带缩进格式）。
func WriteSummary(dir string, sum model.Summary) (string, error) {
	path := filepath.Join(dir, "analysis_summary.json")
	if err := writeJSON(path, sum); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRaw 将原始帖子/评论分别写为 posts_raw.json 与 comments_raw.json。
func WriteRaw(dir string, posts []model.Post, comments []model.Comment) error {
	if err := writeJSON(filepath.Join(dir, "posts_raw.json"), posts); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, "comments_raw.json"), comments)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	return nil
}
