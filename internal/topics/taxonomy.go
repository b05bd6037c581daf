// 包 topics 负责关键词与话题统计：
// - 清洗全部帖子/评论文本后做词频统计
// - 以固定关键词表（可用 YAML 覆盖）把高频词归入命名话题
// 这是闭集词表匹配，不是统计聚类。
package topics

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Topic 为单个话题及其关键词表。
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy 为有序的话题列表；顺序决定同提及数时的先后。
type Taxonomy []Topic

// DefaultTaxonomy 返回内置的话题关键词表。
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "performance", Keywords: []string{"performance", "speed", "fast", "slow", "lag", "fps", "battery", "processor", "chip"}},
		{Name: "design", Keywords: []string{"design", "look", "color", "screen", "display", "size", "weight", "build", "camera"}},
		{Name: "price", Keywords: []string{"price", "cost", "expensive", "cheap", "worth", "value", "money", "deal", "sale"}},
		{Name: "features", Keywords: []string{"feature", "function", "support", "software", "update", "version", "system", "app"}},
		{Name: "quality", Keywords: []string{"quality", "issue", "problem", "defect", "break", "damage", "fix", "repair", "warranty"}},
		{Name: "comparison", Keywords: []string{"better", "worse", "compare", "difference", "versus", "vs", "alternative", "similar"}},
		{Name: "user_experience", Keywords: []string{"use", "experience", "love", "hate", "like", "dislike", "recommend", "buy", "purchased"}},
	}
}

// LoadTaxonomy 从 YAML 文件加载话题表（topics.yaml），用于覆盖内置表。
func LoadTaxonomy(path string) (Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	var doc struct {
		Topics Taxonomy `yaml:"topics"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal taxonomy %s: %w", path, err)
	}
	if len(doc.Topics) == 0 {
		return nil, fmt.Errorf("taxonomy %s defines no topics", path)
	}
	return doc.Topics, nil
}
