// 包 config 负责加载与校验应用配置（settings.yaml），
// 对外提供结构体 Config、解析后的时间窗与默认值填充。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 为 settings.yaml 的映射结构，仅保留当前需要的字段。
type Config struct {
	Brand      string   `yaml:"BRAND"`
	Product    string   `yaml:"PRODUCT"`
	StartDate  string   `yaml:"START_DATE"` // dd/mm/yyyy
	EndDate    string   `yaml:"END_DATE"`   // dd/mm/yyyy
	Subreddits []string `yaml:"SUBREDDITS"`
	Limit      int      `yaml:"LIMIT"` // 每个 subreddit 的采集上限

	BaseURL        string   `yaml:"BASE_URL"`
	RequestDelayMS int      `yaml:"REQUEST_DELAY_MS"`
	SimpleMode     bool     `yaml:"SIMPLE_MODE"` // 仅内存/导出，不落库
	ResetOnStart   bool     `yaml:"RESET_ON_START"`
	Database       Database `yaml:"DATABASE"`
	ExportDir      string   `yaml:"EXPORT_DIR"`

	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"` // text|json|pretty
	LogLocale string `yaml:"LOG_LOCALE"` // zh-CN|en
	LogColor  string `yaml:"LOG_COLOR"`  // auto|always|never

	// Validate 成功后填充的解析结果
	window Window
}

type Database struct {
	Type string `yaml:"type"` // sqlite (default)
	DSN  string `yaml:"dsn"`  // ./radar.db
}

// Window 为闭区间时间窗 [Start, End]，端点含当天整日（UTC）。
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains 判断时刻是否落在窗口内（闭区间）。
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Query 返回传给搜索端点的查询文本。
func (c *Config) Query() string {
	return strings.TrimSpace(c.Brand + " " + c.Product)
}

// Window 返回 Validate 阶段解析出的时间窗。
func (c *Config) Window() Window { return c.window }

// RequestDelay 返回两次请求起始之间的最小间隔。
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// Load 从文件读取 YAML 并反序列化为 Config，同时进行校验与默认值填充。
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate 负责合法性检查与默认值设置；配置错误在任何网络活动之前即失败。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Brand) == "" {
		return errors.New("BRAND is required")
	}
	if len(c.Subreddits) == 0 {
		return errors.New("SUBREDDITS must not be empty")
	}
	for _, s := range c.Subreddits {
		if strings.TrimSpace(s) == "" {
			return errors.New("SUBREDDITS contains an empty entry")
		}
	}
	if c.Limit <= 0 {
		c.Limit = 100
	}
	start, err := parseDate(c.StartDate)
	if err != nil {
		return fmt.Errorf("START_DATE: %w", err)
	}
	end, err := parseDate(c.EndDate)
	if err != nil {
		return fmt.Errorf("END_DATE: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("END_DATE %s is before START_DATE %s", c.EndDate, c.StartDate)
	}
	// 窗口两端均含整日：起点取当天 00:00:00，终点取当天最后一纳秒
	c.window = Window{
		Start: start,
		End:   end.Add(24*time.Hour - time.Nanosecond),
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://www.reddit.com"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.RequestDelayMS <= 0 {
		c.RequestDelayMS = 2000
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Type != "sqlite" {
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "./radar.db"
	}
	if c.ExportDir == "" {
		c.ExportDir = "output"
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogLocale == "" {
		c.LogLocale = "zh-CN"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}

// parseDate 解析 dd/mm/yyyy 格式的日期（UTC 零点）。
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required (dd/mm/yyyy)")
	}
	t, err := time.ParseInLocation("02/01/2006", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want dd/mm/yyyy): %w", s, err)
	}
	return t, nil
}
