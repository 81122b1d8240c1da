package dom2rec

import (
	"time"
)

// Config 应用配置
type Config struct {
	// 输入配置
	InputFile string `mapstructure:"input"` // 输入文件路径, "-" 表示标准输入
	URL       string `mapstructure:"url"`   // 远程页面地址
	Format    string `mapstructure:"from"`  // 输入格式 (html/markdown)

	// 转换配置
	Selector string `mapstructure:"selector"`  // 根元素CSS选择器
	XPath    string `mapstructure:"xpath"`     // 根节点XPath表达式
	TagsFile string `mapstructure:"tags_file"` // 标签词表文件(TOML)

	// 输出配置
	OutputFile string `mapstructure:"output"` // 输出文件路径, 为空时写到标准输出

	// HTTP配置
	HTTPTimeout   time.Duration `mapstructure:"timeout"`    // 请求超时时间
	HTTPUserAgent string        `mapstructure:"user_agent"` // User-Agent
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig() *Config {
	return &Config{
		Format:        FormatHTML,
		HTTPTimeout:   30 * time.Second,
		HTTPUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	}
}

// FetchOptions returns the HTTP options for FetchURL.
func (c *Config) FetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   c.HTTPTimeout,
		UserAgent: c.HTTPUserAgent,
	}
}

// Vocabulary loads the configured tag vocabulary.
func (c *Config) Vocabulary() (*Vocabulary, error) {
	if c.TagsFile == "" {
		return DefaultVocabulary(), nil
	}
	return LoadVocabularyFile(c.TagsFile)
}
