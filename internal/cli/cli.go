package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fdkevin0/dom2rec"
	"github.com/spf13/cobra"
)

var (
	// 命令行参数
	flagConfigFile string
	flagInputFile  string
	flagURL        string
	flagFormat     string
	flagSelector   string
	flagXPath      string
	flagTagsFile   string
	flagOutputFile string
	flagTimeout    int
	flagUserAgent  string
	flagDebug      bool
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "dom2rec [FILE]",
	Short: "DOM记录转换器 - 将HTML文档树转换为带缩进的记录表示",
	Long: `DOM记录转换器读取HTML文档，把body(或选定的根节点)下的元素树转换为
紧凑的 [#tag attr: "value" children: ...] 记录表示。
支持功能：
- 读取本地文件、标准输入或远程页面
- 读取Markdown并先渲染为HTML
- 通过CSS选择器或XPath选择根节点
- 通过TOML词表文件扩展支持的标签`,
	Example: `  # 转换本地HTML文件
  dom2rec page.html

  # 从标准输入读取
  cat page.html | dom2rec -

  # 抓取远程页面并只转换 #app
  dom2rec --url=https://example.com --selector='#app'

  # 使用自定义词表并写入文件
  dom2rec page.html --tags-file=./tags.toml --output=page.rec`,
	RunE: runConvert,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		dom2rec.InitLogger(flagDebug)
	},
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// tagsCmd 词表查看命令
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "列出支持的标签和行内元素",
	Long:  `列出当前词表(内置或 --tags-file 指定)中原样输出的标签，以及用于选择替换标签的行内元素`,
	Example: `  # 查看内置词表
  dom2rec tags

  # 查看合并自定义词表后的结果
  dom2rec tags --tags-file=./tags.toml`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func init() {
	defaultConfig := dom2rec.NewDefaultConfig()

	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "配置文件路径 (TOML)")
	rootCmd.PersistentFlags().StringVar(&flagInputFile, "input", "", "输入文件路径, - 表示标准输入")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "远程页面地址")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "from", defaultConfig.Format, "输入格式 (html/markdown)")
	rootCmd.PersistentFlags().StringVar(&flagSelector, "selector", "", "根元素CSS选择器 (默认为body)")
	rootCmd.PersistentFlags().StringVar(&flagXPath, "xpath", "", "根节点XPath表达式 (默认为body)")
	rootCmd.PersistentFlags().StringVar(&flagTagsFile, "tags-file", "", "标签词表文件 (TOML)")
	rootCmd.PersistentFlags().StringVar(&flagOutputFile, "output", "", "输出文件路径 (默认为标准输出)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", int(defaultConfig.HTTPTimeout.Seconds()), "HTTP请求超时(秒)")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", defaultConfig.HTTPUserAgent, "HTTP User-Agent")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "启用调试日志")

	rootCmd.AddCommand(tagsCmd)
}

// Execute 执行命令行程序
func Execute() error {
	return rootCmd.Execute()
}

// runConvert 运行转换
func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := buildRuntimeConfig(cmd, args)
	if err != nil {
		return fmt.Errorf("初始化配置失败: %w", err)
	}
	if cfg.Debug {
		dom2rec.InitLogger(true)
	}
	if cfg.ConfigFile != "" {
		slog.Debug("Using config file", "path", cfg.ConfigFile)
	}

	vocab, err := cfg.App.Vocabulary()
	if err != nil {
		return fmt.Errorf("加载词表失败: %w", err)
	}

	converter, err := dom2rec.NewConverter(&dom2rec.ConverterOptions{
		Vocabulary: vocab,
		Logger:     slog.Default(),
		Selector:   cfg.App.Selector,
		XPath:      cfg.App.XPath,
	})
	if err != nil {
		return fmt.Errorf("创建转换器失败: %w", err)
	}

	src, err := loadSource(cmd, cfg.App)
	if err != nil {
		return err
	}

	out, err := converter.ConvertReader(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("转换失败: %w", err)
	}

	return writeOutput(cmd, cfg.App.OutputFile, out)
}

// loadSource 读取输入文档, 需要时把Markdown渲染为HTML
func loadSource(cmd *cobra.Command, cfg *dom2rec.Config) ([]byte, error) {
	var (
		src []byte
		err error
	)

	switch {
	case cfg.URL != "":
		src, err = dom2rec.FetchURL(cfg.URL, cfg.FetchOptions())
		if err != nil {
			return nil, fmt.Errorf("抓取页面失败: %w", err)
		}
	case cfg.InputFile == "-":
		src, err = dom2rec.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("读取标准输入失败: %w", err)
		}
	default:
		src, err = dom2rec.ReadFile(cfg.InputFile)
		if err != nil {
			return nil, fmt.Errorf("加载输入文件失败: %w", err)
		}
	}

	if cfg.Format == dom2rec.FormatMarkdown {
		src, err = dom2rec.MarkdownToHTML(src)
		if err != nil {
			return nil, fmt.Errorf("转换Markdown失败: %w", err)
		}
	}
	return src, nil
}

func writeOutput(cmd *cobra.Command, path, out string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(path, []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	slog.Debug("Wrote output", "path", path, "bytes", len(out)+1)
	return nil
}

// runTags 列出词表
func runTags(cmd *cobra.Command, args []string) error {
	cfg, err := buildRuntimeConfig(cmd, args)
	if err != nil {
		return fmt.Errorf("初始化配置失败: %w", err)
	}

	vocab, err := cfg.App.Vocabulary()
	if err != nil {
		return fmt.Errorf("加载词表失败: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "supported: %s\n", strings.Join(vocab.Supported(), " "))
	fmt.Fprintf(cmd.OutOrStdout(), "inline: %s\n", strings.Join(vocab.Inline(), " "))
	return nil
}
