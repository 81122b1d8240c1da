package dom2rec

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Input formats accepted by the command line.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// FetchOptions configures FetchURL.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
}

// ReadFile reads a document from path, or from stdin when path is "-".
func ReadFile(path string) ([]byte, error) {
	if path == "-" {
		return ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError(fmt.Sprintf("读取文件失败 %q", path), err)
	}
	return data, nil
}

// ReadAll reads a whole document from r.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewIOError("读取输入失败", err)
	}
	return data, nil
}

// FetchURL downloads a document. Non-2xx responses are network errors.
func FetchURL(url string, opts *FetchOptions) ([]byte, error) {
	if opts == nil {
		opts = &FetchOptions{}
	}

	collectorOpts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if opts.UserAgent != "" {
		collectorOpts = append(collectorOpts, colly.UserAgent(opts.UserAgent))
	}
	c := colly.NewCollector(collectorOpts...)
	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
		slog.Debug("Fetched document", "url", r.Request.URL.String(), "status", r.StatusCode, "bytes", len(r.Body))
	})

	if err := c.Visit(url); err != nil {
		return nil, NewNetworkError(fmt.Sprintf("抓取页面失败 %q", url), err)
	}
	c.Wait()

	if body == nil {
		return nil, NewNetworkError(fmt.Sprintf("页面没有返回内容 %q", url), nil)
	}
	return body, nil
}

// MarkdownToHTML renders Markdown to HTML. Raw HTML in the source is kept so
// it reaches the converter unchanged.
func MarkdownToHTML(src []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, NewParseError("渲染Markdown失败", err)
	}
	return buf.Bytes(), nil
}
