package cli

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/fdkevin0/dom2rec"
	"github.com/fdkevin0/dom2rec/internal/configsource"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type runtimeConfig struct {
	App        *dom2rec.Config
	Debug      bool
	ConfigFile string
}

type runtimeConfigValues struct {
	dom2rec.Config `mapstructure:",squash"`
	Debug          bool `mapstructure:"debug"`
}

func buildRuntimeConfig(cmd *cobra.Command, args []string) (*runtimeConfig, error) {
	v, err := configsource.NewViperForCommand(cmd, flagConfigFile)
	if err != nil {
		return nil, err
	}

	values := runtimeConfigValues{
		Config: *dom2rec.NewDefaultConfig(),
	}
	if err := v.Unmarshal(&values, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("反序列化配置失败: %w", err)
	}

	values.InputFile = strings.TrimSpace(values.InputFile)
	values.URL = strings.TrimSpace(values.URL)
	values.Format = strings.ToLower(strings.TrimSpace(values.Format))
	values.Selector = strings.TrimSpace(values.Selector)
	values.XPath = strings.TrimSpace(values.XPath)
	values.TagsFile = strings.TrimSpace(values.TagsFile)
	values.OutputFile = strings.TrimSpace(values.OutputFile)
	values.HTTPUserAgent = strings.TrimSpace(values.HTTPUserAgent)

	if values.InputFile == "" && len(args) > 0 {
		values.InputFile = args[0]
	}

	cfg := &runtimeConfig{
		App:        &values.Config,
		Debug:      values.Debug,
		ConfigFile: v.ConfigFileUsed(),
	}

	if err := validateRuntimeConfig(cfg); err != nil {
		return nil, err
	}

	// nothing named: read the document from stdin
	if cfg.App.InputFile == "" && cfg.App.URL == "" {
		cfg.App.InputFile = "-"
	}
	return cfg, nil
}

func validateRuntimeConfig(cfg *runtimeConfig) error {
	if cfg.App.InputFile != "" && cfg.App.URL != "" {
		return fmt.Errorf("--input 与 --url 不能同时指定")
	}
	if cfg.App.Selector != "" && cfg.App.XPath != "" {
		return fmt.Errorf("--selector 与 --xpath 不能同时指定")
	}
	switch cfg.App.Format {
	case "":
		cfg.App.Format = dom2rec.FormatHTML
	case dom2rec.FormatHTML, dom2rec.FormatMarkdown:
	default:
		return fmt.Errorf("不支持的输入格式 %q (可选: html, markdown)", cfg.App.Format)
	}
	if cfg.App.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout 必须大于 0")
	}
	return nil
}

func durationDecodeHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case int:
			return time.Duration(value) * time.Second, nil
		case int64:
			return time.Duration(value) * time.Second, nil
		case float64:
			return time.Duration(value) * time.Second, nil
		case string:
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return time.Duration(0), nil
			}
			if strings.ContainsAny(trimmed, "hmsuµns") {
				return time.ParseDuration(trimmed)
			}
			return time.ParseDuration(trimmed + "s")
		default:
			return data, nil
		}
	}
}
