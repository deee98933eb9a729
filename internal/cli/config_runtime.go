package cli

import (
	"fmt"
	"strings"

	"github.com/fdkevin0/htmltree"
	"github.com/fdkevin0/htmltree/internal/configsource"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type runtimeConfig struct {
	App        *htmltree.Config
	InputFile  string
	XPath      string
	CSS        string
	Raw        bool
	Limit      int
	Debug      bool
	ConfigFile string
}

type runtimeConfigValues struct {
	htmltree.Config `mapstructure:",squash"`
	InputFile       string `mapstructure:"input"`
	XPath           string `mapstructure:"xpath"`
	CSS             string `mapstructure:"css"`
	Raw             bool   `mapstructure:"raw"`
	Limit           int    `mapstructure:"limit"`
	PolicyFile      string `mapstructure:"policy"`
	Debug           bool   `mapstructure:"debug"`
}

func buildRuntimeConfig(cmd *cobra.Command, configFile string) (*runtimeConfig, error) {
	v, err := configsource.NewViperForCommand(cmd, configFile)
	if err != nil {
		return nil, err
	}

	values := runtimeConfigValues{
		Config: *htmltree.NewDefaultConfig(),
	}
	values.Clean.Attributes = nil
	if err := v.Unmarshal(&values, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, htmltree.NewConfigError("failed to decode configuration", err)
	}
	if !v.IsSet("clean.attributes") {
		values.Clean.Attributes = htmltree.DefaultPolicy().Attributes
	}

	values.Encoding = strings.TrimSpace(values.Encoding)
	values.InputEncoding = strings.TrimSpace(values.InputEncoding)
	values.InputFile = strings.TrimSpace(values.InputFile)
	values.XPath = strings.TrimSpace(values.XPath)
	values.CSS = strings.TrimSpace(values.CSS)
	values.PolicyFile = strings.TrimSpace(values.PolicyFile)

	if values.PolicyFile != "" {
		policy, err := htmltree.LoadPolicyFile(values.PolicyFile)
		if err != nil {
			return nil, err
		}
		values.Clean = *policy
	}

	cfg := &runtimeConfig{
		App:        &values.Config,
		InputFile:  values.InputFile,
		XPath:      values.XPath,
		CSS:        values.CSS,
		Raw:        values.Raw,
		Limit:      values.Limit,
		Debug:      values.Debug,
		ConfigFile: v.ConfigFileUsed(),
	}

	if err := validateRuntimeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateRuntimeConfig(cfg *runtimeConfig) error {
	if cfg.XPath != "" && cfg.CSS != "" {
		return fmt.Errorf("--xpath and --css are mutually exclusive")
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// selector returns the configured selector, or nil when none was given.
func (c *runtimeConfig) selector() htmltree.Selector {
	switch {
	case c.XPath != "":
		return htmltree.XPath(c.XPath)
	case c.CSS != "":
		return htmltree.CSS(c.CSS)
	default:
		return nil
	}
}
