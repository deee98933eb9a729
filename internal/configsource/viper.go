package configsource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fdkevin0/htmltree"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the tools.
const EnvPrefix = "HTMLTREE"

func NewViperForCommand(cmd *cobra.Command, configFlagValue string) (*viper.Viper, error) {
	v := viper.New()
	applyViperDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := bindViperFlags(v, cmd); err != nil {
		return nil, err
	}

	configPath, explicit, err := resolveConfigFilePath(cmd, configFlagValue)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) && !explicit {
				return v, nil
			}
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	return v, nil
}

// clean.attributes has no default here; callers fall back to
// htmltree.DefaultPolicy when the key is unset.
func applyViperDefaults(v *viper.Viper) {
	defaultConfig := htmltree.NewDefaultConfig()
	v.SetDefault("encoding", defaultConfig.Encoding)
	v.SetDefault("input_encoding", defaultConfig.InputEncoding)
	v.SetDefault("smart", defaultConfig.Smart)
	v.SetDefault("ignore_spaces", defaultConfig.IgnoreSpaces)
	v.SetDefault("keep_content", defaultConfig.KeepContent)
	v.SetDefault("markdown_domain", defaultConfig.MarkdownDomain)
	v.SetDefault("indent", defaultConfig.Indent)
	v.SetDefault("clean.strip_comments", defaultConfig.Clean.StripComments)
}

func bindViperFlags(v *viper.Viper, cmd *cobra.Command) error {
	visited := make(map[string]struct{})
	var bindErr error
	bindFlag := func(f *pflag.Flag) {
		if f == nil || bindErr != nil {
			return
		}
		if _, ok := visited[f.Name]; ok {
			return
		}
		visited[f.Name] = struct{}{}
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(configName, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %q to key %q: %w", f.Name, configName, err)
		}
	}

	cmd.Flags().VisitAll(bindFlag)
	cmd.InheritedFlags().VisitAll(bindFlag)
	return bindErr
}

func resolveConfigFilePath(cmd *cobra.Command, configFlagValue string) (string, bool, error) {
	if flagChanged(cmd, "config") {
		path := strings.TrimSpace(configFlagValue)
		if path == "" {
			return "", true, errors.New("--config must not be empty")
		}
		return path, true, nil
	}

	if value := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG")); value != "" {
		return value, true, nil
	}

	candidates := []string{
		filepath.Join(".", "htmltree.toml"),
		htmltree.DefaultConfigFile("htmltree"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false, nil
		}
	}

	return "", false, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}
