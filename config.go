package htmltree

// Config holds the settings shared by the command line tools.
type Config struct {
	Encoding       string `toml:"encoding" mapstructure:"encoding"`             // output encoding for rendered markup
	InputEncoding  string `toml:"input_encoding" mapstructure:"input_encoding"` // empty: sniff from the document
	Smart          bool   `toml:"smart" mapstructure:"smart"`                   // smart text extraction
	IgnoreSpaces   bool   `toml:"ignore_spaces" mapstructure:"ignore_spaces"`   // join digit groups split by spaces
	KeepContent    bool   `toml:"keep_content" mapstructure:"keep_content"`     // keep children when dropping nodes
	MarkdownDomain string `toml:"markdown_domain" mapstructure:"markdown_domain"`
	Indent         string `toml:"indent" mapstructure:"indent"` // non-empty: render one node per line
	Clean          Policy `toml:"clean" mapstructure:"clean"`
}

// NewDefaultConfig creates the default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Encoding: "utf-8",
		Clean:    *DefaultPolicy(),
	}
}
