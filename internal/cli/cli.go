package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fdkevin0/htmltree"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

// options holds flag values shared by all subcommands of one root command.
type options struct {
	configFile string
	debug      bool
}

// NewRootCommand builds the htmltree command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "htmltree",
		Short: "HTML tree helpers: text, numbers, rendering, node removal and cleaning",
		Long: `htmltree reads one HTML document from --input (or stdin) and applies a
single transformation to it. Nodes are selected with --xpath or --css.`,
		Example: `  # Visible text of a node
  htmltree text --xpath '//div[@id="content"]' --smart < page.html

  # First number in a node
  htmltree number --css 'li.price' --ignore-spaces --input page.html

  # Remove nodes but keep their content
  htmltree drop --xpath './/span' --keep-content < page.html

  # Strip attributes outside the allow-list
  htmltree clean --policy ./policy.toml < page.html`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			htmltree.InitLogger(opts.debug)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (TOML)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.String("input", "", "input HTML file (default stdin)")
	flags.String("input-encoding", "", "input encoding (default: sniff from document)")
	flags.String("encoding", "utf-8", "output encoding for rendered markup")

	rootCmd.AddCommand(
		newTextCommand(opts),
		newNumberCommand(opts),
		newRenderCommand(opts),
		newDropCommand(opts),
		newReplaceCommand(opts),
		newCleanCommand(opts),
		newTruncateCommand(opts),
		newMarkdownCommand(opts),
	)
	return rootCmd
}

// Execute runs the command line program.
func Execute() error {
	return NewRootCommand().Execute()
}

func addSelectorFlags(cmd *cobra.Command) {
	cmd.Flags().String("xpath", "", "XPath expression selecting nodes")
	cmd.Flags().String("css", "", "CSS selector selecting nodes")
	cmd.MarkFlagsMutuallyExclusive("xpath", "css")
}

func newTextCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Print the normalized text of the selected nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			nodes, err := selectedOrRoot(root, cfg)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				fmt.Fprintln(cmd.OutOrStdout(), htmltree.GetNodeText(n, cfg.App.Smart))
			}
			return nil
		},
	}
	addSelectorFlags(cmd)
	cmd.Flags().Bool("smart", false, "skip script/style content and join fragments with spaces")
	return cmd
}

func newNumberCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Print the first number found in the selected node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			node := root
			if sel := cfg.selector(); sel != nil {
				if node, err = htmltree.SelectOne(root, sel); err != nil {
					return err
				}
			}
			if cfg.Raw {
				digits, err := htmltree.FindNodeNumberString(node, cfg.App.IgnoreSpaces)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), digits)
				return nil
			}
			number, err := htmltree.FindNodeNumber(node, cfg.App.IgnoreSpaces)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
	addSelectorFlags(cmd)
	cmd.Flags().Bool("ignore-spaces", false, "treat digit groups separated by whitespace as one number")
	cmd.Flags().Bool("raw", false, "print the digit string instead of an integer")
	return cmd
}

func newRenderCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Serialize the selected nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			nodes, err := selectedOrRoot(root, cfg)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				if err := writeMarkup(cmd.OutOrStdout(), n, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addSelectorFlags(cmd)
	cmd.Flags().String("indent", "", "indent string; when set, print one tag or text run per line")
	return cmd
}

func newDropCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Remove the selected nodes and print the resulting document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			sel, err := requireSelector(cfg)
			if err != nil {
				return err
			}
			if _, err := htmltree.DropNode(root, sel, cfg.App.KeepContent); err != nil {
				return err
			}
			return writeMarkup(cmd.OutOrStdout(), root, cfg)
		},
	}
	addSelectorFlags(cmd)
	cmd.Flags().Bool("keep-content", false, "keep the children of removed nodes")
	return cmd
}

func newReplaceCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace TEXT",
		Short: "Replace the selected nodes with TEXT and print the resulting document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			sel, err := requireSelector(cfg)
			if err != nil {
				return err
			}
			if _, err := htmltree.ReplaceNodeWithText(root, sel, args[0]); err != nil {
				return err
			}
			return writeMarkup(cmd.OutOrStdout(), root, cfg)
		},
	}
	addSelectorFlags(cmd)
	return cmd
}

func newCleanCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Strip attributes not allowed by the cleaning policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			if err := htmltree.CleanNode(root, &cfg.App.Clean); err != nil {
				return err
			}
			return writeMarkup(cmd.OutOrStdout(), root, cfg)
		},
	}
	cmd.Flags().String("policy", "", "policy file (TOML) overriding the configured [clean] table")
	return cmd
}

func newTruncateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "truncate",
		Short: "Keep the first --limit characters of text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			if err := htmltree.TruncateNode(root, cfg.Limit); err != nil {
				return err
			}
			return writeMarkup(cmd.OutOrStdout(), root, cfg)
		},
	}
	cmd.Flags().Int("limit", 200, "number of text characters to keep")
	return cmd
}

func newMarkdownCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Convert the selected nodes to Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := load(cmd, opts)
			if err != nil {
				return err
			}
			nodes, err := selectedOrRoot(root, cfg)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				markdown, err := htmltree.RenderMarkdown(n, cfg.App.MarkdownDomain)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), markdown)
			}
			return nil
		},
	}
	addSelectorFlags(cmd)
	cmd.Flags().String("markdown-domain", "", "domain used to resolve relative links")
	return cmd
}

// load builds the runtime configuration and parses the input document.
func load(cmd *cobra.Command, opts *options) (*runtimeConfig, *html.Node, error) {
	cfg, err := buildRuntimeConfig(cmd, opts.configFile)
	if err != nil {
		return nil, nil, err
	}
	data, err := readInput(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	root, err := htmltree.ParseHTMLBytes(data, cfg.App.InputEncoding)
	if err != nil {
		return nil, nil, err
	}
	return cfg, root, nil
}

func readInput(cmd *cobra.Command, cfg *runtimeConfig) ([]byte, error) {
	if cfg.InputFile == "" || cfg.InputFile == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, htmltree.NewIOError("failed to read stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(cfg.InputFile)
	if err != nil {
		return nil, htmltree.NewIOError(fmt.Sprintf("failed to read %s", cfg.InputFile), err)
	}
	return data, nil
}

func selectedOrRoot(root *html.Node, cfg *runtimeConfig) ([]*html.Node, error) {
	sel := cfg.selector()
	if sel == nil {
		return []*html.Node{root}, nil
	}
	return htmltree.SelectAll(root, sel)
}

func requireSelector(cfg *runtimeConfig) (htmltree.Selector, error) {
	sel := cfg.selector()
	if sel == nil {
		return nil, fmt.Errorf("one of --xpath or --css is required")
	}
	return sel, nil
}

func writeMarkup(w io.Writer, n *html.Node, cfg *runtimeConfig) error {
	var text string
	if cfg.App.Indent != "" {
		text = htmltree.FormatHTML(n, cfg.App.Indent)
	} else {
		text = htmltree.RenderHTML(n) + "\n"
	}
	markup, err := htmltree.EncodeMarkup(text, cfg.App.Encoding)
	if err != nil {
		return err
	}
	if _, err := w.Write(markup); err != nil {
		return htmltree.NewIOError("failed to write output", err)
	}
	return nil
}
