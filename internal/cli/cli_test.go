package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fdkevin0/htmltree"
)

func isolateConfigForTest(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HTMLTREE_CONFIG", "")
	t.Chdir(t.TempDir())
}

func runForTest(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	isolateConfigForTest(t)

	const page = `<div id="main" class="c"><p>Price: <span>1 200</span> rub</p>` +
		`<script>var x = 1;</script><img src="a.png" width="4"></div>`

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"text", []string{"text", "--css", "p"}, "Price: 1 200 rub\n"},
		{"smart text", []string{"text", "--smart"}, "Price: 1 200 rub\n"},
		{"number", []string{"number", "--xpath", "//span"}, "1\n"},
		{"number ignoring spaces", []string{"number", "--css", "span", "--ignore-spaces"}, "1200\n"},
		{"render", []string{"render", "--css", "img"}, `<img src="a.png" width="4">` + "\n"},
		{"render indented", []string{"render", "--css", "p", "--indent", "  "}, "<p>\n  Price:\n  <span>\n    1 200\n  </span>\n  rub\n</p>\n"},
		{"drop", []string{"drop", "--css", "script, img"}, `<div id="main" class="c"><p>Price: <span>1 200</span> rub</p></div>` + "\n"},
		{"drop keeping content", []string{"drop", "--css", "span", "--keep-content"}, `<div id="main" class="c"><p>Price: 1 200 rub</p><script>var x = 1;</script><img src="a.png" width="4"></div>` + "\n"},
		{"replace", []string{"replace", "N/A", "--css", "span"}, `<div id="main" class="c"><p>Price: N/A rub</p><script>var x = 1;</script><img src="a.png" width="4"></div>` + "\n"},
		{"clean", []string{"clean"}, `<div><p>Price: <span>1 200</span> rub</p><script>var x = 1;</script><img src="a.png"></div>` + "\n"},
		{"truncate", []string{"truncate", "--limit", "5"}, `<div id="main" class="c"><p>Price</p></div>` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runForTest(t, page, tt.args...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdownCommand(t *testing.T) {
	isolateConfigForTest(t)

	got, err := runForTest(t, `<div><h2>News</h2><p><a href="/n/1">first</a></p></div>`,
		"markdown", "--markdown-domain", "https://example.com")
	if err != nil {
		t.Fatalf("markdown failed: %v", err)
	}
	if !strings.Contains(got, "## News") || !strings.Contains(got, "https://example.com/n/1") {
		t.Fatalf("unexpected markdown: %q", got)
	}
}

func TestCommandReadsInputFile(t *testing.T) {
	isolateConfigForTest(t)

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(`<p>from file</p>`), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	got, err := runForTest(t, "", "text", "--input", path)
	if err != nil {
		t.Fatalf("text failed: %v", err)
	}
	if got != "from file\n" {
		t.Fatalf("output = %q", got)
	}

	_, err = runForTest(t, "", "text", "--input", filepath.Join(t.TempDir(), "missing.html"))
	if htmltree.ErrorTypeOf(err) != htmltree.IOError {
		t.Fatalf("expected IOError, got %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	isolateConfigForTest(t)

	tests := []struct {
		name string
		args []string
		kind htmltree.ErrorType
	}{
		{"number without digits", []string{"number"}, htmltree.NotFoundError},
		{"drop root", []string{"drop", "--xpath", "."}, htmltree.ValidationError},
		{"invalid xpath", []string{"text", "--xpath", "//p["}, htmltree.ValidationError},
		{"unknown output encoding", []string{"render", "--encoding", "klingon"}, htmltree.EncodingError},
		{"missing policy file", []string{"clean", "--policy", "missing.toml"}, htmltree.ConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runForTest(t, `<p>text</p>`, tt.args...)
			if htmltree.ErrorTypeOf(err) != tt.kind {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
		})
	}

	if _, err := runForTest(t, `<p>x</p>`, "drop"); err == nil {
		t.Fatal("expected error when drop has no selector")
	}
	if _, err := runForTest(t, `<p>x</p>`, "text", "--css", "p", "--xpath", "//p"); err == nil {
		t.Fatal("expected error for --css together with --xpath")
	}
	if _, err := runForTest(t, `<p>x</p>`, "truncate", "--limit", "-1"); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestBuildRuntimeConfigEnvOverridesConfigFile(t *testing.T) {
	isolateConfigForTest(t)

	configPath := filepath.Join(t.TempDir(), "htmltree.toml")
	content := strings.Join([]string{
		`encoding = "cp1251"`,
		`smart = true`,
		`markdown_domain = "https://from-config.example"`,
		``,
		`[clean]`,
		`drop_tags = ["script"]`,
		`[clean.attributes]`,
		`"*" = ["id"]`,
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("HTMLTREE_CONFIG", configPath)
	t.Setenv("HTMLTREE_ENCODING", "koi8-r")

	cmd := newMarkdownCommand(&options{})
	NewRootCommand().AddCommand(cmd)

	cfg, err := buildRuntimeConfig(cmd, "")
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}

	if cfg.App.Encoding != "koi8-r" {
		t.Fatalf("expected env encoding override, got %q", cfg.App.Encoding)
	}
	if !cfg.App.Smart {
		t.Fatal("expected smart from config file")
	}
	if cfg.App.MarkdownDomain != "https://from-config.example" {
		t.Fatalf("expected config file markdown_domain, got %q", cfg.App.MarkdownDomain)
	}
	if !cfg.App.Clean.Allows("p", "id") || cfg.App.Clean.Allows("a", "href") {
		t.Fatalf("expected configured attribute policy, got %+v", cfg.App.Clean.Attributes)
	}
	if len(cfg.App.Clean.DropTags) != 1 || cfg.App.Clean.DropTags[0] != "script" {
		t.Fatalf("expected configured drop tags, got %v", cfg.App.Clean.DropTags)
	}
	if cfg.ConfigFile != configPath {
		t.Fatalf("expected config file %q, got %q", configPath, cfg.ConfigFile)
	}
}

func TestBuildRuntimeConfigFlagOverridesEnv(t *testing.T) {
	isolateConfigForTest(t)
	t.Setenv("HTMLTREE_MARKDOWN_DOMAIN", "https://from-env.example")

	cmd := newMarkdownCommand(&options{})
	NewRootCommand().AddCommand(cmd)
	if err := cmd.Flags().Set("markdown-domain", "https://from-flag.example"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	cfg, err := buildRuntimeConfig(cmd, "")
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}
	if cfg.App.MarkdownDomain != "https://from-flag.example" {
		t.Fatalf("expected flag override, got %q", cfg.App.MarkdownDomain)
	}
	if !cfg.App.Clean.Allows("img", "src") {
		t.Fatal("expected default attribute policy")
	}
}

func TestBuildRuntimeConfigMissingExplicitConfigFile(t *testing.T) {
	isolateConfigForTest(t)
	t.Setenv("HTMLTREE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cmd := newTextCommand(&options{})
	NewRootCommand().AddCommand(cmd)

	if _, err := buildRuntimeConfig(cmd, ""); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
