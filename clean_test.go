package htmltree

import "testing"

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<div><h1>test</h1></div>`, `<div><h1>test</h1></div>`},
		{`<h1>test</h1>`, `<h1>test</h1>`},
		{`<img src="foo" width="4">`, `<img src="foo">`},
		{
			`<div>T <img src="test_img.jpg" width="100%" alt="Test image"> T</div>`,
			`<div>T <img src="test_img.jpg"> T</div>`,
		},
		{
			`<p class="x" style="color:red"><a href="/a" onclick="x()" target="_blank">a</a></p>`,
			`<p><a href="/a">a</a></p>`,
		},
	}

	for _, tt := range tests {
		got, err := CleanHTML(tt.in, nil)
		if err != nil {
			t.Fatalf("CleanHTML(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}

		again, err := CleanHTML(got, nil)
		if err != nil {
			t.Fatalf("CleanHTML(%q): %v", got, err)
		}
		if again != got {
			t.Errorf("CleanHTML is not idempotent: %q -> %q", got, again)
		}
	}
}

func TestCleanHTMLWithPolicy(t *testing.T) {
	policy := &Policy{
		Attributes: map[string][]string{
			"A":    {"HREF", "title"},
			AnyTag: {"id"},
		},
		DropTags:      []string{"script", " Style "},
		UnwrapTags:    []string{"font"},
		StripComments: true,
	}

	const in = `<div id="main" class="c"><!-- ad --><script>x()</script>` +
		`<p>one <font color="red">two</font> three</p>` +
		`<style>p{}</style><a href="/x" title="t" rel="nofollow">link</a></div>`
	const want = `<div id="main"><p>one two three</p><a href="/x" title="t">link</a></div>`

	got, err := CleanHTML(in, policy)
	if err != nil {
		t.Fatalf("CleanHTML: %v", err)
	}
	if got != want {
		t.Fatalf("CleanHTML() = %q, want %q", got, want)
	}

	if policy.DropTags[1] != " Style " {
		t.Fatal("CleanHTML must not modify the caller's policy")
	}
}

func TestCleanNodeRootTag(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		policy *Policy
		want   string
	}{
		{
			"drop root empties it",
			`<section class="x"><p>a</p></section>`,
			&Policy{DropTags: []string{"SECTION"}},
			`<div></div>`,
		},
		{
			"drop html root keeps its name",
			`<html><body><p>a</p></body></html>`,
			&Policy{DropTags: []string{"html"}},
			`<html></html>`,
		},
		{
			"unwrap root renames it",
			`<section class="x"><p>a</p><section>b</section></section>`,
			&Policy{UnwrapTags: []string{"section"}},
			`<div><p>a</p>b</div>`,
		},
		{
			"unwrap synthesized span wrapper",
			`hello <span class="a">x</span> <b>y</b>`,
			&Policy{UnwrapTags: []string{"span"}},
			`<div>hello x <b>y</b></div>`,
		},
		{
			"unwrap synthesized div wrapper",
			`<p>a</p><p>b <div>c</div></p>`,
			&Policy{UnwrapTags: []string{"div"}},
			`<div><p>a</p><p>b </p>c<p></p></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanHTML(tt.in, tt.policy)
			if err != nil {
				t.Fatalf("CleanHTML: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CleanHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanNodeInvalidTagSelector(t *testing.T) {
	const doc = `<div class="x"><p>a</p></div>`
	root := mustParse(t, doc)

	err := CleanNode(root, &Policy{DropTags: []string{"div"}, UnwrapTags: []string{"p[["}})
	if ErrorTypeOf(err) != ValidationError {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := RenderHTML(root); got != doc {
		t.Fatalf("tree modified on error: %s", got)
	}
}

func TestCleanHTMLParseError(t *testing.T) {
	if _, err := CleanHTML("  ", nil); !IsParseError(err) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestTruncateHTML(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"inside nested element", `<div><p>hello <b>world</b></p><p>second</p></div>`, 8, `<div><p>hello <b>wo</b></p></div>`},
		{"on element boundary", `<div><p>abc</p><p>def</p></div>`, 3, `<div><p>abc</p><p></p></div>`},
		{"exact fit keeps trailing element", `<p>ab<img src="x"></p>`, 2, `<p>ab<img src="x"></p>`},
		{"exact fit cuts at next text", `<p>ab<img src="x">cd<br></p>`, 2, `<p>ab<img src="x"></p>`},
		{"zero limit keeps leading element", `<div><img src="x"><p>ab</p><p>cd</p></div>`, 0, `<div><img src="x"><p></p></div>`},
		{"limit above length", `<p>short</p>`, 100, `<p>short</p>`},
		{"multibyte runes", `<p>фыва</p>`, 2, `<p>фы</p>`},
		{"zero limit", `<div><p>abc</p></div>`, 0, `<div><p></p></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TruncateHTML(tt.in, tt.limit)
			if err != nil {
				t.Fatalf("TruncateHTML: %v", err)
			}
			if got != tt.want {
				t.Fatalf("TruncateHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateNodeNegativeLimit(t *testing.T) {
	root := mustParse(t, `<p>x</p>`)

	if err := TruncateNode(root, -1); ErrorTypeOf(err) != ValidationError {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
