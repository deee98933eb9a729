package htmltree

import (
	"testing"

	"golang.org/x/net/html"
)

func TestSelectAll(t *testing.T) {
	root := mustParse(t, `<div><ul id="list"><li class="a">1</li><li>2</li><li class="a">3</li></ul><p>x</p></div>`)

	tests := []struct {
		name string
		sel  Selector
		want []string
	}{
		{"xpath descendants", XPath(".//li"), []string{"1", "2", "3"}},
		{"xpath absolute", XPath("//li[@class='a']"), []string{"1", "3"}},
		{"css class", CSS("li.a"), []string{"1", "3"}},
		{"css skips root", CSS("div"), nil},
		{"css universal skips root", CSS("*"), []string{"123", "1", "2", "3", "x"}},
		{"xpath self", XPath("."), []string{"123x"}},
		{"no match", CSS("table"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := SelectAll(root, tt.sel)
			if err != nil {
				t.Fatalf("SelectAll: %v", err)
			}
			if len(nodes) != len(tt.want) {
				t.Fatalf("SelectAll() returned %d nodes, want %d", len(nodes), len(tt.want))
			}
			for i, n := range nodes {
				if got := GetNodeText(n, false); got != tt.want[i] {
					t.Errorf("node %d text = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestSelectAllTextNodes(t *testing.T) {
	root := mustParse(t, `<p>a<b>b</b>c</p>`)

	nodes, err := SelectAll(root, XPath("./text()"))
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Type != html.TextNode || nodes[1].Data != "c" {
		t.Fatalf("unexpected text nodes: %v", nodes)
	}
}

func TestSelectAllInvalid(t *testing.T) {
	root := mustParse(t, `<p>x</p>`)

	for _, sel := range []Selector{XPath("//p["), CSS("p > > a"), nil} {
		if _, err := SelectAll(root, sel); ErrorTypeOf(err) != ValidationError {
			t.Errorf("SelectAll(%v): expected ValidationError, got %v", sel, err)
		}
	}
	if _, err := SelectAll(nil, CSS("p")); ErrorTypeOf(err) != ValidationError {
		t.Errorf("SelectAll(nil): expected ValidationError, got %v", err)
	}
}

func TestSelectOne(t *testing.T) {
	root := mustParse(t, `<div><p>first</p><p>second</p></div>`)

	node, err := SelectOne(root, CSS("p"))
	if err != nil {
		t.Fatalf("SelectOne: %v", err)
	}
	if got := Text(node); got != "first" {
		t.Fatalf("SelectOne() text = %q, want %q", got, "first")
	}

	if _, err := SelectOne(root, XPath("//table")); !IsNotFound(err) {
		t.Fatalf("expected NotFound error, got %v", err)
	}
}

func TestSelectorString(t *testing.T) {
	if got := XPath("//a").String(); got != "xpath://a" {
		t.Errorf("XPath.String() = %q", got)
	}
	if got := CSS("a.b").String(); got != "css:a.b" {
		t.Errorf("CSS.String() = %q", got)
	}
}
