package htmltree

import (
	"fmt"
	"log/slog"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/samber/lo"
	"golang.org/x/net/html"
)

// Selector locates nodes within a tree.
type Selector interface {
	Select(root *html.Node) ([]*html.Node, error)
}

// XPath is an XPath 1.0 expression evaluated with root as both the context
// node and the document root, so ".//p" and "//p" search the same subtree.
type XPath string

// Select implements Selector.
func (x XPath) Select(root *html.Node) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(root, string(x))
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid xpath %q", string(x)), err)
	}
	return nodes, nil
}

func (x XPath) String() string { return "xpath:" + string(x) }

// CSS is a CSS selector matched against the descendants of root, like an
// XPath starting with ".//".
type CSS string

// Select implements Selector.
func (c CSS) Select(root *html.Node) ([]*html.Node, error) {
	sel, err := cascadia.Compile(string(c))
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid css selector %q", string(c)), err)
	}
	return lo.Filter(sel.MatchAll(root), func(n *html.Node, _ int) bool {
		return n != root
	}), nil
}

func (c CSS) String() string { return "css:" + string(c) }

// SelectAll returns every node sel matches under root, in document order.
func SelectAll(root *html.Node, sel Selector) ([]*html.Node, error) {
	if root == nil {
		return nil, NewValidationError("nil root node", nil)
	}
	if sel == nil {
		return nil, NewValidationError("nil selector", nil)
	}
	nodes, err := sel.Select(root)
	if err != nil {
		return nil, err
	}
	slog.Debug("selected nodes", "selector", sel, "count", len(nodes))
	return nodes, nil
}

// SelectOne returns the first node sel matches, or a NotFound error.
func SelectOne(root *html.Node, sel Selector) (*html.Node, error) {
	nodes, err := SelectAll(root, sel)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, NewNotFoundError(fmt.Sprintf("no node matches %v", sel))
	}
	return nodes[0], nil
}
