package htmltree

import (
	"fmt"
	"log/slog"

	"golang.org/x/net/html"
)

// DropNode removes every node sel matches under root and returns how many
// were removed.
//
// The tail of a removed node is appended to the text that precedes it. With
// keepContent the node's own text and children take its place; otherwise
// they go with it. Nothing is modified when the selector fails or matches
// the tree root.
func DropNode(root *html.Node, sel Selector, keepContent bool) (int, error) {
	nodes, err := selectDetachable(root, sel)
	if err != nil {
		return 0, err
	}

	for _, n := range nodes {
		parent := n.Parent
		if keepContent {
			unwrapNode(n)
		} else {
			dropTree(n)
		}
		mergeText(parent)
	}

	slog.Debug("dropped nodes", "selector", sel, "count", len(nodes), "keep_content", keepContent)
	return len(nodes), nil
}

// ReplaceNodeWithText replaces every node sel matches with text, placed
// after the text preceding the node and before the node's tail.
func ReplaceNodeWithText(root *html.Node, sel Selector, text string) (int, error) {
	nodes, err := selectDetachable(root, sel)
	if err != nil {
		return 0, err
	}

	for _, n := range nodes {
		parent := n.Parent
		tail := Tail(n)
		SetTail(n, "")
		appendPrecedingText(n, text+tail)
		parent.RemoveChild(n)
		mergeText(parent)
	}

	slog.Debug("replaced nodes with text", "selector", sel, "count", len(nodes))
	return len(nodes), nil
}

// selectDetachable selects nodes and checks that each one can be detached
// before anything is mutated.
func selectDetachable(root *html.Node, sel Selector) ([]*html.Node, error) {
	nodes, err := SelectAll(root, sel)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Type == html.TextNode {
			return nil, NewValidationError(fmt.Sprintf("%v matches a text node", sel), nil)
		}
		if isTreeRoot(n) {
			return nil, NewValidationError(fmt.Sprintf("%v matches the tree root", sel), nil)
		}
	}
	return nodes, nil
}

// dropTree removes n with its content and keeps its tail in place.
func dropTree(n *html.Node) {
	tail := Tail(n)
	SetTail(n, "")
	appendPrecedingText(n, tail)
	n.Parent.RemoveChild(n)
}

// unwrapNode moves the children of n (its text included) in front of n and
// removes n.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}
