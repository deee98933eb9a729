package htmltree

import (
	"fmt"
	"log/slog"

	"github.com/andybalholm/cascadia"
	"github.com/samber/lo"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CleanHTML parses text, applies policy and renders the result. A nil policy
// means DefaultPolicy.
func CleanHTML(text string, policy *Policy) (string, error) {
	root, err := ParseHTML(text)
	if err != nil {
		return "", err
	}
	if err := CleanNode(root, policy); err != nil {
		return "", err
	}
	return RenderHTML(root), nil
}

// CleanNode applies policy to node and its descendants in place.
//
// node itself cannot be removed: when it matches DropTags it is emptied
// and, unless it is <html>, renamed to <div>; when it matches UnwrapTags it
// is renamed to <div> and loses its attributes.
func CleanNode(node *html.Node, policy *Policy) error {
	if node == nil {
		return NewValidationError("nil node", nil)
	}
	if policy == nil {
		policy = DefaultPolicy()
	} else {
		normalized := *policy
		normalized.normalize()
		policy = &normalized
	}

	if err := validateTags(lo.Union(policy.DropTags, policy.UnwrapTags)); err != nil {
		return err
	}

	if node.Type == html.ElementNode {
		switch {
		case matchesAny(node, policy.DropTags):
			for node.FirstChild != nil {
				node.RemoveChild(node.FirstChild)
			}
			node.Attr = nil
			if node.DataAtom != atom.Html {
				node.Data, node.DataAtom = "div", atom.Div
			}
		case matchesAny(node, policy.UnwrapTags):
			node.Data, node.DataAtom = "div", atom.Div
			node.Attr = nil
		}
	}

	if policy.StripComments {
		removeComments(node)
	}
	if err := dropTags(node, policy.DropTags, false); err != nil {
		return err
	}
	if err := dropTags(node, policy.UnwrapTags, true); err != nil {
		return err
	}

	removed := 0
	walkElements(node, func(n *html.Node) {
		kept := lo.Filter(n.Attr, func(attr html.Attribute, _ int) bool {
			return policy.Allows(n.Data, attr.Key)
		})
		removed += len(n.Attr) - len(kept)
		n.Attr = kept
	})
	slog.Debug("cleaned html", "removed_attributes", removed)
	return nil
}

func dropTags(node *html.Node, tags []string, keepContent bool) error {
	for _, tag := range tags {
		if _, err := DropNode(node, CSS(tag), keepContent); err != nil {
			return err
		}
	}
	return nil
}

// validateTags rejects tag selectors that do not compile, so that a failing
// policy leaves the tree untouched.
func validateTags(tags []string) error {
	for _, tag := range tags {
		if _, err := cascadia.Compile(tag); err != nil {
			return NewValidationError(fmt.Sprintf("invalid css selector %q", tag), err)
		}
	}
	return nil
}

func matchesAny(n *html.Node, tags []string) bool {
	return lo.SomeBy(tags, func(tag string) bool {
		sel, err := cascadia.Compile(tag)
		return err == nil && sel.Match(n)
	})
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
	mergeText(n)
}

func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

// TruncateHTML keeps the first limit runes of text content of text. The cut
// point is the first rune past the limit; everything after it is dropped and
// elements open at the cut stay balanced. Text-free elements before the cut
// point are kept.
func TruncateHTML(text string, limit int) (string, error) {
	root, err := ParseHTML(text)
	if err != nil {
		return "", err
	}
	if err := TruncateNode(root, limit); err != nil {
		return "", err
	}
	return RenderHTML(root), nil
}

// TruncateNode is TruncateHTML on an already parsed tree.
func TruncateNode(root *html.Node, limit int) error {
	if root == nil {
		return NewValidationError("nil node", nil)
	}
	if limit < 0 {
		return NewValidationError(fmt.Sprintf("negative limit %d", limit), nil)
	}

	remaining := limit
	cut := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			switch {
			case cut:
				n.RemoveChild(c)
			case c.Type == html.TextNode:
				if length := len([]rune(c.Data)); length > remaining {
					c.Data = TruncateText(c.Data, remaining)
					cut = true
				} else {
					remaining -= length
				}
			default:
				walk(c)
			}
			c = next
		}
		mergeText(n)
	}
	walk(root)
	return nil
}
