package htmltree

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the text inside n that precedes its first non-text child.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil && c.Type == html.TextNode; c = c.NextSibling {
		sb.WriteString(c.Data)
	}
	return sb.String()
}

// Tail returns the text that follows n up to its next non-text sibling.
func Tail(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.NextSibling; c != nil && c.Type == html.TextNode; c = c.NextSibling {
		sb.WriteString(c.Data)
	}
	return sb.String()
}

// SetText replaces the leading text of n with s.
func SetText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil && c.Type == html.TextNode; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if s != "" {
		n.InsertBefore(newText(s), n.FirstChild)
	}
}

// SetTail replaces the tail of n with s. n must have a parent.
func SetTail(n *html.Node, s string) {
	parent := n.Parent
	for c := n.NextSibling; c != nil && c.Type == html.TextNode; {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	if s != "" {
		parent.InsertBefore(newText(s), n.NextSibling)
	}
}

// CloneNode returns a detached deep copy of n.
func CloneNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(n.Attr))
		copy(clone.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneNode(c))
	}
	return clone
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// previousNonText returns the closest preceding sibling that carries a tail.
func previousNonText(n *html.Node) *html.Node {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type != html.TextNode {
			return c
		}
	}
	return nil
}

// appendPrecedingText appends s to whatever text ends right before n:
// the tail of the previous sibling, or the text of the parent.
func appendPrecedingText(n *html.Node, s string) {
	if s == "" {
		return
	}
	if prev := previousNonText(n); prev != nil {
		SetTail(prev, Tail(prev)+s)
		return
	}
	SetText(n.Parent, Text(n.Parent)+s)
}

// mergeText joins adjacent text children of n and drops empty ones.
func mergeText(n *html.Node) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.TextNode {
			c = next
			continue
		}
		if c.Data == "" {
			n.RemoveChild(c)
			c = next
			continue
		}
		for next != nil && next.Type == html.TextNode {
			c.Data += next.Data
			after := next.NextSibling
			n.RemoveChild(next)
			next = after
		}
		c = next
	}
}

// isTreeRoot reports whether n has no element to be detached from.
func isTreeRoot(n *html.Node) bool {
	return n.Parent == nil || n.Parent.Type == html.DocumentNode
}
