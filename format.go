package htmltree

import (
	"strings"

	"golang.org/x/net/html"
)

// FormatHTML serializes node with one tag, text run or comment per line,
// each nested level prefixed with one more indent. Whitespace-only text is
// dropped and other text is trimmed, so the output is for reading rather
// than for round-tripping.
func FormatHTML(node *html.Node, indent string) string {
	var sb strings.Builder
	formatNode(&sb, node, 0, indent)
	return sb.String()
}

func formatNode(sb *strings.Builder, n *html.Node, depth int, indent string) {
	if n == nil {
		return
	}

	spaces := strings.Repeat(indent, depth)

	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			formatNode(sb, c, depth, indent)
		}

	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		sb.WriteString(spaces)
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.DataAtom] {
			sb.WriteString(text)
		} else {
			sb.WriteString(textEscaper.Replace(text))
		}
		sb.WriteByte('\n')

	case html.ElementNode:
		// Open tag
		sb.WriteString(spaces)
		writeStartTag(sb, n)
		sb.WriteByte('\n')

		if n.Namespace == "" && voidElements[n.DataAtom] {
			return
		}

		// Children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			formatNode(sb, c, depth+1, indent)
		}

		// Close tag
		sb.WriteString(spaces)
		sb.WriteString("</")
		sb.WriteString(n.Data)
		sb.WriteString(">\n")

	case html.CommentNode:
		sb.WriteString(spaces)
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->\n")

	case html.DoctypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.Data)
		sb.WriteString(">\n")
	}
}
