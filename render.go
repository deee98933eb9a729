package htmltree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Elements that never have an end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Keygen: true, atom.Link: true, atom.Meta: true, atom.Param: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Elements whose leading newline the parser drops.
var leadingNewlineElements = map[atom.Atom]bool{
	atom.Pre: true, atom.Listing: true, atom.Textarea: true,
}

// Elements whose text children are written without escaping.
var rawTextElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Xmp: true, atom.Iframe: true,
	atom.Noembed: true, atom.Noframes: true, atom.Plaintext: true,
}

// RenderHTML serializes node and its descendants. The tail of node is not
// part of the output.
func RenderHTML(node *html.Node) string {
	var sb strings.Builder
	renderNode(&sb, node)
	return sb.String()
}

// RenderHTMLBytes serializes node like RenderHTML and encodes the markup with
// the named encoding (any WHATWG label, "" meaning UTF-8).
func RenderHTMLBytes(node *html.Node, encoding string) ([]byte, error) {
	return EncodeMarkup(RenderHTML(node), encoding)
}

// EncodeMarkup encodes markup with the named encoding. Characters the
// encoding cannot represent are an EncodingError.
func EncodeMarkup(markup, encoding string) ([]byte, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return []byte(markup), nil
	}

	e, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, NewEncodingError(fmt.Sprintf("unknown encoding %q", encoding), err)
	}
	encoded, err := e.NewEncoder().String(markup)
	if err != nil {
		return nil, NewEncodingError(fmt.Sprintf("markup cannot be represented in %s", encoding), err)
	}
	return []byte(encoded), nil
}

func renderNode(sb *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}

	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(sb, c)
		}

	case html.DoctypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.Data)
		sb.WriteString(">")

	case html.CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")

	case html.TextNode:
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.DataAtom] {
			sb.WriteString(n.Data)
		} else {
			sb.WriteString(textEscaper.Replace(n.Data))
		}

	case html.ElementNode:
		writeStartTag(sb, n)

		if n.Namespace == "" && voidElements[n.DataAtom] {
			return
		}

		if c := n.FirstChild; c != nil && c.Type == html.TextNode && leadingNewlineElements[n.DataAtom] && strings.HasPrefix(c.Data, "\n") {
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(sb, c)
		}

		sb.WriteString("</")
		sb.WriteString(n.Data)
		sb.WriteByte('>')
	}
}

func writeStartTag(sb *strings.Builder, n *html.Node) {
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, attr := range n.Attr {
		sb.WriteByte(' ')
		if attr.Namespace != "" {
			sb.WriteString(attr.Namespace)
			sb.WriteByte(':')
		}
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(attr.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
}
