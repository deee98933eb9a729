package htmltree

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	fullDocumentPattern = regexp.MustCompile(`(?i)^\s*<(?:html|!doctype)`)
	headTagPattern      = regexp.MustCompile(`(?i)<head[\s/>]`)
)

// Elements whose presence turns a multi-element fragment wrapper into a div.
var blockLevelAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Details: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Ul: true,
}

// ParseHTML parses UTF-8 markup and returns the root element of the result.
//
// Complete documents yield their <html> element. A fragment holding a single
// element yields that element; any other fragment yields a <div> (or <span>
// for inline-only content) wrapping it. The returned node always hangs off a
// document node.
func ParseHTML(text string) (*html.Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewParseError("failed to parse html", fmt.Errorf("document is empty"))
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, NewParseError("failed to parse html", err)
	}

	root, err := selectRoot(doc, text)
	if err != nil {
		return nil, err
	}
	slog.Debug("parsed html", "root", root.Data, "bytes", len(text))
	return root, nil
}

// ParseHTMLBytes decodes data and parses it. An empty encoding is sniffed
// from a byte order mark or a <meta> charset declaration, falling back to
// UTF-8 detection and then windows-1252.
func ParseHTMLBytes(data []byte, encoding string) (*html.Node, error) {
	text, err := decodeHTML(data, encoding)
	if err != nil {
		return nil, err
	}
	return ParseHTML(text)
}

// ParseHTMLReader reads r fully and parses it like ParseHTMLBytes.
func ParseHTMLReader(r io.Reader, encoding string) (*html.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewIOError("failed to read html", err)
	}
	return ParseHTMLBytes(data, encoding)
}

func decodeHTML(data []byte, encoding string) (string, error) {
	var (
		e    enc.Encoding
		name = encoding
		err  error
	)
	if encoding == "" {
		var certain bool
		e, name, certain = charset.DetermineEncoding(data, "")
		slog.Debug("detected html encoding", "encoding", name, "certain", certain)
	} else if e, err = htmlindex.Get(encoding); err != nil {
		return "", NewEncodingError(fmt.Sprintf("unknown encoding %q", encoding), err)
	}

	decoded, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", NewEncodingError(fmt.Sprintf("cannot decode html as %s", name), err)
	}
	// Decoders keep a UTF-8 byte order mark; the tokenizer would treat it as text.
	return strings.TrimPrefix(string(decoded), "\ufeff"), nil
}

func selectRoot(doc *html.Node, source string) (*html.Node, error) {
	htmlEl := findChildElement(doc, atom.Html)
	if htmlEl == nil {
		return nil, NewParseError("failed to parse html", fmt.Errorf("parser produced no html element"))
	}
	head := findChildElement(htmlEl, atom.Head)
	body := findChildElement(htmlEl, atom.Body)

	headHasContent := head != nil && (head.FirstChild != nil || len(head.Attr) > 0)
	if fullDocumentPattern.MatchString(source) || headHasContent || body == nil {
		if head != nil && !headHasContent && !headTagPattern.MatchString(source) {
			htmlEl.RemoveChild(head)
		}
		return htmlEl, nil
	}

	if only := soleElement(body); only != nil {
		return adopt(only), nil
	}

	body.Data, body.DataAtom = "span", atom.Span
	body.Attr = nil
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockLevelAtoms[c.DataAtom] {
			body.Data, body.DataAtom = "div", atom.Div
			break
		}
	}
	return adopt(body), nil
}

// soleElement returns the single element child of n when every other child
// is blank text, or nil.
func soleElement(n *html.Node) *html.Node {
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if only != nil {
				return nil
			}
			only = c
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		default:
			return nil
		}
	}
	return only
}

// adopt detaches n and makes it the only child of a fresh document node.
func adopt(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(n)
	return n
}

func findChildElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}
