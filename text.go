package htmltree

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/samber/lo"
	"golang.org/x/net/html"
)

// Text nodes that sit directly inside visible elements.
const smartTextXPath = `./descendant-or-self::*[name() != "script" and name() != "style"]/text()`

// GetNodeText returns the whitespace-normalized text of node.
//
// By default every descendant text node is concatenated as-is, including
// script and style content. In smart mode only text placed directly inside
// elements other than script and style is kept, and fragments are joined
// with single spaces.
func GetNodeText(node *html.Node, smart bool) string {
	if node == nil {
		return ""
	}
	if smart {
		return NormalizeSpace(smartText(node))
	}
	return NormalizeSpace(goquery.NewDocumentFromNode(node).Text())
}

func smartText(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	nodes, err := htmlquery.QueryAll(node, smartTextXPath)
	if err != nil {
		slog.Debug("smart text query failed", "error", err)
		return ""
	}
	fragments := lo.FilterMap(nodes, func(n *html.Node, _ int) (string, bool) {
		return n.Data, strings.TrimSpace(n.Data) != ""
	})
	return strings.Join(fragments, " ")
}
