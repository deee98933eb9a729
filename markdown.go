package htmltree

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"
)

// RenderMarkdown converts node to Markdown. Relative links and images are
// resolved against domain when it is not empty.
func RenderMarkdown(node *html.Node, domain string) (string, error) {
	if node == nil {
		return "", NewValidationError("nil node", nil)
	}

	var opts []converter.ConvertOptionFunc
	if domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}

	markdown, err := htmltomarkdown.ConvertString(RenderHTML(node), opts...)
	if err != nil {
		return "", NewParseError("failed to convert HTML to markdown", err)
	}
	return strings.TrimSpace(markdown), nil
}
