package internal

import (
	"strings"

	"golang.org/x/net/html"
)

// Activity pages inline the same payloads the XHR endpoints serve, inside
// <script type="application/json"> blocks. Scanning those lets a capture of
// the rendered page contribute records too.

// ExtractScriptPayloads parses an HTML document and returns the text of
// every JSON script block. An unparseable document yields nothing; HTML
// exchanges are opportunistic input, not required.
func ExtractScriptPayloads(body string) []string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		Log().Debug().Err(err).Msg("html parse failed, skipping document")
		return nil
	}

	var payloads []string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" && isJSONScript(n) {
			if text := scriptText(n); strings.TrimSpace(text) != "" {
				payloads = append(payloads, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return payloads
}

func isJSONScript(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "type" {
			return strings.EqualFold(strings.TrimSpace(attr.Val), "application/json")
		}
	}
	return false
}

func scriptText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
