package quality

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an HTML fragment, leaving a space wherever an element began.
func PlainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}

	var b strings.Builder
	collectText(doc.Selection, &b)
	return b.String()
}

func collectText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		switch goquery.NodeName(node) {
		case "#text":
			b.WriteString(node.Text())
		case "#comment":
		default:
			b.WriteByte(' ')
			collectText(node, b)
			b.WriteByte(' ')
		}
	})
}

// WordCount counts whitespace-separated tokens of the stripped text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
