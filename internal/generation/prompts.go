package generation

import (
	"fmt"
	"strings"

	"ArticleGate/internal/domain"
)

const targetWords = 1500

const outlineSystem = `You are a senior medical editor planning evidence-based health articles.
Return only JSON that matches the requested schema.`

const articleSystem = `You are a careful medical writer producing YMYL health content.
Every health claim must be supported by a numbered citation such as [1] that refers to the
provided sources in order. Never invent sources. Include a clearly labelled medical
disclaimer. If you cannot support a statement, list it under gate.claimsNeedingCitations
and set gate.blocked to true. Return only JSON that matches the requested schema.`

func outlinePrompt(req domain.OutlineRequest) string {
	return fmt.Sprintf(`Write a detailed article outline in %s for the topic: %s
Use H2/H3 style headings with short notes under each heading.`, req.Language, req.Topic)
}

func articlePrompt(req domain.ArticleRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n", req.Language)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Primary keyword: %s\n", req.PrimaryKeyword)
	fmt.Fprintf(&b, "Target length: about %d words of body text.\n", targetWords)
	if req.IntroStyle != "" {
		fmt.Fprintf(&b, "Introduction style: %s\n", req.IntroStyle)
	}
	if req.ConclusionStyle != "" {
		fmt.Fprintf(&b, "Conclusion style: %s\n", req.ConclusionStyle)
	}

	b.WriteString("\nOutline:\n")
	b.WriteString(req.Outline)
	b.WriteString("\n\nSources (cite as [n]):\n")
	for i, src := range req.Sources {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, src)
	}

	if len(req.InternalLinks) > 0 {
		b.WriteString("\nInternal links to weave in naturally:\n")
		for _, link := range req.InternalLinks {
			fmt.Fprintf(&b, "- %s\n", link)
		}
	}

	b.WriteString(`
Requirements:
- articleHtmlContent is HTML using h2, h3, p, ul and li only.
- End with a medical disclaimer paragraph.
- secondaryKeywords lists at least 3 related search terms used in the article.
- metadata holds SEO and social titles and descriptions.
`)
	return b.String()
}
