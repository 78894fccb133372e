package quality

import (
	"fmt"
	"strings"

	"ArticleGate/internal/domain"
)

// ClaimScanner flags articles that make assertive health claims without any citation marker.
//
// The check is article-wide: one marker anywhere satisfies every claim. Claims are not
// mapped to individual citations.
type ClaimScanner struct{}

// NewClaimScanner returns a stateless scanner.
func NewClaimScanner() *ClaimScanner {
	return &ClaimScanner{}
}

// Scan looks for claim verbs in the stripped text and citation markers in the raw markup.
func (s *ClaimScanner) Scan(markup string, policy *Policy) domain.Findings {
	var findings domain.Findings

	terms := policy.ClaimTerms(PlainText(markup))
	if len(terms) == 0 || policy.HasCitation(markup) {
		return findings
	}

	findings.ClaimsNeedingCitations = append(findings.ClaimsNeedingCitations,
		fmt.Sprintf("assertive claims without numbered citations (%s)", strings.Join(terms, ", ")))
	return findings
}
