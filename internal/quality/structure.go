package quality

import (
	"fmt"

	"ArticleGate/internal/domain"
)

const (
	// DefaultMinWords is the floor; generation is asked for about 1500 words.
	DefaultMinWords = 1200
	// DefaultMinSecondaryKeywords is the minimum length of secondaryKeywords.
	DefaultMinSecondaryKeywords = 3
)

// Limits are the numeric thresholds of the structural check.
type Limits struct {
	MinWords             int
	MinSecondaryKeywords int
}

// DefaultLimits returns the production thresholds.
func DefaultLimits() Limits {
	return Limits{MinWords: DefaultMinWords, MinSecondaryKeywords: DefaultMinSecondaryKeywords}
}

// StructuralChecker validates length, disclaimer presence and secondary keywords.
// It only reports findings; blocking is decided by the gate.
type StructuralChecker struct {
	limits Limits
}

// NewStructuralChecker replaces non-positive limits with the defaults.
func NewStructuralChecker(limits Limits) *StructuralChecker {
	if limits.MinWords <= 0 {
		limits.MinWords = DefaultMinWords
	}
	if limits.MinSecondaryKeywords <= 0 {
		limits.MinSecondaryKeywords = DefaultMinSecondaryKeywords
	}
	return &StructuralChecker{limits: limits}
}

// Check returns one reason per structural defect, in a fixed order.
func (c *StructuralChecker) Check(article domain.GeneratedArticle, policy *Policy) domain.Findings {
	var findings domain.Findings
	text := PlainText(article.ArticleHTMLContent)

	if words := WordCount(text); words < c.limits.MinWords {
		findings.Reasons = append(findings.Reasons,
			fmt.Sprintf("article too short: %d words (minimum %d)", words, c.limits.MinWords))
	}

	if !policy.HasDisclaimer(text) {
		findings.Reasons = append(findings.Reasons, "missing medical disclaimer")
	}

	if n := len(article.SecondaryKeywords); n < c.limits.MinSecondaryKeywords {
		findings.Reasons = append(findings.Reasons,
			fmt.Sprintf("insufficient secondary keywords: %d (minimum %d)", n, c.limits.MinSecondaryKeywords))
	}

	return findings
}
