package quality

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCitationPattern matches numbered markers such as [1] or [12].
const DefaultCitationPattern = `\[\d+\]`

// wordBoundary stands in for \b, which RE2 only defines for ASCII word characters.
const wordBoundary = `[^\p{L}\p{M}\p{N}_]`

// PatternSet is the configurable, language-specific vocabulary of the content checks.
type PatternSet struct {
	Language             string   `yaml:"language"`
	Aliases              []string `yaml:"aliases"`
	ClaimVerbs           []string `yaml:"claimVerbs"`
	DisclaimerIndicators []string `yaml:"disclaimerIndicators"`
	CitationPattern      string   `yaml:"citationPattern"`
}

// Policy is a compiled PatternSet.
type Policy struct {
	language string
	aliases  []string
	claims   *regexp.Regexp
	disclaim *regexp.Regexp
	citation *regexp.Regexp
}

// Compile turns a PatternSet into a Policy. Claim verbs match as whole words,
// disclaimer indicators as case-insensitive substrings.
func Compile(set PatternSet) (*Policy, error) {
	if strings.TrimSpace(set.Language) == "" {
		return nil, fmt.Errorf("pattern set has no language")
	}
	if len(set.ClaimVerbs) == 0 {
		return nil, fmt.Errorf("pattern set %s: no claim verbs", set.Language)
	}
	if len(set.DisclaimerIndicators) == 0 {
		return nil, fmt.Errorf("pattern set %s: no disclaimer indicators", set.Language)
	}

	claims, err := regexp.Compile(`(?i)(?:^|` + wordBoundary + `)(` + alternation(set.ClaimVerbs) + `)(?:` + wordBoundary + `|$)`)
	if err != nil {
		return nil, fmt.Errorf("pattern set %s: claim verbs: %w", set.Language, err)
	}

	disclaim, err := regexp.Compile(`(?i)(?:` + alternation(set.DisclaimerIndicators) + `)`)
	if err != nil {
		return nil, fmt.Errorf("pattern set %s: disclaimer indicators: %w", set.Language, err)
	}

	citationExpr := set.CitationPattern
	if citationExpr == "" {
		citationExpr = DefaultCitationPattern
	}
	citation, err := regexp.Compile(citationExpr)
	if err != nil {
		return nil, fmt.Errorf("pattern set %s: citation pattern: %w", set.Language, err)
	}

	return &Policy{
		language: set.Language,
		aliases:  set.Aliases,
		claims:   claims,
		disclaim: disclaim,
		citation: citation,
	}, nil
}

// MustCompile is Compile for the built-in sets.
func MustCompile(set PatternSet) *Policy {
	p, err := Compile(set)
	if err != nil {
		panic(err)
	}
	return p
}

// Language returns the canonical language name of the policy.
func (p *Policy) Language() string {
	return p.language
}

// ClaimTerms returns the distinct claim phrases found in text, in order of appearance.
func (p *Policy) ClaimTerms(text string) []string {
	var terms []string
	seen := map[string]struct{}{}
	for _, m := range p.claims.FindAllStringSubmatch(text, -1) {
		term := strings.ToLower(m[1])
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// HasDisclaimer reports whether text contains a medical-disclaimer indicator.
func (p *Policy) HasDisclaimer(text string) bool {
	return p.disclaim.MatchString(text)
}

// HasCitation reports whether markup contains a citation marker anywhere.
func (p *Policy) HasCitation(markup string) bool {
	return p.citation.MatchString(markup)
}

func alternation(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		words := strings.Fields(term)
		for i := range words {
			words[i] = regexp.QuoteMeta(words[i])
		}
		parts = append(parts, strings.Join(words, `\s+`))
	}
	return strings.Join(parts, "|")
}

var englishClaimVerbs = []string{
	"reduces", "increases", "prevents", "treats", "cures", "improves", "lowers", "leads to",
}

var englishDisclaimers = []string{
	"Disclaimer",
	"not a substitute for professional medical advice",
	"consult your doctor",
}

// ArabicPatterns is tuned for Arabic phrasing and carries the English terms as a fallback.
func ArabicPatterns() PatternSet {
	return PatternSet{
		Language: "Arabic",
		Aliases:  []string{"ar", "العربية"},
		ClaimVerbs: append([]string{
			"يقلل", "تقلل", "يخفض", "تخفض",
			"يزيد", "تزيد",
			"يمنع", "تمنع", "يقي", "تقي",
			"يعالج", "تعالج", "يشفي", "تشفي",
			"يحسن", "تحسن", "يحسّن", "تحسّن",
			"يؤدي إلى", "تؤدي إلى",
		}, englishClaimVerbs...),
		DisclaimerIndicators: append([]string{
			"إخلاء المسؤولية",
			"إخلاء مسؤولية",
			"تنبيه طبي",
			"تحذير طبي",
			"لا يغني عن استشارة",
			"استشر طبيبك",
		}, englishDisclaimers...),
		CitationPattern: DefaultCitationPattern,
	}
}

// EnglishPatterns is the English-only vocabulary.
func EnglishPatterns() PatternSet {
	return PatternSet{
		Language:             "English",
		Aliases:              []string{"en"},
		ClaimVerbs:           englishClaimVerbs,
		DisclaimerIndicators: englishDisclaimers,
		CitationPattern:      DefaultCitationPattern,
	}
}
