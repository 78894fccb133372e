package quality

import (
	"net/url"
	"strings"
)

// DefaultTrustedDomains are health authorities and literature indexes accepted with their subdomains.
var DefaultTrustedDomains = []string{
	"who.int",
	"cdc.gov",
	"nhs.uk",
	"pubmed.ncbi.nlm.nih.gov",
	"ncbi.nlm.nih.gov",
	"mayoclinic.org",
	"nih.gov",
}

// DefaultTrustedSuffixes are accepted for any host.
var DefaultTrustedSuffixes = []string{".gov", ".edu"}

// SourceValidator decides whether a citation URL is an acceptable evidentiary source.
// It is a policy check only and never touches the network.
type SourceValidator struct {
	domains  []string
	suffixes []string
}

// NewSourceValidator lowercases the allow-list; empty inputs fall back to the defaults.
func NewSourceValidator(domains, suffixes []string) *SourceValidator {
	if len(domains) == 0 {
		domains = DefaultTrustedDomains
	}
	if len(suffixes) == 0 {
		suffixes = DefaultTrustedSuffixes
	}

	v := &SourceValidator{}
	for _, d := range domains {
		if d = strings.Trim(strings.ToLower(strings.TrimSpace(d)), "."); d != "" {
			v.domains = append(v.domains, d)
		}
	}
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		v.suffixes = append(v.suffixes, s)
	}
	return v
}

// IsAllowed fails closed: anything that is not an absolute URL with a host is rejected.
func (v *SourceValidator) IsAllowed(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, d := range v.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	for _, s := range v.suffixes {
		if strings.HasSuffix(host, s) {
			return true
		}
	}
	return false
}

// Disallowed returns the rejected URLs verbatim, in input order.
func (v *SourceValidator) Disallowed(sources []string) []string {
	var rejected []string
	for _, src := range sources {
		if !v.IsAllowed(src) {
			rejected = append(rejected, src)
		}
	}
	return rejected
}
