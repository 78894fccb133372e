package quality

import (
	"fmt"
	"strings"
)

// Registry keeps a mapping from language names and aliases to compiled policies.
type Registry struct {
	policies map[string]*Policy
	fallback string
}

// NewRegistry builds an empty registry that resolves unknown languages to fallback.
func NewRegistry(fallback string) *Registry {
	return &Registry{policies: map[string]*Policy{}, fallback: key(fallback)}
}

// DefaultRegistry holds the built-in Arabic and English policies with Arabic as fallback.
func DefaultRegistry() *Registry {
	reg := NewRegistry("Arabic")
	reg.Register(MustCompile(ArabicPatterns()))
	reg.Register(MustCompile(EnglishPatterns()))
	return reg
}

// Register adds or replaces a policy under its language and aliases.
func (r *Registry) Register(policy *Policy) {
	if r.policies == nil {
		r.policies = map[string]*Policy{}
	}
	r.policies[key(policy.language)] = policy
	for _, alias := range policy.aliases {
		r.policies[key(alias)] = policy
	}
}

// Resolve returns the policy for language, the fallback policy, or an error if neither exists.
func (r *Registry) Resolve(language string) (*Policy, error) {
	if policy, ok := r.policies[key(language)]; ok {
		return policy, nil
	}
	if policy, ok := r.policies[r.fallback]; ok {
		return policy, nil
	}
	return nil, fmt.Errorf("pattern set %s is not registered", language)
}

func key(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
