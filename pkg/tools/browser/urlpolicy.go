package browser

import (
	"fmt"

	"github.com/gobwas/glob"
)

// URLPolicy gates navigation targets with glob patterns. Blocked patterns are
// checked first; when the allowed list is empty, everything not blocked is
// permitted.
type URLPolicy struct {
	allowed []glob.Glob
	blocked []glob.Glob
}

// NewURLPolicy compiles the allowed and blocked pattern lists.
func NewURLPolicy(allowed, blocked []string) (*URLPolicy, error) {
	p := &URLPolicy{}

	for _, pattern := range allowed {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed URL pattern %q: %w", pattern, err)
		}
		p.allowed = append(p.allowed, g)
	}

	for _, pattern := range blocked {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid blocked URL pattern %q: %w", pattern, err)
		}
		p.blocked = append(p.blocked, g)
	}

	return p, nil
}

// Allowed reports whether the URL passes the policy.
func (p *URLPolicy) Allowed(url string) bool {
	if p == nil {
		return true
	}

	for _, g := range p.blocked {
		if g.Match(url) {
			return false
		}
	}

	if len(p.allowed) == 0 {
		return true
	}

	for _, g := range p.allowed {
		if g.Match(url) {
			return true
		}
	}
	return false
}
