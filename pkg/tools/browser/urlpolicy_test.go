package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewURLPolicyInvalidPattern(t *testing.T) {
	_, err := NewURLPolicy([]string{"https://[invalid"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid allowed URL pattern")

	_, err = NewURLPolicy(nil, []string{"https://[invalid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid blocked URL pattern")
}

func TestURLPolicyAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		blocked []string
		url     string
		want    bool
	}{
		{
			name: "empty policy allows everything",
			url:  "https://example.com",
			want: true,
		},
		{
			name:    "blocked pattern wins",
			blocked: []string{"https://internal.example.com/*"},
			url:     "https://internal.example.com/secrets",
			want:    false,
		},
		{
			name:    "blocked does not affect other hosts",
			blocked: []string{"https://internal.example.com/*"},
			url:     "https://example.com/page",
			want:    true,
		},
		{
			name:    "allowed list restricts",
			allowed: []string{"https://example.com/*"},
			url:     "https://other.com/page",
			want:    false,
		},
		{
			name:    "allowed list matches",
			allowed: []string{"https://example.com/*"},
			url:     "https://example.com/page",
			want:    true,
		},
		{
			name:    "blocked beats allowed",
			allowed: []string{"https://example.com/*"},
			blocked: []string{"https://example.com/admin/*"},
			url:     "https://example.com/admin/users",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewURLPolicy(tt.allowed, tt.blocked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, policy.Allowed(tt.url))
		})
	}
}

func TestURLPolicyNilAllowsEverything(t *testing.T) {
	var policy *URLPolicy
	assert.True(t, policy.Allowed("https://example.com"))
}
