// Package policy decides which PDF file names are admitted for extraction.
package policy

import (
	"errors"
	"strings"
)

// Policy admits file names containing at least one configured keyword.
// Matching is case-insensitive on both sides.
type Policy struct {
	keywords []string
}

// New normalizes keywords to lower case and drops blanks. At least one
// keyword must remain.
func New(keywords []string) (*Policy, error) {
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		return nil, errors.New("policy: at least one keyword is required")
	}
	return &Policy{keywords: normalized}, nil
}

// IsValid reports whether fileName contains any configured keyword.
// Blank names are rejected.
func (p *Policy) IsValid(fileName string) bool {
	if strings.TrimSpace(fileName) == "" {
		return false
	}
	lower := strings.ToLower(fileName)
	for _, k := range p.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
