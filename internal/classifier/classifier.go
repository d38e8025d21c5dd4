// Package classifier matches invoice and receipt codes in ticket text.
package classifier

import (
	"fmt"
	"regexp"
	"strings"
)

// ClassifiedValues holds the comma-joined distinct matches for each code
// family. An empty string means no match.
type ClassifiedValues struct {
	Invoices string
	Receipts string
}

// Classifier scans ticket text with the configured invoice and receipt
// patterns. Both patterns are compiled once at construction.
type Classifier struct {
	invoicePattern *regexp.Regexp
	receiptPattern *regexp.Regexp
}

// New compiles both patterns. A pattern that does not compile is a
// configuration fault and fails construction.
func New(invoiceRegex, receiptRegex string) (*Classifier, error) {
	invoice, err := regexp.Compile(invoiceRegex)
	if err != nil {
		return nil, fmt.Errorf("compile invoice pattern: %w", err)
	}
	receipt, err := regexp.Compile(receiptRegex)
	if err != nil {
		return nil, fmt.Errorf("compile receipt pattern: %w", err)
	}
	return &Classifier{invoicePattern: invoice, receiptPattern: receipt}, nil
}

// Classify scans text with both patterns independently; a substring may
// land in both families. Blank text returns empty values without matching.
// Classify never fails.
func (c *Classifier) Classify(text string) ClassifiedValues {
	if strings.TrimSpace(text) == "" {
		return ClassifiedValues{}
	}
	return ClassifiedValues{
		Invoices: joinDistinct(c.invoicePattern.FindAllString(text, -1)),
		Receipts: joinDistinct(c.receiptPattern.FindAllString(text, -1)),
	}
}

// joinDistinct joins matches with commas, keeping the first occurrence of
// each duplicate so the output order follows match position.
func joinDistinct(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(matches))
	distinct := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		distinct = append(distinct, m)
	}
	return strings.Join(distinct, ",")
}
