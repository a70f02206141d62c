package report

import (
	"fmt"
	"strings"

	"pollcli/pkg/contracts/domain"
)

// Scale tells how candidate results are stored in the input file.
type Scale int

const (
	// ScalePercent means results are already percentages (0-100).
	ScalePercent Scale = iota
	// ScaleFraction means results are fractions (0-1) shown multiplied by 100.
	ScaleFraction
)

// ParseScale parses "percent" or "fraction". An empty string is percent.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percent":
		return ScalePercent, nil
	case "fraction":
		return ScaleFraction, nil
	default:
		return ScalePercent, fmt.Errorf("unknown result scale %q", s)
	}
}

func (s Scale) String() string {
	if s == ScaleFraction {
		return "fraction"
	}
	return "percent"
}

// Apply converts a stored result to a percentage.
func (s Scale) Apply(v float64) float64 {
	if s == ScaleFraction {
		return v * 100
	}
	return v
}

func (s Scale) pair(p domain.CandidatePair) domain.CandidatePair {
	return domain.CandidatePair{A: s.Apply(p.A), B: s.Apply(p.B)}
}
