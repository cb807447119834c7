package models

import (
	"fmt"
	"strings"
)

// Verdict is a risk-of-bias judgement for a domain or a whole framework.
// The zero value is VerdictUnknown, which marks an incomplete assessment.
type Verdict int

const (
	// VerdictUnknown means no verdict could be derived (assessment incomplete)
	VerdictUnknown Verdict = iota
	// VerdictLow is a low risk of bias
	VerdictLow
	// VerdictSomeConcerns is a judgement of some concerns
	VerdictSomeConcerns
	// VerdictHigh is a high risk of bias
	VerdictHigh
)

// String returns the display form used in RoB2 reports.
func (v Verdict) String() string {
	switch v {
	case VerdictLow:
		return "Low"
	case VerdictSomeConcerns:
		return "Some concerns"
	case VerdictHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Known reports whether v is one of the three real verdicts.
func (v Verdict) Known() bool {
	return v == VerdictLow || v == VerdictSomeConcerns || v == VerdictHigh
}

// Severity returns the aggregation rank (Low=0, Some concerns=1, High=2).
// Unknown is not part of the ordering and reports ok=false.
func (v Verdict) Severity() (rank int, ok bool) {
	switch v {
	case VerdictLow:
		return 0, true
	case VerdictSomeConcerns:
		return 1, true
	case VerdictHigh:
		return 2, true
	default:
		return -1, false
	}
}

// Symbol returns the robvis table glyph for the verdict.
func (v Verdict) Symbol() string {
	switch v {
	case VerdictLow:
		return "+"
	case VerdictSomeConcerns:
		return "-"
	case VerdictHigh:
		return "x"
	default:
		return "?"
	}
}

// ParseVerdict converts a recorded answer into a Verdict.
// Matching is case-insensitive and accepts the "Low risk"/"High risk" spellings.
// Anything else yields VerdictUnknown and ok=false.
func ParseVerdict(s string) (Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "low risk":
		return VerdictLow, true
	case "some concerns":
		return VerdictSomeConcerns, true
	case "high", "high risk":
		return VerdictHigh, true
	default:
		return VerdictUnknown, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), "unknown") || len(text) == 0 {
		*v = VerdictUnknown
		return nil
	}
	parsed, ok := ParseVerdict(string(text))
	if !ok {
		return fmt.Errorf("invalid verdict %q", string(text))
	}
	*v = parsed
	return nil
}

// MostSevere aggregates verdicts fail-closed: any Unknown, or an empty
// input, yields VerdictUnknown; otherwise the highest-ranked verdict wins.
func MostSevere(verdicts []Verdict) Verdict {
	if len(verdicts) == 0 {
		return VerdictUnknown
	}

	worst := -1
	for _, v := range verdicts {
		rank, ok := v.Severity()
		if !ok {
			return VerdictUnknown
		}
		if rank > worst {
			worst = rank
		}
	}

	switch worst {
	case 0:
		return VerdictLow
	case 1:
		return VerdictSomeConcerns
	default:
		return VerdictHigh
	}
}
