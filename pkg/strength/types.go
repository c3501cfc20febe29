package strength

import (
	"fmt"
	"strings"
)

// Tier is the qualitative strength level derived from the effective entropy
type Tier int

const (
	TierNone Tier = iota // empty input, nothing to classify
	TierTooWeak
	TierWeak
	TierModerate
	TierStrong
	TierExcellent
)

// String returns the display label for the tier
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent (Uncrackable)"
	case TierStrong:
		return "Strong"
	case TierModerate:
		return "Moderate"
	case TierWeak:
		return "Weak"
	case TierTooWeak:
		return "Too Weak"
	default:
		return "No Password"
	}
}

// Color returns the hex display color associated with the tier
func (t Tier) Color() string {
	switch t {
	case TierExcellent:
		return "#10B981"
	case TierStrong:
		return "#059669"
	case TierModerate:
		return "#F59E0B"
	case TierWeak:
		return "#EF4444"
	case TierTooWeak:
		return "#B91C1C"
	default:
		return "#D1D5DB"
	}
}

// MarshalText makes tiers serialize as their labels, both as JSON
// values and as map keys.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTier resolves a tier from a label such as "weak" or "strong"
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "no password":
		return TierNone, nil
	case "too weak", "too-weak", "tooweak":
		return TierTooWeak, nil
	case "weak":
		return TierWeak, nil
	case "moderate":
		return TierModerate, nil
	case "strong":
		return TierStrong, nil
	case "excellent", "excellent (uncrackable)":
		return TierExcellent, nil
	}
	return TierNone, fmt.Errorf("unknown strength tier %q", s)
}

// CharacterClasses records which character classes appear in a password
type CharacterClasses struct {
	Lower  bool `json:"lower"`
	Upper  bool `json:"upper"`
	Digit  bool `json:"digit"`
	Symbol bool `json:"symbol"`
}

// Penalty records a single deduction applied to the raw entropy
type Penalty struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// Result is the full outcome of analyzing one password
type Result struct {
	Score      int              `json:"score"`
	RawEntropy float64          `json:"raw_entropy"`
	PoolSize   int              `json:"pool_size"`
	Length     int              `json:"length"`
	Classes    CharacterClasses `json:"classes"`
	Tier       Tier             `json:"strength"`
	Color      string           `json:"color"`
	Percent    float64          `json:"percent"`
	CrackTime  string           `json:"crack_time"`
	Penalties  []Penalty        `json:"penalties,omitempty"`
	Feedback   []string         `json:"feedback"`
}

// Analyzer interface for password strength analysis
type Analyzer interface {
	Analyze(password string) *Result
	TierFor(score int) Tier
}
