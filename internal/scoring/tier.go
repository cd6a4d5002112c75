package scoring

import "fmt"

// Tier is the ordinal honorarium bucket derived from the total score.
type Tier int

const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
	Tier4
)

func (t Tier) String() string {
	return fmt.Sprintf("Tier %d", int(t))
}

// ClassifyTier buckets a total score. Boundaries are inclusive on the
// lower tier: 13 is still Tier 1, 26 still Tier 2, 40 still Tier 3.
func ClassifyTier(total int) Tier {
	switch {
	case total <= 13:
		return Tier1
	case total <= 26:
		return Tier2
	case total <= 40:
		return Tier3
	default:
		return Tier4
	}
}
