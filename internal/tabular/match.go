package tabular

import "strings"

// MatchStage is a single named strategy for matching an expected label
// against an actual column label. Stages are tried in declared order and
// the first hit wins, so looser strategies must come after stricter ones.
type MatchStage struct {
	Name  string
	Match func(candidate, actual string) bool
}

// Stages is the ordered strategy list used for column resolution:
// exact match, then case-insensitive, then substring in either direction.
func Stages() []MatchStage {
	return []MatchStage{
		{
			Name: "exact",
			Match: func(candidate, actual string) bool {
				return candidate == actual
			},
		},
		{
			Name: "case_insensitive",
			Match: func(candidate, actual string) bool {
				return strings.EqualFold(candidate, actual)
			},
		},
		{
			Name:  "substring",
			Match: containsEitherFold,
		},
	}
}

func containsEitherFold(candidate, actual string) bool {
	c := strings.ToLower(candidate)
	a := strings.ToLower(actual)
	return strings.Contains(a, c) || strings.Contains(c, a)
}
