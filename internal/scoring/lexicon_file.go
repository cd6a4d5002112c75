package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadLexiconFile reads a YAML lexicon override. The file maps criterion
// names to answer-phrase/score pairs and must cover all nine criteria,
// since a partial table would silently zero the missing ones. Scores are
// restricted to the questionnaire's {0, 2, 4, 6} scale.
func LoadLexiconFile(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon file %s: %w", path, err)
	}

	var raw map[string]map[string]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing lexicon file %s: %w", path, err)
	}

	lexicon := make(Lexicon, len(raw))
	for name, answers := range raw {
		lexicon[Criterion(name)] = answers
	}

	if err := validateLexicon(lexicon); err != nil {
		return nil, fmt.Errorf("lexicon file %s: %w", path, err)
	}

	return lexicon, nil
}

func validateLexicon(l Lexicon) error {
	for _, criterion := range Criteria() {
		answers, ok := l[criterion]
		if !ok || len(answers) == 0 {
			return fmt.Errorf("criterion %q has no answers", criterion)
		}
		for answer, score := range answers {
			switch score {
			case 0, 2, 4, 6:
			default:
				return fmt.Errorf("criterion %q answer %q has invalid score %d", criterion, answer, score)
			}
		}
	}

	for criterion := range l {
		if !knownCriterion(criterion) {
			return fmt.Errorf("unknown criterion %q", criterion)
		}
	}

	return nil
}

func knownCriterion(c Criterion) bool {
	for _, known := range Criteria() {
		if c == known {
			return true
		}
	}
	return false
}
