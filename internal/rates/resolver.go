package rates

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/logger"
	"github.com/medcomply/fmv-calc/internal/scoring"
)

// Specialty cells can carry whole paragraphs when the input columns are
// misaligned; logs only need the head.
const maxSpecialtyLogLen = 80

// matchStage is one named specialty-matching strategy. Stages run in
// declared order against rows in table order; the first hit wins.
type matchStage struct {
	name  string
	match func(specialty, key string) bool
}

func specialtyStages() []matchStage {
	return []matchStage{
		{
			name: "exact",
			match: func(specialty, key string) bool {
				return specialty == key
			},
		},
		{
			name: "case_insensitive",
			match: func(specialty, key string) bool {
				return strings.EqualFold(specialty, key)
			},
		},
		{
			name: "substring",
			match: func(specialty, key string) bool {
				return strings.Contains(strings.ToLower(key), strings.ToLower(specialty))
			},
		},
	}
}

// Resolution describes how a rate was produced, so fallbacks stay auditable.
type Resolution struct {
	Rate      int
	Specialty string
	Tier      scoring.Tier
	// Matched is the rate-table key the specialty matched, empty on fallback.
	Matched string
	// Stage names the strategy that matched, or the fallback reason.
	Stage    string
	Fallback bool
}

// Resolver looks up honorarium rates against one loaded rate table.
type Resolver struct {
	table  *Table
	logger *zap.Logger
}

func NewResolver(table *Table, logger *zap.Logger) *Resolver {
	return &Resolver{table: table, logger: logger}
}

// Resolve returns the rate for a specialty and tier. It never fails: blank
// specialties, unmatched specialties and unusable cells all degrade to the
// per-tier default, with the reason logged and recorded in the Resolution.
func (r *Resolver) Resolve(specialty string, tier scoring.Tier) Resolution {
	specialty = strings.TrimSpace(specialty)

	if specialty == "" || strings.EqualFold(specialty, "nan") {
		return r.fallback(specialty, tier, "empty_specialty")
	}

	row, stage, ok := r.findRow(specialty)
	if !ok {
		return r.fallback(specialty, tier, "specialty_not_found")
	}

	cell, ok := row.Cells[tier.String()]
	if !ok {
		return r.fallbackMatched(specialty, tier, row.Specialty, "missing_tier_column")
	}

	rate, ok := parseRate(cell)
	if !ok {
		return r.fallbackMatched(specialty, tier, row.Specialty, "non_numeric_rate")
	}

	return Resolution{
		Rate:      rate,
		Specialty: specialty,
		Tier:      tier,
		Matched:   row.Specialty,
		Stage:     stage,
	}
}

func (r *Resolver) findRow(specialty string) (Row, string, bool) {
	for _, stage := range specialtyStages() {
		for _, row := range r.table.rows {
			if stage.match(specialty, row.Specialty) {
				return row, stage.name, true
			}
		}
	}
	return Row{}, "", false
}

func (r *Resolver) fallback(specialty string, tier scoring.Tier, reason string) Resolution {
	if r.logger != nil {
		r.logger.Warn("falling back to default rate",
			zap.String("specialty", logger.TruncateForLog(specialty, maxSpecialtyLogLen)),
			zap.String("tier", tier.String()),
			zap.String("reason", reason),
		)
	}
	return Resolution{
		Rate:      DefaultRate(tier),
		Specialty: specialty,
		Tier:      tier,
		Stage:     reason,
		Fallback:  true,
	}
}

func (r *Resolver) fallbackMatched(specialty string, tier scoring.Tier, matched, reason string) Resolution {
	if r.logger != nil {
		r.logger.Warn("matched specialty has no usable rate",
			zap.String("specialty", logger.TruncateForLog(specialty, maxSpecialtyLogLen)),
			zap.String("matched", matched),
			zap.String("tier", tier.String()),
			zap.String("reason", reason),
		)
	}
	return Resolution{
		Rate:      DefaultRate(tier),
		Specialty: specialty,
		Tier:      tier,
		Matched:   matched,
		Stage:     reason,
		Fallback:  true,
	}
}

// parseRate coerces a raw cell to an integer monetary unit. Cells parse as
// floats and truncate, matching the source workbook's mixed formatting.
func parseRate(cell string) (int, bool) {
	value := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if value == "" || strings.EqualFold(value, "nan") {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
