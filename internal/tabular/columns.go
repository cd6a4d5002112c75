package tabular

import "go.uber.org/zap"

// Field is a logical field identifier: one of the nine questionnaire
// criteria plus the identity fields carried through to the output.
type Field string

const (
	FieldYearsExperience       Field = "years_experience"
	FieldClinicalExperience    Field = "clinical_experience"
	FieldLeadership            Field = "leadership"
	FieldGeographicalReach     Field = "geographical_reach"
	FieldAcademicPosition      Field = "academic_position"
	FieldEducationalLevel      Field = "educational_level"
	FieldResearchExperience    Field = "research_experience"
	FieldPublicationExperience Field = "publication_experience"
	FieldSpeakingExperience    Field = "speaking_experience"

	FieldName          Field = "hcp_name"
	FieldEmail         Field = "hcp_email"
	FieldSpecialty     Field = "specialty"
	FieldQualification Field = "qualification"
)

// Fields lists every logical field in resolution order.
func Fields() []Field {
	return []Field{
		FieldYearsExperience,
		FieldClinicalExperience,
		FieldLeadership,
		FieldGeographicalReach,
		FieldAcademicPosition,
		FieldEducationalLevel,
		FieldResearchExperience,
		FieldPublicationExperience,
		FieldSpeakingExperience,
		FieldName,
		FieldEmail,
		FieldSpecialty,
		FieldQualification,
	}
}

// fieldVariants lists the acceptable column label spellings per field, in
// priority order. Survey exports are inconsistent about unicode whitespace
// and trailing newlines, hence the duplicated variants.
var fieldVariants = map[Field][]string{
	FieldYearsExperience: {
		"Years of experience in the\u00a0Specialty / Super Specialty?\n",
		"Years of experience in the Specialty / Super Specialty?\n",
		"Years of experience in the Specialty / Super Specialty?",
		"Years of experience in the\u00a0Specialty / Super Specialty?",
	},
	FieldClinicalExperience: {
		"Clinical Experience: i.e. Time Spent with Patients?",
		"Clinical Experience",
	},
	FieldLeadership: {
		"Leadership position(s) in a Professional or Scientific Society and/or leadership position(s) in Hospital or other Patient Care Settings (e.g. Department Head or Chief, Medical Director, Lab Direct...",
		"Leadership position",
	},
	FieldGeographicalReach: {
		"Geographic influence as a Key Opinion Leader.",
		"Geographic influence",
		"Geographical Reach",
	},
	FieldAcademicPosition: {
		"Highest Academic Position Held in past 10 years",
		"Highest Academic Position",
	},
	FieldEducationalLevel: {
		"Additional Educational Level ",
		"Additional Educational Level",
		"Additional Education",
	},
	FieldResearchExperience: {
		"Research Experience (e.g., industry-sponsored research, investigator-initiated research, other research) in past 10 years",
		"Research Experience",
	},
	FieldPublicationExperience: {
		"Publication experience in the past 10 years",
		"Publication experience",
		"Publication Experience",
	},
	FieldSpeakingExperience: {
		"Speaking experience (professional, academic, scientific, or media experience) in the past 10 years.",
		"Speaking experience",
		"Speaking Experience",
	},
	FieldName: {
		"HCP Name",
	},
	FieldEmail: {
		"HCP Email",
	},
	FieldSpecialty: {
		"Specialty / Super Specialty",
	},
	FieldQualification: {
		"Educational Qualification",
	},
}

// Variants returns the candidate column labels for a field in priority order.
func Variants(field Field) []string {
	return fieldVariants[field]
}

// ColumnMap maps logical fields to the actual column labels found in one
// input table. Built once per table and read-only thereafter. An absent
// entry means the field is unresolved, which is a valid outcome: its value
// always reads as empty.
type ColumnMap map[Field]string

// Column returns the resolved column label for a field, if any.
func (m ColumnMap) Column(field Field) (string, bool) {
	col, ok := m[field]
	return col, ok
}

// Value reads the cleaned value of a logical field from a record. An
// unresolved field, a missing cell, an empty cell and the literal "nan"
// all yield "".
func (m ColumnMap) Value(r Record, field Field) string {
	col, ok := m[field]
	if !ok {
		return ""
	}
	return CleanCell(r[col])
}

// ResolveField matches one variant list against the actual columns, trying
// each stage over all variants over all columns in table order. It returns
// the matched column and the stage that matched it.
func ResolveField(columns []string, variants []string) (column, stage string, ok bool) {
	for _, s := range Stages() {
		for _, candidate := range variants {
			for _, actual := range columns {
				if s.Match(candidate, actual) {
					return actual, s.Name, true
				}
			}
		}
	}
	return "", "", false
}

// ResolveColumns builds the ColumnMap for a table. Unresolved fields are
// logged as warnings and left out of the map.
func ResolveColumns(t *Table, logger *zap.Logger) ColumnMap {
	mapping := make(ColumnMap, len(fieldVariants))
	for _, field := range Fields() {
		column, stage, ok := ResolveField(t.Columns, Variants(field))
		if !ok {
			if logger != nil {
				logger.Warn("could not resolve column", zap.String("field", string(field)))
			}
			continue
		}
		mapping[field] = column
		if logger != nil {
			logger.Debug("resolved column",
				zap.String("field", string(field)),
				zap.String("column", column),
				zap.String("stage", stage),
			)
		}
	}
	return mapping
}
