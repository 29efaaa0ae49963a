// Package normalize coerces arbitrarily-shaped section payloads into the
// canonical shape each section renderer expects. Normalization never fails:
// the worst outcome is an error-marker payload that renders as a visible
// error block instead of aborting the document.
package normalize

// SectionKind is the semantic category of a resume section.
type SectionKind string

const (
	KindSummary        SectionKind = "summary"
	KindSkills         SectionKind = "skills"
	KindExperience     SectionKind = "experience"
	KindEducation      SectionKind = "education"
	KindProjects       SectionKind = "projects"
	KindCertifications SectionKind = "certifications"
	KindPublications   SectionKind = "publications"
)

// SectionOrder is the fixed order sections appear in the assembled document.
// Keys outside this list render after it, in the record's encounter order.
var SectionOrder = []SectionKind{
	KindSummary,
	KindSkills,
	KindExperience,
	KindEducation,
	KindProjects,
	KindCertifications,
	KindPublications,
}

// ReservedKeys are top-level identity fields consumed by the document header
// and never rendered as sections of their own.
var ReservedKeys = map[string]bool{
	"name":     true,
	"email":    true,
	"phone":    true,
	"linkedin": true,
	"github":   true,
	"website":  true,
	"location": true,
	"summary":  true,
}

var listKinds = map[SectionKind]bool{
	KindExperience:     true,
	KindEducation:      true,
	KindProjects:       true,
	KindCertifications: true,
	KindPublications:   true,
}

// IsListKind reports whether the section kind expects a list-of-records shape.
func IsListKind(kind SectionKind) bool {
	return listKinds[kind]
}
