package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ExperienceList(t *testing.T) {
	raw := []any{
		map[string]any{"company": "Acme"},
		map[string]any{"company": "Globex"},
	}

	c := Normalize(KindExperience, raw)
	require.Equal(t, ShapeRecordList, c.Shape)
	require.Len(t, c.Entries, 2)
	assert.Equal(t, "Acme", c.Entries[0].Fields["company"])
	assert.Equal(t, "Globex", c.Entries[1].Fields["company"])
}

func TestNormalize_ExperienceSingleRecordWrapped(t *testing.T) {
	c := Normalize(KindExperience, map[string]any{"company": "Acme"})
	require.Equal(t, ShapeRecordList, c.Shape)
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "Acme", c.Entries[0].Fields["company"])
}

func TestNormalize_ExperienceStringBecomesLiteral(t *testing.T) {
	c := Normalize(KindExperience, "Worked at Acme for five years")
	require.Equal(t, ShapeRecordList, c.Shape)
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "Worked at Acme for five years", c.Entries[0].Literal)
}

func TestNormalize_LiteralTruncatedAt500(t *testing.T) {
	long := strings.Repeat("x", 600)
	c := Normalize(KindExperience, long)

	require.Len(t, c.Entries, 1)
	assert.Len(t, c.Entries[0].Literal, 503) // 500 + "..."
	assert.True(t, strings.HasSuffix(c.Entries[0].Literal, "..."))
}

func TestNormalize_InvalidListElementsSkippedWithPreview(t *testing.T) {
	raw := []any{
		map[string]any{"company": "Acme"},
		42.0,
		"stray string",
	}

	c := Normalize(KindEducation, raw)
	require.Len(t, c.Entries, 3)
	assert.NotNil(t, c.Entries[0].Fields)
	assert.Equal(t, "42", c.Entries[1].Skipped)
	assert.Equal(t, "stray string", c.Entries[2].Skipped)
}

func TestNormalize_SkippedPreviewBounded(t *testing.T) {
	raw := []any{strings.Repeat("y", 300)}

	c := Normalize(KindProjects, raw)
	require.Len(t, c.Entries, 1)
	assert.Len(t, c.Entries[0].Skipped, 103) // 100 + "..."
}

func TestNormalize_ExperienceNumberIsMalformed(t *testing.T) {
	c := Normalize(KindExperience, 7.0)
	assert.Equal(t, ShapeMalformed, c.Shape)
	assert.Equal(t, "number", c.Reason)
}

func TestNormalize_SkillsMapping(t *testing.T) {
	c := Normalize(KindSkills, map[string]any{"Languages": []any{"Go", "Python"}})
	require.Equal(t, ShapeRecord, c.Shape)
	assert.Contains(t, c.Record, "Languages")
}

func TestNormalize_SkillsStringIsMalformedWithPreview(t *testing.T) {
	c := Normalize(KindSkills, "Go, Python, SQL")
	assert.Equal(t, ShapeMalformed, c.Shape)
	assert.Equal(t, "string", c.Reason)
	assert.Equal(t, "Go, Python, SQL", c.Preview)
}

func TestNormalize_SkillsListIsMalformed(t *testing.T) {
	c := Normalize(KindSkills, []any{"Go"})
	assert.Equal(t, ShapeMalformed, c.Shape)
	assert.Equal(t, "list", c.Reason)
	assert.Empty(t, c.Preview)
}

func TestNormalize_SummaryString(t *testing.T) {
	c := Normalize(KindSummary, "A seasoned engineer.")
	assert.Equal(t, ShapeText, c.Shape)
	assert.Equal(t, "A seasoned engineer.", c.Text)
}

func TestNormalize_OpenKindShapes(t *testing.T) {
	kind := SectionKind("hobbies")

	assert.Equal(t, ShapeText, Normalize(kind, "reading").Shape)
	assert.Equal(t, ShapeRecord, Normalize(kind, map[string]any{"a": 1}).Shape)
	assert.Equal(t, ShapeList, Normalize(kind, []any{"chess"}).Shape)
	assert.Equal(t, ShapeMalformed, Normalize(kind, true).Shape)
	assert.Equal(t, ShapeMalformed, Normalize(kind, nil).Shape)
}

func TestNormalize_NeverMutatesInput(t *testing.T) {
	original := map[string]any{"company": "Acme"}
	c := Normalize(KindExperience, original)

	c.Entries[0].Fields["company"] = "changed"
	assert.Equal(t, "Acme", original["company"])
}

func TestKindName_CoversJSONKinds(t *testing.T) {
	assert.Equal(t, "null", KindName(nil))
	assert.Equal(t, "string", KindName("x"))
	assert.Equal(t, "boolean", KindName(true))
	assert.Equal(t, "number", KindName(3.2))
	assert.Equal(t, "mapping", KindName(map[string]any{}))
	assert.Equal(t, "list", KindName([]any{}))
}

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abcde", Truncate("abcde", 5))
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	// A multi-byte rune straddling the byte boundary must not be split.
	in := strings.Repeat("a", 499) + "éxyz"
	out := Truncate(in, 500)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("a", 499)+"é...", out)

	short := strings.Repeat("é", 10)
	assert.Equal(t, short, Truncate(short, 10))
	assert.Equal(t, strings.Repeat("é", 5)+"...", Truncate(short, 5))
}

func TestNormalize_LiteralTruncationKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("a", 499) + strings.Repeat("é", 50)
	c := Normalize(KindExperience, long)

	require.Len(t, c.Entries, 1)
	assert.True(t, utf8.ValidString(c.Entries[0].Literal))
	assert.True(t, strings.HasSuffix(c.Entries[0].Literal, "é..."))
}

func TestSectionOrder_CoversRegisteredKinds(t *testing.T) {
	assert.Equal(t, KindSummary, SectionOrder[0])
	assert.True(t, IsListKind(KindExperience))
	assert.True(t, IsListKind(KindCertifications))
	assert.False(t, IsListKind(KindSkills))
	assert.False(t, IsListKind(KindSummary))
}
