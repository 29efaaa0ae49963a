package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/render"
	"github.com/jonathan/resume-processor/internal/theme"
)

func testDeps() (*render.Registry, *theme.Catalog) {
	return render.NewRegistry(), theme.BuildCatalog(theme.Resolve(theme.DefaultTheme))
}

func docText(doc *layout.Document) string {
	var parts []string
	for _, b := range doc.Blocks {
		if b.Kind == layout.BlockParagraph {
			parts = append(parts, b.Text())
		}
	}
	return strings.Join(parts, "\n")
}

func TestAssemble_ConstantMetadata(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{"name": "Ada"}, registry, styles)

	assert.Equal(t, "Resume", doc.Title)
	assert.Equal(t, "Resume Generator", doc.Author)
	assert.Equal(t, "Resume", doc.Subject)
	assert.Equal(t, []string{"Resume", "CV", "Job Application"}, doc.Keywords)
}

func TestAssemble_HeaderNameAndContactLines(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"phone":    "555-0100",
		"github":   "github.com/ada",
		"linkedin": "linkedin.com/in/ada",
	}, registry, styles)

	require.True(t, len(doc.Blocks) >= 3)
	assert.Equal(t, theme.StyleHeaderName, doc.Blocks[0].Style)
	assert.Equal(t, "Ada Lovelace", doc.Blocks[0].Text())

	contact := doc.Blocks[1].Text()
	assert.Equal(t, "• ada@example.com  |  • 555-0100", contact)

	social := doc.Blocks[2].Text()
	assert.Equal(t, "» github.com/ada  |  » linkedin.com/in/ada", social)
}

func TestAssemble_MissingNameUsesGenericHeading(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{"summary": "hi"}, registry, styles)
	assert.Equal(t, "Resume", doc.Blocks[0].Text())
}

func TestAssemble_FixedSectionOrder(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{
		"education":  []any{map[string]any{"institution": "MIT"}},
		"summary":    "Engineer.",
		"experience": []any{map[string]any{"company": "Acme"}},
	}, registry, styles)

	text := docText(doc)
	summaryIdx := strings.Index(text, "Summary")
	experienceIdx := strings.Index(text, "Experience")
	educationIdx := strings.Index(text, "Education")
	require.True(t, summaryIdx >= 0 && experienceIdx >= 0 && educationIdx >= 0)
	assert.Less(t, summaryIdx, experienceIdx)
	assert.Less(t, experienceIdx, educationIdx)
}

func TestAssemble_LeftoverKeysAfterFixedSections(t *testing.T) {
	registry, styles := testDeps()

	raw := []byte(`{
		"hobbies": ["chess", "running"],
		"summary": "Engineer.",
		"volunteering": "Food bank"
	}`)

	doc := Assemble(raw, registry, styles)
	text := docText(doc)

	summaryIdx := strings.Index(text, "Summary")
	hobbiesIdx := strings.Index(text, "Hobbies")
	volunteeringIdx := strings.Index(text, "Volunteering")
	require.True(t, summaryIdx >= 0 && hobbiesIdx >= 0 && volunteeringIdx >= 0)

	// Fixed sections come first; leftovers follow in document key order.
	assert.Less(t, summaryIdx, hobbiesIdx)
	assert.Less(t, hobbiesIdx, volunteeringIdx)
	assert.Contains(t, text, "• chess")
	assert.Contains(t, text, "• running")
}

func TestAssemble_ReservedKeysNotRenderedAsSections(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
	}, registry, styles)

	text := docText(doc)
	assert.NotContains(t, text, "Email")
}

func TestAssemble_EmptySectionsSkipped(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{
		"name":       "Ada",
		"experience": []any{},
		"skills":     map[string]any{},
		"summary":    "",
	}, registry, styles)

	text := docText(doc)
	assert.NotContains(t, text, "Experience")
	assert.NotContains(t, text, "Skills")
	assert.NotContains(t, text, "Summary")
}

func TestAssemble_SectionHeaderFollowedByDivider(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{"summary": "Engineer."}, registry, styles)

	var headerIdx = -1
	for i, b := range doc.Blocks {
		if b.Kind == layout.BlockParagraph && b.Style == theme.StyleSectionHeader {
			headerIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, headerIdx, 0)
	assert.Equal(t, layout.BlockDivider, doc.Blocks[headerIdx+1].Kind)
}

func TestAssemble_SectionFailureSubstitutedInline(t *testing.T) {
	registry, styles := testDeps()
	registry.Register(normalize.KindSummary, func(normalize.Canonical, *theme.Catalog) []layout.Block {
		panic("summary renderer broke")
	})

	doc := Assemble(map[string]any{
		"name":    "Ada",
		"summary": "Engineer.",
		"skills":  map[string]any{"Languages": []any{"Go"}},
	}, registry, styles)

	text := docText(doc)
	assert.Contains(t, text, "Error processing Summary: summary renderer broke")
	// Other sections still render.
	assert.Contains(t, text, "Languages: Go")
}

func TestAssemble_NullRecordErrorPage(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(nil, registry, styles)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "Error Processing Resume", doc.Blocks[0].Text())
	assert.Contains(t, doc.Blocks[1].Text(), "got null")
}

func TestAssemble_NonMappingJSONErrorPage(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble([]byte(`["not", "a", "mapping"]`), registry, styles)
	require.Len(t, doc.Blocks, 2)
	assert.Contains(t, doc.Blocks[1].Text(), "got list")
}

func TestAssemble_UnparseableJSONErrorPage(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble([]byte(`{not json`), registry, styles)
	require.Len(t, doc.Blocks, 2)
	assert.Contains(t, doc.Blocks[1].Text(), "unparseable text")
}

func TestAssemble_MalformedSectionRendersErrorBlockNotPage(t *testing.T) {
	registry, styles := testDeps()

	doc := Assemble(map[string]any{
		"name":   "Ada",
		"skills": 42.0,
	}, registry, styles)

	text := docText(doc)
	assert.Contains(t, text, "Invalid data format for skills")
	assert.NotContains(t, text, "Error Processing Resume")
}
