package theme

// Alignment is the horizontal alignment of a paragraph style.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Style describes how a paragraph block is drawn. Styles are built once per
// render from a Theme and are immutable afterwards.
type Style struct {
	Parent string // name of the style this one was derived from

	FontSize    float64
	Bold        bool
	Italic      bool
	Color       Color
	SpaceBefore float64
	SpaceAfter  float64
	Leading     float64
	LeftIndent  float64
	Alignment   Alignment

	// Boxed styles (the error style) draw a border and background fill.
	Boxed       bool
	FillColor   Color
	BorderColor Color
}

// Style names referenced by the renderers and the assembler. BuildCatalog
// defines every one of them; Catalog.Get falls back to StyleNormal for any
// name it does not know, so a style lookup can never fail.
const (
	StyleNormal            = "Normal"
	StyleHeading1          = "Heading1"
	StyleHeading2          = "Heading2"
	StyleHeaderName        = "HeaderName"
	StyleContact           = "Contact"
	StyleHeaderTitle       = "HeaderTitle"
	StyleSectionHeader     = "SectionHeader"
	StyleContent           = "Content"
	StyleListItem          = "ListItem"
	StyleSkillItem         = "SkillItem"
	StyleExperienceTitle   = "ExperienceTitle"
	StyleJobTitle          = "JobTitle"
	StyleExperienceDetails = "ExperienceDetails"
	StyleError             = "Error"
)

// Catalog is a read-only set of named styles for one render.
type Catalog struct {
	styles map[string]Style
}

// Get returns the style with the given name, or the Normal style if the name
// is unknown. Rendering never fails on a missing style.
func (c *Catalog) Get(name string) Style {
	if s, ok := c.styles[name]; ok {
		return s
	}
	return c.styles[StyleNormal]
}

// Has reports whether the catalog defines the named style.
func (c *Catalog) Has(name string) bool {
	_, ok := c.styles[name]
	return ok
}

// BuildCatalog builds the fixed style set from a theme palette. Each derived
// style starts from its parent's resolved attributes and overrides only the
// attributes it sets, mirroring stylesheet inheritance.
func BuildCatalog(t Theme) *Catalog {
	c := &Catalog{styles: make(map[string]Style)}

	normal := Style{
		FontSize:  10,
		Color:     t.Color(RoleText),
		Leading:   12,
		Alignment: AlignLeft,
	}
	c.styles[StyleNormal] = normal

	heading1 := normal
	heading1.Parent = StyleNormal
	heading1.FontSize = 18
	heading1.Bold = true
	heading1.Leading = 22
	heading1.SpaceAfter = 6
	c.styles[StyleHeading1] = heading1

	heading2 := normal
	heading2.Parent = StyleNormal
	heading2.FontSize = 14
	heading2.Bold = true
	heading2.Leading = 18
	heading2.SpaceBefore = 6
	heading2.SpaceAfter = 3
	c.styles[StyleHeading2] = heading2

	headerName := heading1
	headerName.Parent = StyleHeading1
	headerName.FontSize = 20
	headerName.Color = t.Color(RolePrimary)
	headerName.SpaceAfter = 10
	headerName.Alignment = AlignCenter
	c.styles[StyleHeaderName] = headerName

	contact := normal
	contact.Parent = StyleNormal
	contact.FontSize = 10
	contact.SpaceAfter = 5
	contact.Alignment = AlignCenter
	c.styles[StyleContact] = contact

	headerTitle := normal
	headerTitle.Parent = StyleNormal
	headerTitle.FontSize = 12
	headerTitle.Color = t.Color(RoleSubtext)
	headerTitle.SpaceAfter = 8
	headerTitle.Leading = 14
	c.styles[StyleHeaderTitle] = headerTitle

	sectionHeader := heading2
	sectionHeader.Parent = StyleHeading2
	sectionHeader.FontSize = 14
	sectionHeader.Color = t.Color(RolePrimary)
	sectionHeader.SpaceBefore = 8
	sectionHeader.SpaceAfter = 2
	sectionHeader.Leading = 16
	c.styles[StyleSectionHeader] = sectionHeader

	content := normal
	content.Parent = StyleNormal
	content.FontSize = 10
	content.SpaceAfter = 3
	content.Leading = 13
	c.styles[StyleContent] = content

	listItem := normal
	listItem.Parent = StyleNormal
	listItem.FontSize = 9
	listItem.SpaceAfter = 3
	listItem.LeftIndent = 10
	listItem.Leading = 13
	c.styles[StyleListItem] = listItem

	skillItem := normal
	skillItem.Parent = StyleNormal
	skillItem.FontSize = 9
	skillItem.SpaceBefore = 1
	skillItem.SpaceAfter = 1
	skillItem.Leading = 12
	c.styles[StyleSkillItem] = skillItem

	experienceTitle := normal
	experienceTitle.Parent = StyleNormal
	experienceTitle.FontSize = 10
	experienceTitle.SpaceBefore = 4
	experienceTitle.SpaceAfter = 1
	experienceTitle.Leading = 12
	c.styles[StyleExperienceTitle] = experienceTitle

	jobTitle := normal
	jobTitle.Parent = StyleNormal
	jobTitle.FontSize = 10
	jobTitle.Color = t.Color(RolePrimary)
	jobTitle.SpaceBefore = 1
	jobTitle.SpaceAfter = 2
	jobTitle.Leading = 12
	c.styles[StyleJobTitle] = jobTitle

	experienceDetails := normal
	experienceDetails.Parent = StyleNormal
	experienceDetails.FontSize = 9
	experienceDetails.Color = t.Color(RoleSubtext)
	experienceDetails.SpaceBefore = 1
	experienceDetails.SpaceAfter = 2
	experienceDetails.Leading = 11
	c.styles[StyleExperienceDetails] = experienceDetails

	errStyle := normal
	errStyle.Parent = StyleNormal
	errStyle.FontSize = 11
	errStyle.Color = Color{0xCC, 0x00, 0x00}
	errStyle.SpaceBefore = 2
	errStyle.SpaceAfter = 2
	errStyle.Leading = 13
	errStyle.Boxed = true
	errStyle.FillColor = Color{0xD9, 0xD9, 0xD9}
	errStyle.BorderColor = Color{0xCC, 0x00, 0x00}
	c.styles[StyleError] = errStyle

	return c
}
