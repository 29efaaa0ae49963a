// Package theme provides the color palette catalog and the named,
// inheritance-based text style set used by all section renderers.
package theme

// Role is a semantic color role within a theme palette.
type Role string

const (
	RolePrimary    Role = "primary"
	RoleSecondary  Role = "secondary"
	RoleAccent     Role = "accent"
	RoleText       Role = "text"
	RoleSubtext    Role = "subtext"
	RoleBackground Role = "background"
	RoleHighlight  Role = "highlight"
)

// Color is an RGB color with 8-bit components.
type Color struct {
	R, G, B int
}

// Theme is a named palette mapping semantic roles to colors.
type Theme struct {
	Name    string
	Palette map[Role]Color
}

// Color returns the color for a role, falling back to black for unknown roles.
func (t Theme) Color(role Role) Color {
	if c, ok := t.Palette[role]; ok {
		return c
	}
	return Color{0, 0, 0}
}

// DefaultTheme is the name of the built-in theme every unknown name resolves to.
const DefaultTheme = "default"

var themes = map[string]Theme{
	DefaultTheme: {
		Name: DefaultTheme,
		Palette: map[Role]Color{
			RolePrimary:    {0x2A, 0x10, 0x52}, // dark purple
			RoleSecondary:  {0x33, 0x33, 0x33},
			RoleAccent:     {0x4B, 0x00, 0x82},
			RoleText:       {0x00, 0x00, 0x00},
			RoleSubtext:    {0x66, 0x66, 0x66},
			RoleBackground: {0xFF, 0xFF, 0xFF},
			RoleHighlight:  {0x4B, 0x00, 0x82},
		},
	},
}

// Resolve returns the named theme, or the default theme for unrecognized
// names. It never fails: rendering must always have a usable palette.
func Resolve(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}
