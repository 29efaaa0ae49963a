// Package layout defines the block model produced by section renderers and
// consumed by the PDF writer. Blocks are transient: they live for one render
// call and carry no identity beyond their position in the sequence.
package layout

// BlockKind identifies the kind of renderable unit a Block represents.
type BlockKind int

const (
	// BlockParagraph is a styled run of text spans, optionally with a
	// right-aligned column on the same line.
	BlockParagraph BlockKind = iota
	// BlockSpacer is vertical blank space.
	BlockSpacer
	// BlockDivider is a horizontal rule across the content width.
	BlockDivider
)

// Span is a run of text within a paragraph with inline emphasis flags.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// Block is the atomic renderable unit.
type Block struct {
	Kind  BlockKind
	Style string // style name resolved against the catalog at write time

	Spans     []Span  // paragraph content
	RightText string  // optional right-aligned column (dates on header lines)
	Height    float64 // spacer height in points
}

// Paragraph builds a single-span paragraph block.
func Paragraph(style, text string) Block {
	return Block{Kind: BlockParagraph, Style: style, Spans: []Span{{Text: text}}}
}

// Rich builds a paragraph block from pre-built spans.
func Rich(style string, spans ...Span) Block {
	return Block{Kind: BlockParagraph, Style: style, Spans: spans}
}

// TwoColumn builds a paragraph with left spans and a right-aligned column.
func TwoColumn(style string, left []Span, right string) Block {
	return Block{Kind: BlockParagraph, Style: style, Spans: left, RightText: right}
}

// Spacer builds a vertical gap of the given height in points.
func Spacer(height float64) Block {
	return Block{Kind: BlockSpacer, Height: height}
}

// Divider builds a horizontal rule block.
func Divider() Block {
	return Block{Kind: BlockDivider}
}

// Text returns the concatenated span text of a paragraph block.
func (b Block) Text() string {
	var out string
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}

// Document is the assembled output of one render call: an ordered block
// sequence plus metadata that is constant across all renders.
type Document struct {
	Blocks []Block

	Title    string
	Author   string
	Subject  string
	Keywords []string
}
