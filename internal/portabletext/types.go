// Package portabletext converts flat Portable Text blocks into a nested node
// tree where list nesting and inline marks are explicit structure.
package portabletext

// ListKind is the list flavour carried by a list-item block.
type ListKind string

const (
	ListBullet ListKind = "bullet"
	ListNumber ListKind = "number"
)

// Block is one entry of an input document: a *TextBlock, *ListItemBlock or
// *CustomBlock.
type Block interface {
	BlockType() string
	isBlock()
}

// Span is an inline run of text with the mark ids applied to it.
type Span struct {
	Key   string
	Text  string
	Marks []string
}

// HasMark reports whether the span carries mark.
func (s Span) HasMark(mark string) bool {
	for _, m := range s.Marks {
		if m == mark {
			return true
		}
	}
	return false
}

// MarkDef describes an annotation mark, e.g. a link with its href.
// Type is the mark kind; Fields holds every other field of the definition.
type MarkDef struct {
	Key    string
	Type   string
	Fields map[string]any
}

// TextBlock is a paragraph, heading or quote.
type TextBlock struct {
	Key      string
	Style    string
	Children []Span
	MarkDefs []MarkDef
}

// ListItemBlock is a text block that belongs to a list.
// Level is 1-based; zero means the level was absent.
type ListItemBlock struct {
	TextBlock
	Kind  ListKind
	Level int
}

// EffectiveLevel returns the nesting level, treating an absent level as 1.
func (b *ListItemBlock) EffectiveLevel() int {
	if b.Level == 0 {
		return 1
	}
	return b.Level
}

// CustomBlock is any non-text block. Fields holds all of its own fields
// except the type tag, including internal underscore-prefixed ones.
type CustomBlock struct {
	Type   string
	Fields map[string]any
}

// TextBlockType is the type tag shared by text and list-item blocks.
const TextBlockType = "block"

func (*TextBlock) BlockType() string     { return TextBlockType }
func (*ListItemBlock) BlockType() string { return TextBlockType }
func (b *CustomBlock) BlockType() string { return b.Type }

func (*TextBlock) isBlock()     {}
func (*ListItemBlock) isBlock() {}
func (*CustomBlock) isBlock()   {}

// textOf returns the text part of a text or list-item block.
func textOf(b Block) (*TextBlock, bool) {
	switch v := b.(type) {
	case *TextBlock:
		return v, true
	case *ListItemBlock:
		return &v.TextBlock, true
	default:
		return nil, false
	}
}
