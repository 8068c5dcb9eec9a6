package portabletext

import (
	"strings"
	"unicode"
)

// filterBlankBlocks drops text and list-item blocks whose only span is blank.
// Custom blocks always pass.
func filterBlankBlocks(blocks []Block, allowEmpty bool) []Block {
	if allowEmpty {
		return blocks
	}

	kept := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		if text, ok := textOf(block); ok && isBlank(text) {
			continue
		}
		kept = append(kept, block)
	}
	return kept
}

func isBlank(block *TextBlock) bool {
	return len(block.Children) == 1 && trimSpace(block.Children[0].Text) == ""
}

// trimSpace strips Unicode white space and the byte order mark. NEL (U+0085)
// is content, not blank.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		if r == '\u0085' {
			return false
		}
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
