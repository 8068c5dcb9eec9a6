package portabletext

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config holds formatter options.
type Config struct {
	// AllowEmptyBlocks keeps text and list blocks whose single span is blank.
	AllowEmptyBlocks bool `yaml:"allow_empty_blocks" json:"allow_empty_blocks"`
}

// Option customizes a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *logrus.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Formatter converts block sequences into node trees. It holds no mutable
// state and is safe for concurrent use.
type Formatter struct {
	config Config
	logger *logrus.Logger
}

// NewFormatter creates a formatter with the given configuration.
func NewFormatter(cfg Config, opts ...Option) *Formatter {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &Formatter{
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns the formatter configuration.
func (f *Formatter) Config() Config {
	return f.config
}

// Format converts blocks into one node per top-level item. A run of list
// items of the same kind becomes a single list node.
func (f *Formatter) Format(blocks []Block) []Node {
	kept := filterBlankBlocks(blocks, f.config.AllowEmptyBlocks)
	groups := groupListItems(kept)

	nodes := make([]Node, 0, len(groups))
	lists := 0
	for _, group := range groups {
		if group.isList() {
			lists++
			nodes = append(nodes, listNode(group.list))
			continue
		}
		nodes = append(nodes, formatBlock(group.block))
	}

	f.logger.WithFields(logrus.Fields{
		"blocks_in":   len(blocks),
		"blocks_kept": len(kept),
		"lists":       lists,
		"nodes_out":   len(nodes),
	}).Debug("formatted document")

	return nodes
}

func formatBlock(block Block) Node {
	switch b := block.(type) {
	case *TextBlock:
		return ContainerNode(styleNodeType(b.Style), nestSpans(b.Children, b.MarkDefs)...)
	case *ListItemBlock:
		// Only reachable for callers that bypass grouping.
		return listNode([]*ListItemBlock{b})
	case *CustomBlock:
		return customNode(b)
	default:
		return Node{Type: block.BlockType()}
	}
}

func styleNodeType(style string) string {
	if style == styleNormal {
		return NodeParagraph
	}
	return style
}

// Format converts blocks with a one-off formatter.
func Format(blocks []Block, cfg Config) []Node {
	return NewFormatter(cfg).Format(blocks)
}
