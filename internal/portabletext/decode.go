package portabletext

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// DecodeError reports malformed input together with the JSON path where it
// was found, e.g. "[2].children".
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode blocks: %v", e.Err)
	}
	return fmt.Sprintf("decode blocks at %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidJSON is returned when the input is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrPathNotFound is returned when DecodePath matches nothing.
	ErrPathNotFound = errors.New("path not found")
)

func decodeErr(path string, format string, args ...any) error {
	return &DecodeError{Path: path, Err: errors.Errorf(format, args...)}
}

// Decode parses a JSON array of Portable Text blocks.
func Decode(data []byte) ([]Block, error) {
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Err: ErrInvalidJSON}
	}
	return decodeBlocks(gjson.ParseBytes(data), "")
}

// DecodePath parses the block array found at a gjson path inside a larger
// document, such as "result.body" in an API response. An empty path decodes
// the whole document.
func DecodePath(data []byte, path string) ([]Block, error) {
	if path == "" {
		return Decode(data)
	}
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Err: ErrInvalidJSON}
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, &DecodeError{Path: path, Err: ErrPathNotFound}
	}
	blocks, err := decodeBlocks(result, path)
	if err != nil {
		return nil, errors.Wrapf(err, "select %q", path)
	}
	return blocks, nil
}

func decodeBlocks(root gjson.Result, path string) ([]Block, error) {
	if !root.IsArray() {
		return nil, decodeErr(path, "expected an array of blocks, got %s", describe(root))
	}

	items := root.Array()
	blocks := make([]Block, 0, len(items))
	for i, item := range items {
		block, err := decodeBlock(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func decodeBlock(item gjson.Result, path string) (Block, error) {
	if !item.IsObject() {
		return nil, decodeErr(path, "expected an object, got %s", describe(item))
	}

	typ := item.Get("_type")
	if typ.Type != gjson.String || typ.Str == "" {
		return nil, decodeErr(path, "missing _type")
	}

	if typ.Str != TextBlockType {
		return &CustomBlock{Type: typ.Str, Fields: objectFields(item, "_type")}, nil
	}

	text, err := decodeTextBlock(item, path)
	if err != nil {
		return nil, err
	}

	listItem := item.Get("listItem")
	if listItem.Type != gjson.String || listItem.Str == "" {
		return text, nil
	}

	block := &ListItemBlock{TextBlock: *text, Kind: ListKind(listItem.Str)}
	if level := item.Get("level"); level.Type == gjson.Number {
		block.Level = int(level.Int())
	}
	return block, nil
}

func decodeTextBlock(item gjson.Result, path string) (*TextBlock, error) {
	block := &TextBlock{
		Key:   item.Get("_key").String(),
		Style: styleNormal,
	}
	if style := item.Get("style"); style.Type == gjson.String {
		block.Style = style.Str
	}

	children := item.Get("children")
	if children.Exists() && children.Type != gjson.Null && !children.IsArray() {
		return nil, decodeErr(path+".children", "expected an array, got %s", describe(children))
	}
	for i, child := range children.Array() {
		span, err := decodeSpan(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, span)
	}

	defs := item.Get("markDefs")
	if defs.Exists() && defs.Type != gjson.Null && !defs.IsArray() {
		return nil, decodeErr(path+".markDefs", "expected an array, got %s", describe(defs))
	}
	for i, def := range defs.Array() {
		if !def.IsObject() {
			return nil, decodeErr(fmt.Sprintf("%s.markDefs[%d]", path, i), "expected an object, got %s", describe(def))
		}
		block.MarkDefs = append(block.MarkDefs, MarkDef{
			Key:    def.Get("_key").String(),
			Type:   def.Get("_type").String(),
			Fields: objectFields(def, "_key", "_type"),
		})
	}

	return block, nil
}

func decodeSpan(item gjson.Result, path string) (Span, error) {
	if !item.IsObject() {
		return Span{}, decodeErr(path, "expected an object, got %s", describe(item))
	}

	span := Span{
		Key:  item.Get("_key").String(),
		Text: item.Get("text").String(),
	}

	marks := item.Get("marks")
	if marks.Exists() && marks.Type != gjson.Null && !marks.IsArray() {
		return Span{}, decodeErr(path+".marks", "expected an array, got %s", describe(marks))
	}
	for _, mark := range marks.Array() {
		span.Marks = append(span.Marks, mark.String())
	}
	return span, nil
}

// objectFields returns the members of an object except the skipped keys.
func objectFields(item gjson.Result, skip ...string) map[string]any {
	fields := map[string]any{}
	item.ForEach(func(key, value gjson.Result) bool {
		for _, s := range skip {
			if key.Str == s {
				return true
			}
		}
		fields[key.Str] = jsonValue(value)
		return true
	})
	return fields
}

// jsonValue converts r to plain Go values. Numbers stay json.Number so large
// integers and out-of-range values pass through exactly as written.
func jsonValue(r gjson.Result) any {
	switch {
	case r.Type == gjson.Number:
		return json.Number(r.Raw)
	case r.IsArray():
		items := make([]any, 0)
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, jsonValue(v))
			return true
		})
		return items
	case r.IsObject():
		return objectFields(r)
	default:
		return r.Value()
	}
}

func describe(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	case r.Type == gjson.String:
		return "string"
	case r.Type == gjson.Number:
		return "number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
