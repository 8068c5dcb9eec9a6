package portabletext

import "strings"

// internalFieldPrefix marks fields that never reach the output tree.
const internalFieldPrefix = "_"

// publicFields copies every field not prefixed with the internal marker.
// The result is never nil.
func publicFields(fields map[string]any) map[string]any {
	props := make(map[string]any, len(fields))
	for key, value := range fields {
		if strings.HasPrefix(key, internalFieldPrefix) {
			continue
		}
		props[key] = value
	}
	return props
}

// customNode passes an opaque block through as props without content.
func customNode(block *CustomBlock) Node {
	return Node{Type: block.Type, Props: publicFields(block.Fields)}
}
