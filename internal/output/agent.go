package output

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ApplyAgentOptions applies --result-limit/--result-sort-by/--result-desc to
// top-level slices. The input is never mutated and the slice type is kept,
// so named slice types retain their methods.
func ApplyAgentOptions(ctx context.Context, data interface{}) interface{} {
	if data == nil {
		return data
	}

	limit := LimitFromContext(ctx)
	sortBy, desc := SortFromContext(ctx)
	if limit == 0 && sortBy == "" {
		return data
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return data
	}

	copySlice := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
	reflect.Copy(copySlice, v)

	if sortBy != "" {
		sortPath := strings.Split(sortBy, ".")
		sort.SliceStable(copySlice.Interface(), func(i, j int) bool {
			av, aok := extractSortableValue(copySlice.Index(i), sortPath)
			bv, bok := extractSortableValue(copySlice.Index(j), sortPath)
			if !aok || !bok {
				return aok && !bok
			}
			cmp := compareValues(av, bv)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if limit > 0 && limit < copySlice.Len() {
		copySlice = copySlice.Slice(0, limit)
	}
	return copySlice.Interface()
}

func extractSortableValue(v reflect.Value, path []string) (interface{}, bool) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	if len(path) == 0 {
		return nil, false
	}

	var next reflect.Value
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		key, ok := findMapKey(v, path[0])
		if !ok {
			return nil, false
		}
		next = v.MapIndex(key)
	case reflect.Struct:
		field, ok := findStructField(v, path[0])
		if !ok {
			return nil, false
		}
		next = field
	default:
		return nil, false
	}

	if len(path) == 1 {
		for next.Kind() == reflect.Ptr || next.Kind() == reflect.Interface {
			if next.IsNil() {
				return nil, false
			}
			next = next.Elem()
		}
		return next.Interface(), true
	}
	return extractSortableValue(next, path[1:])
}

func findMapKey(v reflect.Value, name string) (reflect.Value, bool) {
	norm := normalizeName(name)
	for _, key := range v.MapKeys() {
		if normalizeName(key.String()) == norm {
			return key, true
		}
	}
	return reflect.Value{}, false
}

func findStructField(v reflect.Value, name string) (reflect.Value, bool) {
	norm := normalizeName(name)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fieldName := f.Name
		if tag := f.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}
		if normalizeName(fieldName) == norm {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, "_", ""), "-", ""))
}

func compareValues(a, b interface{}) int {
	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return strings.Compare(va, vb)
		}
	case float64:
		if vb, ok := b.(float64); ok {
			return compareOrdered(va, vb)
		}
	case int:
		if vb, ok := b.(int); ok {
			return compareOrdered(va, vb)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
