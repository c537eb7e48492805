package schemacheck

import "reflect"

// normalize rewrites Go containers that are not map[string]any / []any into
// those canonical shapes, and named scalar types into their base types, so
// checkers and pointer resolution see one representation. Canonical input is returned as-is, without copying.
func normalize(v any) any {
	out, _ := normalizeValue(v)
	return out
}

func normalizeValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil, bool, string, numberLiteral,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, false
	case map[string]any:
		var out map[string]any
		for k, e := range t {
			ne, changed := normalizeValue(e)
			if !changed {
				continue
			}
			if out == nil {
				out = make(map[string]any, len(t))
				for k2, e2 := range t {
					out[k2] = e2
				}
			}
			out[k] = ne
		}
		if out == nil {
			return t, false
		}
		return out, true
	case []any:
		var out []any
		for i, e := range t {
			ne, changed := normalizeValue(e)
			if !changed {
				continue
			}
			if out == nil {
				out = append([]any(nil), t...)
			}
			out[i] = ne
		}
		if out == nil {
			return t, false
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, false
		}
		out := make(map[string]any, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			ne, _ := normalizeValue(it.Value().Interface())
			out[it.Key().String()] = ne
		}
		return out, true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i], _ = normalizeValue(rv.Index(i).Interface())
		}
		return out, true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, true
		}
		ne, _ := normalizeValue(rv.Elem().Interface())
		return ne, true
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return v, false
}

func asObject(v any) map[string]any {
	m, _ := normalize(v).(map[string]any)
	return m
}

func asArray(v any) []any {
	a, _ := normalize(v).([]any)
	return a
}
