// Package canon turns hashable inputs into deterministic bytes.
//
// Strings and byte slices are used verbatim. String-keyed maps are
// serialized as compact JSON with keys sorted by ordinal comparison at every
// level, so two maps with the same content always encode to the same bytes
// regardless of how they were built.
package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// maxWalkDepth bounds the UTF-8 scan; deeper values are left to the encoder,
// which reports cycles itself.
const maxWalkDepth = 1000

// ErrUnsupportedInputType is returned for values that have no canonical form.
var ErrUnsupportedInputType = errors.New("unsupported input type")

// Encode returns the canonical byte form of v.
// Only string, []byte and maps with string keys are accepted.
func Encode(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return []byte(val), nil
	case []byte:
		return val, nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedInputType)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInputType, v)
	}
	if rv.IsNil() {
		return []byte("{}"), nil
	}
	return Marshal(v)
}

// Marshal serializes any JSON-compatible value compactly with sorted map
// keys and without HTML escaping, matching what JSON.stringify emits for
// the same content. U+2028 and U+2029 are written raw. Strings that are not
// valid UTF-8 are rejected instead of being replaced with U+FFFD.
func Marshal(v any) ([]byte, error) {
	if !validUTF8(reflect.ValueOf(v), 0) {
		return nil, fmt.Errorf("%w: string is not valid UTF-8", ErrUnsupportedInputType)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInputType, err)
	}
	// Encoder terminates every value with a newline.
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})), nil
}

func validUTF8(rv reflect.Value, depth int) bool {
	if !rv.IsValid() || depth > maxWalkDepth {
		return true
	}
	switch rv.Kind() {
	case reflect.String:
		return utf8.ValidString(rv.String())
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil() || validUTF8(rv.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return true
		}
		for i := 0; i < rv.Len(); i++ {
			if !validUTF8(rv.Index(i), depth+1) {
				return false
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if !validUTF8(iter.Key(), depth+1) || !validUTF8(iter.Value(), depth+1) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() && !validUTF8(rv.Field(i), depth+1) {
				return false
			}
		}
	}
	return true
}

// unescapeLineSeparators rewrites the \u2028 and \u2029 escapes the encoder
// always emits back into raw characters. Escape pairs are consumed whole so an
// escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i+1:]; len(rest) >= 5 && rest[0] == 'u' && string(rest[1:4]) == "202" && (rest[4] == '8' || rest[4] == '9') {
			out = utf8.AppendRune(out, rune(0x2020+int(rest[4]-'0')))
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
