package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Run("Verbatim inputs", func(t *testing.T) {
		out, err := Encode("test")
		require.NoError(t, err)
		assert.Equal(t, []byte("test"), out)

		raw := []byte{0x00, 0xff, 0x10}
		out, err = Encode(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, out)
	})

	t.Run("Maps are sorted and compact", func(t *testing.T) {
		out, err := Encode(map[string]any{"test": "hallo", "b": "2", "a": "1"})
		require.NoError(t, err)
		assert.Equal(t, `{"a":"1","b":"2","test":"hallo"}`, string(out))
	})

	t.Run("Nested maps are sorted too", func(t *testing.T) {
		out, err := Encode(map[string]any{
			"z": map[string]any{"y": 1, "x": []any{true, nil, 1.5}},
			"a": "<&>",
		})
		require.NoError(t, err)
		assert.Equal(t, `{"a":"<&>","z":{"x":[true,null,1.5],"y":1}}`, string(out))
	})

	t.Run("Typed maps", func(t *testing.T) {
		out, err := Encode(map[string]string{"b": "2", "a": "1"})
		require.NoError(t, err)
		assert.Equal(t, `{"a":"1","b":"2"}`, string(out))

		var empty map[string]any
		out, err = Encode(empty)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(out))
	})

	t.Run("Insertion order does not matter", func(t *testing.T) {
		first := map[string]any{}
		first["test"] = "hallo"
		first["a"] = "1"
		first["b"] = "2"

		second := map[string]any{}
		second["b"] = "2"
		second["a"] = "1"
		second["test"] = "hallo"

		a, err := Encode(first)
		require.NoError(t, err)
		b, err := Encode(second)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Unsupported inputs", func(t *testing.T) {
		type payload struct{ A string }
		tests := []struct {
			name  string
			input any
		}{
			{"nil", nil},
			{"int", 42},
			{"bool", true},
			{"struct", payload{A: "x"}},
			{"slice", []string{"a"}},
			{"int-keyed map", map[int]string{1: "a"}},
			{"map with unencodable value", map[string]any{"f": math.Inf(1)}},
			{"map with channel", map[string]any{"c": make(chan int)}},
			{"invalid UTF-8 value", map[string]any{"k": "a\xffb"}},
			{"invalid UTF-8 key", map[string]string{"\xfe": "v"}},
			{"invalid UTF-8 nested", map[string]any{"k": []any{map[string]any{"n": "\xc3"}}}},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := Encode(test.input)
				assert.ErrorIs(t, err, ErrUnsupportedInputType)
			})
		}
	})
}

func TestMarshal(t *testing.T) {
	out, err := Marshal(struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{"a&b", 2})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a&b","count":2}`, string(out))
}

func TestMarshalLineSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]string
		want  string
	}{
		{"Line separator", map[string]string{"k": "a\u2028b"}, "{\"k\":\"a\u2028b\"}"},
		{"Paragraph separator", map[string]string{"k": "\u2029"}, "{\"k\":\"\u2029\"}"},
		{"Escaped backslash before u2028 text", map[string]string{"k": `\u2028`}, `{"k":"\\u2028"}`},
		{"Other escapes untouched", map[string]string{"k": "a\"b\n"}, `{"k":"a\"b\n"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := Marshal(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, string(out))
		})
	}
}
