package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	for name, tc := range map[string]struct {
		raw  string
		want string
	}{
		"bare":        {`{"score": 80}`, `{"score": 80}`},
		"fenced":      {"```json\n{\"score\": 80}\n```", `{"score": 80}`},
		"plain fence": {"```\n{\"score\": 80}\n```", `{"score": 80}`},
		"prose":       {`Sure! Here is the result: {"score": 80}. Hope it helps.`, `{"score": 80}`},
		"no object":   {"cannot comply", "cannot comply"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSONObject(tc.raw))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[{"role": "x"}]`, ExtractJSONArray("here you go: [{\"role\": \"x\"}] done"))
	assert.Equal(t, `[1, 2]`, ExtractJSONArray("```json\n[1, 2]\n```"))
}

func TestCoerceInt(t *testing.T) {
	for name, tc := range map[string]struct {
		in   any
		want int
		ok   bool
	}{
		"float":       {82.6, 83, true},
		"int":         {77, 77, true},
		"string":      {"91", 91, true},
		"percent":     {"88%", 88, true},
		"float str":   {"72.4", 72, true},
		"empty":       {"", 0, false},
		"words":       {"eighty", 0, false},
		"nil":         {nil, 0, false},
		"wrong type":  {[]any{1}, 0, false},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := CoerceInt(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "hello", CoerceString("  hello \n"))
	assert.Equal(t, "", CoerceString(42))
	assert.Equal(t, "", CoerceString(nil))
}
