package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMaps_DeepMerge(t *testing.T) {
	dst := map[string]any{
		"name": "Alice",
		"lessons": map[string]any{
			"2024-06-01": map[string]any{"title": "Focus"},
		},
	}
	src := map[string]any{
		"lessons": map[string]any{
			"2024-06-02": map[string]any{"title": "Rest"},
		},
	}

	out := mergeMaps(dst, src)
	assert.Equal(t, "Alice", out["name"])
	lessons := out["lessons"].(map[string]any)
	assert.Contains(t, lessons, "2024-06-01")
	assert.Contains(t, lessons, "2024-06-02")
}

func TestMergeMaps_ScalarOverwritesMap(t *testing.T) {
	dst := map[string]any{"v": map[string]any{"a": 1}}
	src := map[string]any{"v": "flat"}

	out := mergeMaps(dst, src)
	assert.Equal(t, "flat", out["v"])
}

func TestMergeMaps_SliceReplacedWhole(t *testing.T) {
	dst := map[string]any{"tasks": []any{"a", "b"}}
	src := map[string]any{"tasks": []any{"c"}}

	out := mergeMaps(dst, src)
	assert.Equal(t, []any{"c"}, out["tasks"])
}

func TestMergeMaps_NilDst(t *testing.T) {
	out := mergeMaps(nil, map[string]any{"a": 1})
	assert.Equal(t, 1, out["a"])
}

func TestSetFieldPath_Nested(t *testing.T) {
	doc := map[string]any{
		"lessons": map[string]any{
			"2024-06-01": map[string]any{"title": "Focus", "tasks": []any{}},
		},
	}
	setFieldPath(doc, "lessons.2024-06-01.tasks", []any{"x"})

	lesson := doc["lessons"].(map[string]any)["2024-06-01"].(map[string]any)
	assert.Equal(t, "Focus", lesson["title"])
	assert.Equal(t, []any{"x"}, lesson["tasks"])
}

func TestSetFieldPath_CreatesIntermediates(t *testing.T) {
	doc := map[string]any{}
	setFieldPath(doc, "a.b.c", true)

	b := doc["a"].(map[string]any)["b"].(map[string]any)
	assert.Equal(t, true, b["c"])
}

func TestSetFieldPath_ReplacesNonObjectOnPath(t *testing.T) {
	doc := map[string]any{"a": "scalar"}
	setFieldPath(doc, "a.b", 2)

	assert.Equal(t, 2, doc["a"].(map[string]any)["b"])
}

func TestSetFieldPath_TopLevel(t *testing.T) {
	doc := map[string]any{"a": 1}
	setFieldPath(doc, "a", 2)
	assert.Equal(t, 2, doc["a"])
}
