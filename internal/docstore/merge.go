package docstore

import "strings"

// mergeMaps merges src into dst recursively. Fields present in src overwrite
// dst; fields absent from src are preserved. Nested maps merge field by
// field; any other value (including slices) replaces the old value whole.
func mergeMaps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[k] = mergeMaps(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
	return dst
}

// setFieldPath writes value at a dot-separated path, creating intermediate
// objects as needed. A non-object value on the path is replaced by an object.
func setFieldPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
