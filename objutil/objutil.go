// Package objutil works on JSON-shaped documents: map[string]any trees
// whose leaves are scalars, []any or nested maps, as produced by
// encoding/json.
package objutil

import "strings"

// Document is a decoded JSON object.
type Document = map[string]any

// DeepClone copies v so that no map or slice is shared with the result.
// Values other than Document and []any are returned as is.
func DeepClone(v any) any {
	switch t := v.(type) {
	case Document:
		out := make(Document, len(t))
		for k, val := range t {
			out[k] = DeepClone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = DeepClone(val)
		}
		return out
	default:
		return v
	}
}

// Get returns the value at a dot-separated path such as "user.address.city",
// or def when any segment is missing or passes through a non-object.
func Get(doc Document, path string, def any) any {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(Document)
		if !ok || m == nil {
			return def
		}
		if cur, ok = m[key]; !ok {
			return def
		}
	}
	return cur
}

// Set stores value at a dot-separated path, creating intermediate objects
// and replacing any non-object found on the way. A nil doc is allocated.
// The (possibly new) doc is returned.
func Set(doc Document, path string, value any) Document {
	if doc == nil {
		doc = Document{}
	}

	keys := strings.Split(path, ".")
	cur := doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := cur[key].(Document)
		if !ok {
			next = Document{}
			cur[key] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = value
	return doc
}

// DeepMerge combines docs left to right into a new document. Nested
// objects are merged recursively, two arrays under the same key are
// concatenated, and any other value from a later doc wins. The inputs are
// not modified.
func DeepMerge(docs ...Document) Document {
	out := Document{}
	for _, doc := range docs {
		for key, val := range doc {
			prev, exists := out[key]
			if !exists {
				out[key] = DeepClone(val)
				continue
			}

			switch pv := prev.(type) {
			case []any:
				if nv, ok := val.([]any); ok {
					out[key] = append(pv, DeepClone(nv).([]any)...)
					continue
				}
			case Document:
				if nv, ok := val.(Document); ok {
					out[key] = DeepMerge(pv, nv)
					continue
				}
			}
			out[key] = DeepClone(val)
		}
	}
	return out
}

// Pick returns a new document holding only the listed keys that exist in
// doc.
func Pick(doc Document, keys ...string) Document {
	out := make(Document, len(keys))
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			out[k] = v
		}
	}
	return out
}
