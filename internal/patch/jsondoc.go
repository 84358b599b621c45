package patch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/iancoleman/orderedmap"
)

// decodeObject parses a JSON object keeping its key order. Numbers keep
// their source text so large integers survive re-encoding.
func decodeObject(data []byte) (*orderedmap.OrderedMap, error) {
	doc := newObject()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errdef.Wrap(errdef.CodeMalformed, err, "parsing JSON")
	}

	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errdef.Wrap(errdef.CodeMalformed, err, "parsing JSON")
	}
	restoreObject(doc, raw)
	return doc, nil
}

// restoreNumbers swaps the float64 values orderedmap decodes for the
// json.Number found at the same place in raw.
func restoreNumbers(v, raw interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		if n, ok := raw.(json.Number); ok {
			return n
		}
	case orderedmap.OrderedMap:
		restoreObject(&val, raw)
		return val
	case *orderedmap.OrderedMap:
		restoreObject(val, raw)
	case []interface{}:
		items, ok := raw.([]interface{})
		if !ok || len(items) != len(val) {
			return v
		}
		for i := range val {
			val[i] = restoreNumbers(val[i], items[i])
		}
	}
	return v
}

func restoreObject(o *orderedmap.OrderedMap, raw interface{}) {
	fields, ok := raw.(map[string]interface{})
	if !ok {
		return
	}
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		o.Set(k, restoreNumbers(v, fields[k]))
	}
}

// decodeRelaxedObject parses a JSON object that may contain trailing commas.
func decodeRelaxedObject(data []byte) (*orderedmap.OrderedMap, error) {
	return decodeObject(StripTrailingCommas(data))
}

// encodeObject serializes doc with two-space indentation, no HTML escaping
// and a trailing newline.
func encodeObject(doc *orderedmap.OrderedMap) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func newObject() *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.SetEscapeHTML(false)
	return o
}

// list returns the array stored under key. ok is false when the key is
// absent; a present non-array value is a malformed document.
func list(o *orderedmap.OrderedMap, key string) (items []interface{}, ok bool, err error) {
	v, found := o.Get(key)
	if !found {
		return nil, false, nil
	}
	items, isList := v.([]interface{})
	if !isList {
		return nil, true, errdef.New(errdef.CodeMalformed, "%q is %T, not an array", key, v)
	}
	return items, true, nil
}

// object returns the object stored under key.
func object(o *orderedmap.OrderedMap, key string) (orderedmap.OrderedMap, bool, error) {
	v, found := o.Get(key)
	if !found {
		return orderedmap.OrderedMap{}, false, nil
	}
	switch obj := v.(type) {
	case orderedmap.OrderedMap:
		return obj, true, nil
	case *orderedmap.OrderedMap:
		return *obj, true, nil
	default:
		return orderedmap.OrderedMap{}, true, errdef.New(errdef.CodeMalformed, "%q is %T, not an object", key, v)
	}
}

func containsString(items []interface{}, s string) bool {
	for _, item := range items {
		if str, ok := item.(string); ok && str == s {
			return true
		}
	}
	return false
}
