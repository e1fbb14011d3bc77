package w3c

import (
	"bytes"
	"encoding/json"
)

// objectField returns the value stored under exactly key. encoding/json folds
// case when decoding into structs, so lookups go through a raw map instead.
func objectField(raw json.RawMessage, key string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	value, ok := obj[key]
	return value, ok
}

// arrayOf returns the elements of a JSON array; null and non-arrays fail
func arrayOf(raw json.RawMessage) ([]json.RawMessage, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, false
	}
	return elems, true
}

// arrayField combines objectField and arrayOf
func arrayField(raw json.RawMessage, key string) ([]json.RawMessage, bool) {
	value, ok := objectField(raw, key)
	if !ok {
		return nil, false
	}
	return arrayOf(value)
}

// decodeValue decodes a present, non-null JSON scalar into out
func decodeValue(raw json.RawMessage, out any) bool {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// decodeField looks up key and decodes it into out
func decodeField(raw json.RawMessage, key string, out any) bool {
	value, ok := objectField(raw, key)
	return ok && decodeValue(value, out)
}
